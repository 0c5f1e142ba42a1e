package domain

var (
	MessageFailedGetRequests   = "failed to retrieve food requests"
	MessageFailedCreateRequest = "failed to create food request"

	RequestNotificationSubject = "Someone requested your food"
)
