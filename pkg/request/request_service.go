package request

import (
	"Surplus-Reduction-Backend/domain"
	"Surplus-Reduction-Backend/internal/utils/mailing"
	"context"
	"fmt"
	"html"

	"github.com/gofiber/fiber/v2/log"
)

type (
	RequestService interface {
		// ListRequests rejects a requestUserEmail filter that differs from the
		// caller's email before touching the store. An empty filter lists all.
		ListRequests(ctx context.Context, identity domain.Identity, requestUserEmail string) ([]domain.Document, error)
		CreateRequest(ctx context.Context, payload domain.Document) (domain.InsertResult, error)
	}

	requestService struct {
		requestRepository RequestRepository
		mailer            mailing.Mailer
		appURL            string
	}
)

// NewRequestService accepts a nil mailer when SMTP is not configured.
func NewRequestService(requestRepository RequestRepository, mailer mailing.Mailer, appURL string) RequestService {
	return &requestService{
		requestRepository: requestRepository,
		mailer:            mailer,
		appURL:            appURL,
	}
}

func (s *requestService) ListRequests(ctx context.Context, identity domain.Identity, requestUserEmail string) ([]domain.Document, error) {
	if requestUserEmail == "" {
		return s.requestRepository.FindAll(ctx)
	}
	if requestUserEmail != identity.Email {
		return nil, domain.ErrForbiddenAccess
	}
	return s.requestRepository.FindByRequester(ctx, requestUserEmail)
}

func (s *requestService) CreateRequest(ctx context.Context, payload domain.Document) (domain.InsertResult, error) {
	id, err := s.requestRepository.Insert(ctx, payload)
	if err != nil {
		return domain.InsertResult{}, err
	}

	s.notifyDonator(payload)
	return domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// notifyDonator mails the listing owner. The request is already stored, so
// a mail failure is only logged.
func (s *requestService) notifyDonator(payload domain.Document) {
	if s.mailer == nil {
		return
	}
	donatorEmail, _ := payload["donatorEmail"].(string)
	if donatorEmail == "" {
		return
	}

	if err := s.mailer.SendMail(donatorEmail, domain.RequestNotificationSubject, s.notificationBody(payload)); err != nil {
		log.Warnf("failed to notify donator %s: %v", donatorEmail, err)
	}
}

func (s *requestService) notificationBody(payload domain.Document) string {
	foodName, _ := payload["foodName"].(string)
	requester, _ := payload["requestUserEmail"].(string)
	if foodName == "" {
		foodName = "your food"
	}
	if requester == "" {
		requester = "A community member"
	}

	body := fmt.Sprintf("<p>%s requested <b>%s</b>.</p>", html.EscapeString(requester), html.EscapeString(foodName))
	if notes, ok := payload["notes"].(string); ok && notes != "" {
		body += fmt.Sprintf("<p>Notes: %s</p>", html.EscapeString(notes))
	}
	if s.appURL != "" {
		body += fmt.Sprintf(`<p><a href="%s">Open Surplus Reduction Community</a></p>`, html.EscapeString(s.appURL))
	}
	return body
}
