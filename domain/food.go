package domain

import (
	"errors"
	"math"
	"mime/multipart"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

var (
	MessageFailedGetFood         = "failed to retrieve available food"
	MessageFailedCreateFood      = "failed to create available food"
	MessageFailedUpdateFood      = "failed to update available food"
	MessageFailedDeleteFood      = "failed to delete available food"
	MessageFailedUploadFoodImage = "failed to upload food image"
	MessageStorageUnavailable    = "image storage is not configured"

	ErrStorageUnavailable = errors.New("image storage unavailable")
	ErrInvalidImageFormat = errors.New("invalid image format")
)

// UpdatableFoodFields is the fixed set of listing fields a PUT replaces.
// Keys outside this list are never written by an update.
var UpdatableFoodFields = []string{
	"foodName",
	"foodImage",
	"quantity",
	"location",
	"expDate",
	"status",
	"notes",
	"addedTime",
}

// QueryKind discriminates the variants of QuerySpec.
type QueryKind int

const (
	QueryAll QueryKind = iota
	QueryByName
	QueryByDonator
	QueryPaged
)

func (k QueryKind) String() string {
	switch k {
	case QueryByName:
		return "by-name"
	case QueryByDonator:
		return "by-donator"
	case QueryPaged:
		return "paged"
	default:
		return "all"
	}
}

// QuerySpec selects which listings to return. Only the fields relevant to
// Kind are meaningful.
type QuerySpec struct {
	Kind         QueryKind
	FoodName     string
	DonatorEmail string
	Page         int
	Limit        int
}

// NewQuerySpec picks exactly one query shape from raw query parameters, in
// precedence order foodName, donatorEmail, page. An empty value counts as
// absent.
func NewQuerySpec(foodName, donatorEmail, page, limit string) QuerySpec {
	switch {
	case foodName != "":
		return QuerySpec{Kind: QueryByName, FoodName: foodName}
	case donatorEmail != "":
		return QuerySpec{Kind: QueryByDonator, DonatorEmail: donatorEmail}
	case page != "":
		return QuerySpec{
			Kind:  QueryPaged,
			Page:  parsePositive(page, DefaultPage),
			Limit: parsePositive(limit, DefaultLimit),
		}
	default:
		return QuerySpec{Kind: QueryAll}
	}
}

// Skip is the number of documents before the requested page. It saturates
// at math.MaxInt64 instead of overflowing.
func (q QuerySpec) Skip() int64 {
	if q.Page <= 1 || q.Limit < 1 {
		return 0
	}
	pages, limit := int64(q.Page-1), int64(q.Limit)
	if pages > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return pages * limit
}

// parsePositive reads the leading decimal digits of raw, so "2abc" is 2.
// Values that are missing, below 1 or out of range give fallback.
func parsePositive(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int64 {
	if limit < 1 || total < 1 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return pages
}

// ListingUpdate builds the field assignment applied by an update. Every
// updatable field is present; keys missing from payload map to nil.
func ListingUpdate(payload Document) Document {
	set := make(Document, len(UpdatableFoodFields))
	for _, field := range UpdatableFoodFields {
		set[field] = payload[field]
	}
	return set
}

type (
	// FoodListResult is the outcome of a listing query. Page is set only for
	// paged queries.
	FoodListResult struct {
		Items []Document
		Page  *PageInfo
	}

	PageInfo struct {
		TotalItems  int64
		TotalPages  int64
		CurrentPage int
	}

	PagedFoodResponse struct {
		Data        []Document `json:"data"`
		TotalItems  int64      `json:"totalItems"`
		TotalPages  int64      `json:"totalPages"`
		CurrentPage int        `json:"currentPage"`
	}

	// UpsertResult says which branch of an update ran: an existing document
	// was updated, or a new one was created with the given id.
	UpsertResult struct {
		Created  bool
		ID       string
		Matched  int64
		Modified int64
	}

	UpdateFoodResponse struct {
		Acknowledged  bool    `json:"acknowledged"`
		MatchedCount  int64   `json:"matchedCount"`
		ModifiedCount int64   `json:"modifiedCount"`
		UpsertedCount int64   `json:"upsertedCount"`
		UpsertedID    *string `json:"upsertedId"`
	}

	UploadFoodImageRequest struct {
		Image *multipart.FileHeader `form:"foodImage" validate:"required"`
	}

	UploadFoodImageResponse struct {
		URL string `json:"url"`
	}
)

// NewUpdateFoodResponse converts the discriminated result into the wire
// shape clients already consume.
func NewUpdateFoodResponse(res UpsertResult) UpdateFoodResponse {
	out := UpdateFoodResponse{
		Acknowledged:  true,
		MatchedCount:  res.Matched,
		ModifiedCount: res.Modified,
	}
	if res.Created {
		id := res.ID
		out.UpsertedCount = 1
		out.UpsertedID = &id
	}
	return out
}
