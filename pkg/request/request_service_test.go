package request

import (
	"Surplus-Reduction-Backend/domain"
	"Surplus-Reduction-Backend/internal/storetest"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendMail(toEmail, subject, body string) error {
	f.sent = append(f.sent, sentMail{toEmail, subject, body})
	return f.err
}

func seed(t *testing.T, svc RequestService, docs ...domain.Document) {
	t.Helper()
	for _, doc := range docs {
		_, err := svc.CreateRequest(context.Background(), doc)
		require.NoError(t, err)
	}
}

func TestListRequestsOwnEmail(t *testing.T) {
	repo := storetest.NewRequestRepository()
	svc := NewRequestService(repo, nil, "")
	seed(t, svc,
		domain.Document{"requestUserEmail": "a@x.com", "foodName": "Rice"},
		domain.Document{"requestUserEmail": "b@x.com", "foodName": "Bread"},
		domain.Document{"requestUserEmail": "a@x.com", "foodName": "Milk"},
	)

	docs, err := svc.ListRequests(context.Background(), domain.Identity{Email: "a@x.com"}, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	for _, doc := range docs {
		assert.Equal(t, "a@x.com", doc["requestUserEmail"])
	}
}

func TestListRequestsForbiddenBeforeQuery(t *testing.T) {
	repo := storetest.NewRequestRepository()
	svc := NewRequestService(repo, nil, "")

	_, err := svc.ListRequests(context.Background(), domain.Identity{Email: "a@x.com"}, "b@x.com")
	assert.ErrorIs(t, err, domain.ErrForbiddenAccess)
	assert.Equal(t, 0, repo.Calls)

	_, err = svc.ListRequests(context.Background(), domain.Identity{}, "b@x.com")
	assert.ErrorIs(t, err, domain.ErrForbiddenAccess)
}

func TestListRequestsWithoutFilterReturnsAll(t *testing.T) {
	svc := NewRequestService(storetest.NewRequestRepository(), nil, "")
	seed(t, svc,
		domain.Document{"requestUserEmail": "a@x.com"},
		domain.Document{"requestUserEmail": "b@x.com"},
	)

	docs, err := svc.ListRequests(context.Background(), domain.Identity{Email: "a@x.com"}, "")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestCreateRequestNotifiesDonator(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewRequestService(storetest.NewRequestRepository(), mailer, "https://surplus.example")

	res, err := svc.CreateRequest(context.Background(), domain.Document{
		"foodName":         "<Rice>",
		"donatorEmail":     "donor@x.com",
		"requestUserEmail": "a@x.com",
	})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.NotEmpty(t, res.InsertedID)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "donor@x.com", mailer.sent[0].to)
	assert.Equal(t, domain.RequestNotificationSubject, mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].body, "&lt;Rice&gt;")
	assert.Contains(t, mailer.sent[0].body, "https://surplus.example")
}

func TestCreateRequestSurvivesMailFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := NewRequestService(storetest.NewRequestRepository(), mailer, "")

	_, err := svc.CreateRequest(context.Background(), domain.Document{"donatorEmail": "donor@x.com"})
	assert.NoError(t, err)

	_, err = svc.CreateRequest(context.Background(), domain.Document{"foodName": "Rice"})
	assert.NoError(t, err)
	assert.Len(t, mailer.sent, 1)
}

func TestCreateRequestStoreFailure(t *testing.T) {
	repo := storetest.NewRequestRepository()
	repo.Fail = true
	mailer := &fakeMailer{}
	svc := NewRequestService(repo, mailer, "")

	_, err := svc.CreateRequest(context.Background(), domain.Document{"donatorEmail": "donor@x.com"})
	assert.ErrorIs(t, err, storetest.ErrStoreDown)
	assert.Empty(t, mailer.sent)
}
