package mailing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMailer(t *testing.T) {
	_, err := NewMailer(MailConfig{})
	assert.ErrorIs(t, err, ErrMailNotConfigured)

	_, err = NewMailer(MailConfig{SMTPHost: "smtp.example.com", SMTPPort: "abc", SMTPEmail: "noreply@example.com"})
	assert.Error(t, err)

	m, err := NewMailer(MailConfig{SMTPHost: "smtp.example.com", SMTPPort: "587", SMTPEmail: "noreply@example.com"})
	assert.NoError(t, err)
	assert.NotNil(t, m)
}
