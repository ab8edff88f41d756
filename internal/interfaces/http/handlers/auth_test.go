// internal/interfaces/http/handlers/auth_test.go
package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type stubWelcomeMailer struct {
	sent chan string
	err  error
}

func (m *stubWelcomeMailer) SendWelcome(ctx context.Context, toEmail, name string) error {
	m.sent <- toEmail
	return m.err
}

func TestSendWelcomeEmail(t *testing.T) {
	mailer := &stubWelcomeMailer{sent: make(chan string, 1)}
	h := &AuthHandler{mailer: mailer, logger: logrus.New()}

	h.sendWelcomeEmail("priya@example.com", "Priya")

	select {
	case got := <-mailer.sent:
		assert.Equal(t, "priya@example.com", got)
	case <-time.After(time.Second):
		t.Fatal("welcome email was not sent")
	}
}

func TestSendWelcomeEmail_NilMailer(t *testing.T) {
	h := &AuthHandler{logger: logrus.New()}

	// Registration must not depend on a configured mailer
	h.sendWelcomeEmail("priya@example.com", "Priya")
}

func TestSendWelcomeEmail_FailureIsLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	mailer := &stubWelcomeMailer{sent: make(chan string, 1), err: errors.New("smtp unreachable")}
	h := &AuthHandler{mailer: mailer, logger: logger}

	h.sendWelcomeEmail("priya@example.com", "Priya")
	<-mailer.sent

	assert.Eventually(t, func() bool {
		entry := hook.LastEntry()
		return entry != nil && entry.Level == logrus.WarnLevel
	}, time.Second, 10*time.Millisecond)
}
