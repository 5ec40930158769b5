package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fretehub/fretehub/internal/events"
)

type recordingSender struct {
	sent []EmailMessage
	err  error
}

func (r *recordingSender) Send(ctx context.Context, msg EmailMessage) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func leadCreated() events.LeadCreatedV1 {
	return events.LeadCreatedV1{
		EventID:    "evt-1",
		LeadID:     "lead-1",
		Name:       "Maria",
		Email:      "maria@example.com",
		OccurredAt: time.Now().UTC(),
	}
}

func TestWelcomeEmailContent(t *testing.T) {
	sender := &recordingSender{}
	mailer := NewWelcomeMailer(sender, nil, "", nil)

	mailer.HandleLeadCreated(context.Background(), leadCreated())

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.To != "maria@example.com" {
		t.Errorf("unexpected recipient: %s", msg.To)
	}
	if msg.Subject != "Bem-vindo à Plataforma de Fretes!" {
		t.Errorf("unexpected subject: %s", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "Maria") {
		t.Error("welcome body must greet the lead by name")
	}
}

func TestWelcomeEmailPlatformLink(t *testing.T) {
	sender := &recordingSender{}
	mailer := NewWelcomeMailer(sender, nil, "https://fretes.example.com", nil)

	mailer.HandleLeadCreated(context.Background(), leadCreated())

	msg := sender.sent[0]
	if !strings.Contains(msg.HTML, `href="https://fretes.example.com"`) {
		t.Error("welcome HTML must link back to the platform when a base URL is configured")
	}
	if !strings.Contains(msg.Body, "https://fretes.example.com") {
		t.Error("plain text body must carry the platform URL")
	}
}

func TestWelcomeEmailOmitsLinkWithoutBaseURL(t *testing.T) {
	sender := &recordingSender{}
	mailer := NewWelcomeMailer(sender, nil, "", nil)

	mailer.HandleLeadCreated(context.Background(), leadCreated())

	if strings.Contains(sender.sent[0].HTML, "href=") {
		t.Error("welcome HTML must not carry a link when no base URL is configured")
	}
}

func TestWelcomeEmailEscapesName(t *testing.T) {
	sender := &recordingSender{}
	mailer := NewWelcomeMailer(sender, nil, "", nil)

	evt := leadCreated()
	evt.Name = "<script>alert(1)</script>"
	mailer.HandleLeadCreated(context.Background(), evt)

	if strings.Contains(sender.sent[0].HTML, "<script>") {
		t.Error("lead name must be HTML-escaped in the welcome body")
	}
}

func TestWelcomeEmailFailureIsSwallowed(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	mailer := NewWelcomeMailer(sender, nil, "", nil)

	// Must neither panic nor propagate; the handler has no error return.
	mailer.HandleLeadCreated(context.Background(), leadCreated())

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(sender.sent))
	}
}

func TestWelcomeMailerSubscribedToBus(t *testing.T) {
	sender := &recordingSender{}
	mailer := NewWelcomeMailer(sender, nil, "", nil)

	bus := events.NewBus(nil)
	bus.SubscribeLeadCreated(mailer.HandleLeadCreated)
	bus.PublishLeadCreated(leadCreated())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := bus.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected welcome email via bus, got %d", len(sender.sent))
	}
}
