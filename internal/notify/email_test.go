package notify

import (
	"context"
	"testing"
)

func TestNewSendGridSenderRequiresAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{FromEmail: "noreply@fretehub.com"}, nil)
	if sender != nil {
		t.Fatal("expected nil sender without API key")
	}
}

func TestNewSendGridSenderDefaultsFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{APIKey: "SG.test", FromEmail: "noreply@fretehub.com"}, nil)
	if sender == nil {
		t.Fatal("expected sender")
	}
	if sender.fromName != "Plataforma de Fretes" {
		t.Errorf("unexpected default from name: %s", sender.fromName)
	}
}

func TestStubEmailSender(t *testing.T) {
	sender := NewStubEmailSender(nil)
	err := sender.Send(context.Background(), EmailMessage{
		To:      "ana@example.com",
		Subject: "hello",
		Body:    "hi",
	})
	if err != nil {
		t.Fatalf("stub sender must never fail: %v", err)
	}
}
