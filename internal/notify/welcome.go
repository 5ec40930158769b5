package notify

import (
	"context"
	"fmt"
	"html"

	"github.com/fretehub/fretehub/internal/events"
	"github.com/fretehub/fretehub/internal/observability/metrics"
	"github.com/fretehub/fretehub/pkg/logging"
)

const welcomeSubject = "Bem-vindo à Plataforma de Fretes!"

// WelcomeMailer reacts to lead.created events by sending a welcome email.
// It is an isolated failure boundary: send errors are logged and swallowed,
// never surfaced to the lead-creation request that triggered them.
type WelcomeMailer struct {
	sender        EmailSender
	metrics       *metrics.LeadMetrics
	publicBaseURL string
	logger        *logging.Logger
}

// NewWelcomeMailer creates a welcome mailer. m may be nil; when
// publicBaseURL is empty the email carries no link back to the platform.
func NewWelcomeMailer(sender EmailSender, m *metrics.LeadMetrics, publicBaseURL string, logger *logging.Logger) *WelcomeMailer {
	if logger == nil {
		logger = logging.Default()
	}
	return &WelcomeMailer{sender: sender, metrics: m, publicBaseURL: publicBaseURL, logger: logger}
}

// HandleLeadCreated sends the welcome email for a newly registered lead.
func (w *WelcomeMailer) HandleLeadCreated(ctx context.Context, evt events.LeadCreatedV1) {
	body := fmt.Sprintf("Olá, %s! Obrigado por se cadastrar em nossa plataforma.", evt.Name)
	if w.publicBaseURL != "" {
		body += fmt.Sprintf(" Acesse: %s", w.publicBaseURL)
	}

	msg := EmailMessage{
		To:      evt.Email,
		ToName:  evt.Name,
		Subject: welcomeSubject,
		Body:    body,
		HTML:    w.welcomeHTML(evt.Name),
	}

	if err := w.sender.Send(ctx, msg); err != nil {
		w.metrics.ObserveWelcomeEmail("failed")
		w.logger.Error("failed to send welcome email", "error", err, "email", evt.Email)
		return
	}

	w.metrics.ObserveWelcomeEmail("sent")
	w.logger.Info("welcome email sent", "email", evt.Email)
}

func (w *WelcomeMailer) welcomeHTML(name string) string {
	link := ""
	if w.publicBaseURL != "" {
		escaped := html.EscapeString(w.publicBaseURL)
		link = fmt.Sprintf(`
  <p><a href="%s">Acesse a plataforma</a> para acompanhar suas cotações.</p>`, escaped)
	}
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #2c3e50;">Olá, %s!</h2>
  <p>Obrigado por se cadastrar em nossa plataforma.</p>
  <p>Recebemos seus dados e em breve nossa equipe entrará em contato.</p>%s
  <br>
  <p>Atenciosamente,<br><strong>Equipe Plataforma de Fretes</strong></p>
</div>`, html.EscapeString(name), link)
}
