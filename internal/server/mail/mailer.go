// Package mail defines the outbound-mail seam. Actual delivery (SMTP, an
// email API, SMS fallback) lives outside this service; the server depends
// only on the Mailer interface so flows that dispatch codes stay testable.
package mail

import (
	"context"

	"github.com/evote-app/evote-backend/internal/logging"
)

// Mailer dispatches a single message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer is the default Mailer: it records that a message would have been
// sent without delivering anything. The body is deliberately not logged
// since it carries one-time credentials.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(logger logging.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("module", "mail")}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.logger.Info(ctx, "outgoing mail (delivery disabled)", "to", to, "subject", subject)
	return nil
}
