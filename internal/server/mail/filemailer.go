package mail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/evote-app/evote-backend/internal/filex"
	"github.com/evote-app/evote-backend/internal/logging"
	"github.com/google/uuid"
)

// FileMailer writes each message to its own file in an outbox directory.
// Intended for development and staging, where operators read verification
// codes and one-time credentials straight from the files.
type FileMailer struct {
	dir    string
	logger logging.Logger
}

func NewFileMailer(dir string, logger logging.Logger) (*FileMailer, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("mail outbox: %w", err)
	}
	return &FileMailer{dir: abs, logger: logger.With("module", "mail")}, nil
}

func (m *FileMailer) Send(ctx context.Context, to, subject, body string) error {
	name := fmt.Sprintf("%s-%s.eml", time.Now().UTC().Format("20060102T150405"), uuid.NewString())
	path := filepath.Join(m.dir, name)

	content := fmt.Sprintf("To: %s\r\nSubject: %s\r\n\r\n%s", to, subject, body)

	// 0600: the outbox carries one-time credentials.
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write mail: %w", err)
	}

	m.logger.Info(ctx, "outgoing mail written", "to", to, "subject", subject, "file", name)
	return nil
}
