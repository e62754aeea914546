package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	contractx "github.com/azka-labs/agent-gateway/agent/contract"
)

// Spool is request-scoped transient storage for attachment bytes. Acquire it
// before extraction, Cleanup after, on every exit path.
type Spool struct {
	dir string
}

func NewSpool() (*Spool, error) {
	dir, err := os.MkdirTemp("", "agent-gateway-*")
	if err != nil {
		return nil, fmt.Errorf("create spool dir: %w", err)
	}
	return &Spool{dir: dir}, nil
}

// Add persists one attachment and returns its path.
func (s *Spool) Add(att contractx.Attachment) (string, error) {
	if s == nil || s.dir == "" {
		return "", fmt.Errorf("spool is not initialized")
	}

	f, err := os.CreateTemp(s.dir, "*.pdf")
	if err != nil {
		return "", fmt.Errorf("create spool file for %s: %w", att.Name, err)
	}
	if _, err := f.Write(att.Data); err != nil {
		f.Close()
		return "", fmt.Errorf("write spool file for %s: %w", att.Name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close spool file for %s: %w", att.Name, err)
	}
	return f.Name(), nil
}

// Cleanup removes everything the spool holds. Idempotent.
func (s *Spool) Cleanup() {
	if s == nil || s.dir == "" {
		return
	}
	if err := os.RemoveAll(s.dir); err != nil {
		log.Warn().Err(err).Str("dir", filepath.Base(s.dir)).Msg("failed to clean up attachment spool")
	}
	s.dir = ""
}
