package document

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	contractx "github.com/azka-labs/agent-gateway/agent/contract"
)

var _ contractx.Extractor = (*PDFExtractor)(nil)

// PDFExtractor pulls plain text out of PDF files, best effort. A file that
// cannot be read contributes an inline diagnostic marker instead of failing
// the batch.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) Extract(ctx context.Context, paths []string) string {
	var b strings.Builder
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(&b, "\n[Error reading %s: %v]\n", path, err)
			continue
		}

		text, err := extractFile(path)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("pdf extraction failed")
			fmt.Fprintf(&b, "\n[Error reading %s: %v]\n", path, err)
			continue
		}
		if text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func extractFile(path string) (text string, err error) {
	// The pdf library panics on some malformed files; a single bad document
	// must not take down the batch.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	raw, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}
