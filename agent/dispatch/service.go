package dispatch

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/azka-labs/agent-gateway/agent/contract"
	documentx "github.com/azka-labs/agent-gateway/agent/document"
	posx "github.com/azka-labs/agent-gateway/agent/pos"
)

const apologyReply = "⚠️ Sorry, I encountered an error while processing your request. Please try again."

const defaultPreviewLimit = 2000

type Config struct {
	// PDFPreviewLimit caps how many characters of extracted document text are
	// appended to the outgoing message. Display policy, not a correctness
	// guarantee.
	PDFPreviewLimit int `envconfig:"PDF_PREVIEW_LIMIT" split_words:"true" default:"2000"`
}

type Dispatcher struct {
	registry  contractx.Registry
	extractor contractx.Extractor
	engine    *posx.Engine

	graphRunner compose.Runnable[GraphInput, GraphOutput]

	previewLimit int
}

func New(
	registry contractx.Registry,
	extractor contractx.Extractor,
	engine *posx.Engine,
	cfg Config,
) (*Dispatcher, error) {
	if registry == nil {
		return nil, errors.New("capability registry is required")
	}
	if extractor == nil {
		return nil, errors.New("document extractor is required")
	}
	if engine == nil {
		return nil, errors.New("pos engine is required")
	}

	previewLimit := cfg.PDFPreviewLimit
	if previewLimit <= 0 {
		previewLimit = defaultPreviewLimit
	}

	d := &Dispatcher{
		registry:     registry,
		extractor:    extractor,
		engine:       engine,
		previewLimit: previewLimit,
	}

	graphRunner, err := d.compileDispatchGraph(context.Background())
	if err != nil {
		return nil, err
	}
	d.graphRunner = graphRunner

	return d, nil
}

// Dispatch routes one request and never fails: every error degrades to an
// apologetic text reply. Business failures never surface as transport errors.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	message string,
	capabilityID contractx.CapabilityID,
	attachments []contractx.Attachment,
) string {
	if capabilityID == contractx.CapabilityPOS {
		// The POS path ignores attachments entirely and never touches
		// extraction or a reasoning capability.
		return d.engine.HandleCommand(message)
	}

	spool, paths := d.spoolPDFs(attachments)
	if spool != nil {
		defer spool.Cleanup()
	}

	out, err := d.graphRunner.Invoke(ctx, GraphInput{
		Message:       message,
		CapabilityID:  capabilityID,
		DocumentPaths: paths,
	})
	if err != nil {
		log.Error().Err(err).Str("capability", string(capabilityID)).Msg("dispatch failed")
		return apologyReply
	}
	return out.Reply
}

// spoolPDFs persists every PDF attachment to transient storage. A file that
// cannot be spooled is skipped, not fatal; the caller owns Cleanup.
func (d *Dispatcher) spoolPDFs(attachments []contractx.Attachment) (*documentx.Spool, []string) {
	var spool *documentx.Spool
	var paths []string

	for _, att := range attachments {
		if !att.IsPDF() {
			continue
		}
		if spool == nil {
			s, err := documentx.NewSpool()
			if err != nil {
				log.Warn().Err(err).Msg("failed to create attachment spool")
				return nil, nil
			}
			spool = s
		}

		path, err := spool.Add(att)
		if err != nil {
			log.Warn().Err(err).Str("file", att.Name).Msg("failed to spool attachment")
			continue
		}
		paths = append(paths, path)
	}

	return spool, paths
}
