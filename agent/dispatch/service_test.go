package dispatch

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	contractx "github.com/azka-labs/agent-gateway/agent/contract"
	posx "github.com/azka-labs/agent-gateway/agent/pos"
)

type fakeCapability struct {
	reply    string
	err      error
	received []string
}

func (f *fakeCapability) Invoke(_ context.Context, message string) (string, error) {
	f.received = append(f.received, message)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeRegistry struct {
	capabilities map[contractx.CapabilityID]contractx.Capability
	fallback     contractx.Capability
}

func (f *fakeRegistry) Resolve(id contractx.CapabilityID) contractx.Capability {
	if c, ok := f.capabilities[id]; ok {
		return c
	}
	return f.fallback
}

func (f *fakeRegistry) Descriptors() []contractx.CapabilityDescriptor {
	return nil
}

type fakeExtractor struct {
	out   string
	calls int
	paths []string
}

func (f *fakeExtractor) Extract(_ context.Context, paths []string) string {
	f.calls++
	f.paths = append([]string(nil), paths...)
	return f.out
}

func newTestDispatcher(t *testing.T, registry contractx.Registry, extractor contractx.Extractor, cfg Config) *Dispatcher {
	t.Helper()

	d, err := New(registry, extractor, posx.NewEngine(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}

func pdfAttachment(name string) contractx.Attachment {
	return contractx.Attachment{
		Name:        name,
		ContentType: contractx.MediaTypePDF,
		Data:        []byte("%PDF-1.4 fake body"),
	}
}

func TestDispatchPOSPathIgnoresAttachmentsAndExtraction(t *testing.T) {
	t.Parallel()

	extractor := &fakeExtractor{out: "should never appear"}
	general := &fakeCapability{reply: "general reply"}
	registry := &fakeRegistry{fallback: general}
	d := newTestDispatcher(t, registry, extractor, Config{})

	out := d.Dispatch(context.Background(), "add milk 40 2", contractx.CapabilityPOS, []contractx.Attachment{
		pdfAttachment("ignored.pdf"),
	})
	if !strings.Contains(out, "Added 2 x milk") {
		t.Fatalf("unexpected pos reply: %q", out)
	}
	if extractor.calls != 0 {
		t.Fatalf("extractor must not run on the pos path, calls=%d", extractor.calls)
	}
	if len(general.received) != 0 {
		t.Fatalf("no reasoning capability may be invoked on the pos path")
	}
}

func TestDispatchUnknownCapabilityFallsBackToGeneral(t *testing.T) {
	t.Parallel()

	general := &fakeCapability{reply: "general reply"}
	registry := &fakeRegistry{
		capabilities: map[contractx.CapabilityID]contractx.Capability{
			contractx.CapabilityGeneral: general,
		},
		fallback: general,
	}
	d := newTestDispatcher(t, registry, &fakeExtractor{}, Config{})

	out := d.Dispatch(context.Background(), "what's the weather?", "no-such-capability", nil)
	if out != "general reply" {
		t.Fatalf("unexpected reply: %q", out)
	}
	if len(general.received) != 1 {
		t.Fatalf("general capability must be invoked once, got %d", len(general.received))
	}
}

func TestDispatchAugmentsMessageWithExtractedText(t *testing.T) {
	t.Parallel()

	general := &fakeCapability{reply: "done"}
	registry := &fakeRegistry{fallback: general}
	extractor := &fakeExtractor{out: "EXTRACTED CONTENT"}
	d := newTestDispatcher(t, registry, extractor, Config{})

	out := d.Dispatch(context.Background(), "summarize this", contractx.CapabilityGeneral, []contractx.Attachment{
		pdfAttachment("a.pdf"),
		{Name: "notes.txt", ContentType: "text/plain", Data: []byte("skip me")},
		pdfAttachment("b.pdf"),
	})
	if out != "done" {
		t.Fatalf("unexpected reply: %q", out)
	}

	if extractor.calls != 1 {
		t.Fatalf("extractor must run exactly once per request, calls=%d", extractor.calls)
	}
	if len(extractor.paths) != 2 {
		t.Fatalf("only pdf attachments are spooled, got %d paths", len(extractor.paths))
	}

	if len(general.received) != 1 {
		t.Fatalf("capability must be invoked once, got %d", len(general.received))
	}
	augmented := general.received[0]
	if !strings.HasPrefix(augmented, "summarize this") {
		t.Fatalf("augmented message must start with the original: %q", augmented)
	}
	if !strings.Contains(augmented, "Content from uploaded PDF(s):") {
		t.Fatalf("augmented message missing delimiter: %q", augmented)
	}
	if !strings.Contains(augmented, "EXTRACTED CONTENT") {
		t.Fatalf("augmented message missing extracted text: %q", augmented)
	}

	// Spooled files must be gone after dispatch, success path included.
	for _, path := range extractor.paths {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("spooled file %s must be cleaned up, stat err = %v", path, err)
		}
	}
}

func TestDispatchTruncatesExtractPreview(t *testing.T) {
	t.Parallel()

	general := &fakeCapability{reply: "done"}
	registry := &fakeRegistry{fallback: general}
	extractor := &fakeExtractor{out: strings.Repeat("x", 100)}
	d := newTestDispatcher(t, registry, extractor, Config{PDFPreviewLimit: 10})

	d.Dispatch(context.Background(), "summarize", contractx.CapabilityGeneral, []contractx.Attachment{
		pdfAttachment("big.pdf"),
	})

	augmented := general.received[0]
	if !strings.Contains(augmented, strings.Repeat("x", 10)+"...") {
		t.Fatalf("expected truncated preview with marker: %q", augmented)
	}
	if strings.Contains(augmented, strings.Repeat("x", 11)) {
		t.Fatalf("preview exceeds cap: %q", augmented)
	}
}

func TestDispatchEmptyExtractLeavesMessageUntouched(t *testing.T) {
	t.Parallel()

	general := &fakeCapability{reply: "done"}
	registry := &fakeRegistry{fallback: general}
	extractor := &fakeExtractor{out: "   \n  "}
	d := newTestDispatcher(t, registry, extractor, Config{})

	d.Dispatch(context.Background(), "hello", contractx.CapabilityGeneral, []contractx.Attachment{
		pdfAttachment("empty.pdf"),
	})

	if got := general.received[0]; got != "hello" {
		t.Fatalf("whitespace-only extract must not augment, got %q", got)
	}
}

func TestDispatchCapabilityFailureYieldsApology(t *testing.T) {
	t.Parallel()

	failing := &fakeCapability{err: errors.New("model host down")}
	registry := &fakeRegistry{fallback: failing}
	d := newTestDispatcher(t, registry, &fakeExtractor{}, Config{})

	out := d.Dispatch(context.Background(), "hi", contractx.CapabilityGeneral, nil)
	if !strings.Contains(out, "Sorry") {
		t.Fatalf("expected apologetic reply, got %q", out)
	}
}

func TestDispatchEmptyMessageYieldsApology(t *testing.T) {
	t.Parallel()

	registry := &fakeRegistry{fallback: &fakeCapability{reply: "unused"}}
	d := newTestDispatcher(t, registry, &fakeExtractor{}, Config{})

	out := d.Dispatch(context.Background(), "   ", contractx.CapabilityGeneral, nil)
	if !strings.Contains(out, "Sorry") {
		t.Fatalf("expected apologetic reply, got %q", out)
	}
}

func TestDispatchExtractionNotInvokedWithoutPDFs(t *testing.T) {
	t.Parallel()

	general := &fakeCapability{reply: "done"}
	registry := &fakeRegistry{fallback: general}
	extractor := &fakeExtractor{out: "never"}
	d := newTestDispatcher(t, registry, extractor, Config{})

	d.Dispatch(context.Background(), "hello", contractx.CapabilityGeneral, []contractx.Attachment{
		{Name: "notes.txt", ContentType: "text/plain", Data: []byte("plain")},
	})

	if extractor.calls != 0 {
		t.Fatalf("extractor must not run without pdf attachments, calls=%d", extractor.calls)
	}
	if general.received[0] != "hello" {
		t.Fatalf("message must be unaugmented: %q", general.received[0])
	}
}
