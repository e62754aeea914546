package capability

import (
	"context"
	"errors"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/azka-labs/agent-gateway/agent/contract"
)

type fakeChatModel struct {
	responses []*schema.Message
	err       error
	idx       int
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.idx >= len(f.responses) {
		return nil, errors.New("no fake response left")
	}
	msg := f.responses[f.idx]
	f.idx++
	return msg, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

func (f *fakeChatModel) WithTools(tools []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	return f, nil
}

type staticCapability struct {
	out string
	err error
}

func (s staticCapability) Invoke(context.Context, string) (string, error) {
	return s.out, s.err
}

func TestChatCapabilityInvoke(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{
		responses: []*schema.Message{
			{Role: schema.Assistant, Content: "  Nvidia is up today.  "},
		},
	}

	c, err := newChatCapability(context.Background(), contractx.CapabilityFinance, fake, "finance prompt")
	if err != nil {
		t.Fatalf("newChatCapability() error = %v", err)
	}

	out, err := c.Invoke(context.Background(), "how is NVDA doing?")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if out != "Nvidia is up today." {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestChatCapabilityEmptyMessageRejected(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{}
	c, err := newChatCapability(context.Background(), contractx.CapabilityWeb, fake, "web prompt")
	if err != nil {
		t.Fatalf("newChatCapability() error = %v", err)
	}

	_, err = c.Invoke(context.Background(), "   ")
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestChatCapabilityEmptyContentIsSchemaViolation(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{
		responses: []*schema.Message{
			{Role: schema.Assistant, Content: "   "},
		},
	}
	c, err := newChatCapability(context.Background(), contractx.CapabilityWeb, fake, "web prompt")
	if err != nil {
		t.Fatalf("newChatCapability() error = %v", err)
	}

	_, err = c.Invoke(context.Background(), "anything")
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestChatCapabilityMissingPrompt(t *testing.T) {
	t.Parallel()

	_, err := newChatCapability(context.Background(), contractx.CapabilityWeb, &fakeChatModel{}, " ")
	if !errors.Is(err, contractx.ErrPromptMissing) {
		t.Fatalf("expected ErrPromptMissing, got %v", err)
	}
}

func TestTeamCapabilityFallsBackToSiblings(t *testing.T) {
	t.Parallel()

	boom := errors.New("model down")
	team := newTeamCapability(
		staticCapability{err: boom},
		staticCapability{err: errors.New("also down")},
		staticCapability{out: "from sibling"},
	)

	out, err := team.Invoke(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if out != "from sibling" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestTeamCapabilityReturnsOwnErrorWhenAllFail(t *testing.T) {
	t.Parallel()

	boom := errors.New("model down")
	team := newTeamCapability(
		staticCapability{err: boom},
		staticCapability{err: errors.New("also down")},
	)

	_, err := team.Invoke(context.Background(), "hello")
	if !errors.Is(err, boom) {
		t.Fatalf("expected own error, got %v", err)
	}
}

func TestRegistryResolveFallsBackToGeneral(t *testing.T) {
	t.Parallel()

	general := staticCapability{out: "general"}
	reg := &registryImpl{
		capabilities: map[contractx.CapabilityID]contractx.Capability{
			contractx.CapabilityGeneral: general,
			contractx.CapabilityWeb:     staticCapability{out: "web"},
		},
		fallback:    general,
		descriptors: descriptors(),
	}

	out, err := reg.Resolve("does-not-exist").Invoke(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if out != "general" {
		t.Fatalf("unknown id must resolve to general, got %q", out)
	}

	out, err = reg.Resolve(contractx.CapabilityWeb).Invoke(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if out != "web" {
		t.Fatalf("unexpected capability: %q", out)
	}

	if len(reg.Descriptors()) != 4 {
		t.Fatalf("expected 4 descriptors, got %d", len(reg.Descriptors()))
	}
}
