package capability

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/azka-labs/agent-gateway/agent/contract"
)

// chatCapability is a single-shot responder: one compiled prompt->model graph
// per capability. Tool use, if any, happens inside the model host.
type chatCapability struct {
	id     contractx.CapabilityID
	runner compose.Runnable[map[string]any, *schema.Message]
}

func newChatCapability(
	ctx context.Context,
	id contractx.CapabilityID,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (*chatCapability, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: capability=%s", contractx.ErrPromptMissing, id)
	}

	runner, err := compileChatGraph(ctx, chatModel, systemPrompt, fmt.Sprintf("capability.%s", id))
	if err != nil {
		return nil, fmt.Errorf("%w: compile graph for capability=%s: %v", contractx.ErrModelInvoke, id, err)
	}
	return &chatCapability{id: id, runner: runner}, nil
}

func (c *chatCapability) Invoke(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is required", contractx.ErrValidation)
	}

	msg, err := c.runner.Invoke(ctx, map[string]any{
		"input": message,
	})
	if err != nil {
		return "", fmt.Errorf("%w: capability=%s invoke: %v", contractx.ErrModelInvoke, c.id, err)
	}
	if msg == nil {
		return "", fmt.Errorf("%w: capability=%s returned nil message", contractx.ErrSchemaViolation, c.id)
	}

	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return "", fmt.Errorf("%w: capability=%s returned empty content", contractx.ErrSchemaViolation, c.id)
	}
	return content, nil
}
