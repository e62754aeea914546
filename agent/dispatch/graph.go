package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/azka-labs/agent-gateway/agent/contract"
)

var ErrInvalidMessage = errors.New("message is empty")

type GraphInput struct {
	Message       string
	CapabilityID  contractx.CapabilityID
	DocumentPaths []string
}

type GraphOutput struct {
	Reply string
}

type graphState struct {
	Message       string
	CapabilityID  contractx.CapabilityID
	DocumentPaths []string

	Extracted string
	Augmented string
	Reply     string
}

func (d *Dispatcher) compileDispatchGraph(
	ctx context.Context,
) (compose.Runnable[GraphInput, GraphOutput], error) {
	graph := compose.NewGraph[GraphInput, GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in GraphInput) (*graphState, error) {
			return validateRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("extract_documents",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return extractDocuments(ctx, in, d.extractor)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node extract_documents: %w", err)
	}

	if err := graph.AddLambdaNode("augment_message",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return augmentMessage(in, d.previewLimit)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node augment_message: %w", err)
	}

	if err := graph.AddLambdaNode("invoke_capability",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return invokeCapability(ctx, in, d.registry)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node invoke_capability: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (GraphOutput, error) {
			return finalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "extract_documents"},
		{"extract_documents", "augment_message"},
		{"augment_message", "invoke_capability"},
		{"invoke_capability", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("dispatcher.handle_request"))
	if err != nil {
		return nil, fmt.Errorf("compile dispatch graph: %w", err)
	}
	return runner, nil
}

func validateRequest(in GraphInput) (*graphState, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, ErrInvalidMessage
	}

	return &graphState{
		Message:       message,
		CapabilityID:  in.CapabilityID,
		DocumentPaths: in.DocumentPaths,
	}, nil
}

// extractDocuments runs the extractor once over the whole batch, not per
// file. Per-file failures arrive as inline markers in the combined text.
func extractDocuments(ctx context.Context, in *graphState, extractor contractx.Extractor) (*graphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if len(in.DocumentPaths) == 0 {
		return in, nil
	}

	in.Extracted = extractor.Extract(ctx, in.DocumentPaths)
	return in, nil
}

func augmentMessage(in *graphState, previewLimit int) (*graphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Augmented = in.Message

	extracted := strings.TrimSpace(in.Extracted)
	if extracted == "" {
		return in, nil
	}

	preview := extracted
	marker := ""
	if runes := []rune(preview); len(runes) > previewLimit {
		preview = string(runes[:previewLimit])
		marker = "..."
	}

	in.Augmented = fmt.Sprintf("%s\n\n📄 Content from uploaded PDF(s):\n```\n%s%s\n```\n", in.Message, preview, marker)
	return in, nil
}

func invokeCapability(ctx context.Context, in *graphState, registry contractx.Registry) (*graphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply, err := registry.Resolve(in.CapabilityID).Invoke(ctx, in.Augmented)
	if err != nil {
		return nil, err
	}

	in.Reply = reply
	return in, nil
}

func finalizeReply(in *graphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply := strings.TrimSpace(in.Reply)
	if reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: capability returned empty reply", contractx.ErrValidation)
	}
	return GraphOutput{Reply: reply}, nil
}
