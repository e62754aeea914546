package capability

import (
	"context"
	"fmt"

	contractx "github.com/azka-labs/agent-gateway/agent/contract"
	llmx "github.com/azka-labs/agent-gateway/agent/llm"
	promptx "github.com/azka-labs/agent-gateway/agent/prompt"
)

type registryImpl struct {
	capabilities map[contractx.CapabilityID]contractx.Capability
	fallback     contractx.Capability
	descriptors  []contractx.CapabilityDescriptor
}

func (r *registryImpl) Resolve(id contractx.CapabilityID) contractx.Capability {
	if c, ok := r.capabilities[id]; ok {
		return c
	}
	return r.fallback
}

func (r *registryImpl) Descriptors() []contractx.CapabilityDescriptor {
	return r.descriptors
}

func NewRegistry(ctx context.Context, cfg llmx.Config) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()

	webModelCfg := cfg.GroqFor(contractx.CapabilityWeb)
	webModel, err := webModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create web model: %v", contractx.ErrModelInvoke, err)
	}
	financeModelCfg := cfg.GroqFor(contractx.CapabilityFinance)
	financeModel, err := financeModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create finance model: %v", contractx.ErrModelInvoke, err)
	}
	generalModelCfg := cfg.GroqFor(contractx.CapabilityGeneral)
	generalModel, err := generalModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create general model: %v", contractx.ErrModelInvoke, err)
	}

	web, err := newChatCapability(ctx, contractx.CapabilityWeb, webModel, prompts.Web)
	if err != nil {
		return nil, err
	}
	finance, err := newChatCapability(ctx, contractx.CapabilityFinance, financeModel, prompts.Finance)
	if err != nil {
		return nil, err
	}
	generalOwn, err := newChatCapability(ctx, contractx.CapabilityGeneral, generalModel, prompts.General)
	if err != nil {
		return nil, err
	}
	general := newTeamCapability(generalOwn, web, finance)

	return &registryImpl{
		capabilities: map[contractx.CapabilityID]contractx.Capability{
			contractx.CapabilityWeb:     web,
			contractx.CapabilityFinance: finance,
			contractx.CapabilityGeneral: general,
		},
		fallback:    general,
		descriptors: descriptors(),
	}, nil
}

func descriptors() []contractx.CapabilityDescriptor {
	return []contractx.CapabilityDescriptor{
		{
			ID:           contractx.CapabilityGeneral,
			Name:         "MultiModel AI Agent",
			Description:  "Intelligent assistant with access to web search and financial teammates",
			Capabilities: []string{"Web search", "Financial analysis", "PDF processing", "General queries"},
		},
		{
			ID:           contractx.CapabilityFinance,
			Name:         "Financial Analysis Agent",
			Description:  "Specialized in financial data analysis and market research",
			Capabilities: []string{"Stock prices", "Market analysis", "Financial reports", "Economic data"},
		},
		{
			ID:           contractx.CapabilityWeb,
			Name:         "Web Search Agent",
			Description:  "Real-time web search and information retrieval",
			Capabilities: []string{"Current events", "Research", "Fact checking", "News updates"},
		},
		{
			ID:           contractx.CapabilityPOS,
			Name:         "POS System Agent",
			Description:  "Point of sale system for retail operations",
			Capabilities: []string{"Add items", "Calculate totals", "Process payments", "Generate receipts"},
		},
	}
}
