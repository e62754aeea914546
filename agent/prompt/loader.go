package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/web.txt
	webRaw string

	//go:embed template/finance.txt
	financeRaw string

	//go:embed template/general.txt
	generalRaw string
)

// PromptSet holds loaded capability instruction content.
type PromptSet struct {
	Web     string
	Finance string
	General string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// Safe to call concurrently; the embed is compile-time, and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Web:     strings.TrimSpace(webRaw),
		Finance: strings.TrimSpace(financeRaw),
		General: strings.TrimSpace(generalRaw),
	}
}
