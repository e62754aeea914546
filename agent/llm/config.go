package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/azka-labs/agent-gateway/agent/contract"
	groqx "github.com/azka-labs/agent-gateway/pkg/groq"
)

// Config holds one Groq credential plus optional per-capability model and
// temperature overrides.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.groq.com/openai/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"llama-3.1-8b-instant"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`

	WebModel           string  `envconfig:"WEB_MODEL" split_words:"true"`
	FinanceModel       string  `envconfig:"FINANCE_MODEL" split_words:"true"`
	GeneralModel       string  `envconfig:"GENERAL_MODEL" split_words:"true"`
	WebTemperature     float32 `envconfig:"WEB_TEMPERATURE" split_words:"true" default:"-1"`
	FinanceTemperature float32 `envconfig:"FINANCE_TEMPERATURE" split_words:"true" default:"-1"`
	GeneralTemperature float32 `envconfig:"GENERAL_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: groq api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

func (c Config) GroqFor(id contractx.CapabilityID) groqx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch id {
	case contractx.CapabilityWeb:
		if v := strings.TrimSpace(c.WebModel); v != "" {
			modelName = v
		}
		if c.WebTemperature >= 0 {
			temp = c.WebTemperature
		}
	case contractx.CapabilityFinance:
		if v := strings.TrimSpace(c.FinanceModel); v != "" {
			modelName = v
		}
		if c.FinanceTemperature >= 0 {
			temp = c.FinanceTemperature
		}
	case contractx.CapabilityGeneral:
		if v := strings.TrimSpace(c.GeneralModel); v != "" {
			modelName = v
		}
		if c.GeneralTemperature >= 0 {
			temp = c.GeneralTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return groqx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
	}
}
