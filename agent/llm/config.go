package llm

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
	providerx "github.com/tanpawarit/Chative-Shopping-Assistant/pkg/llmprovider"
)

// Config is loaded with the OPENAI prefix.
type Config struct {
	providerx.Config

	ShoppingModel          string  `split_words:"true" default:"gpt-4.1"`
	CartModel              string  `split_words:"true" default:"gpt-4.1"`
	FormatterModel         string  `split_words:"true" default:"gpt-4o"`
	FormatterFallbackModel string  `split_words:"true" default:"gpt-4"`
	EmbeddingModel         string  `split_words:"true" default:"text-embedding-3-large"`
	Temperature            float32 `split_words:"true" default:"0.3"`
	MaxCompletionToken     int     `split_words:"true" default:"2000"`
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openai api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.FormatterModel) == "" {
		return fmt.Errorf("%w: formatter model is required", contractx.ErrValidation)
	}
	return nil
}

func (c Config) ChatModelFor(agentType contractx.AgentType) providerx.ChatModelSpec {
	modelName := strings.TrimSpace(c.ShoppingModel)
	if agentType == contractx.AgentTypeCart {
		if v := strings.TrimSpace(c.CartModel); v != "" {
			modelName = v
		}
	}

	var maxTokens *int
	if c.MaxCompletionToken > 0 {
		n := c.MaxCompletionToken
		maxTokens = &n
	}
	return providerx.ChatModelSpec{
		Model:              modelName,
		Temperature:        c.Temperature,
		MaxCompletionToken: maxTokens,
	}
}
