package llm

import (
	"errors"
	"testing"

	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
	providerx "github.com/tanpawarit/Chative-Shopping-Assistant/pkg/llmprovider"
)

func TestChatModelForAgent(t *testing.T) {
	t.Parallel()

	cfg := Config{
		ShoppingModel:      "gpt-4.1",
		CartModel:          "gpt-4.1-mini",
		Temperature:        0.2,
		MaxCompletionToken: 500,
	}

	shop := cfg.ChatModelFor(contractx.AgentTypeShopping)
	if shop.Model != "gpt-4.1" {
		t.Fatalf("shopping model = %q", shop.Model)
	}
	cart := cfg.ChatModelFor(contractx.AgentTypeCart)
	if cart.Model != "gpt-4.1-mini" {
		t.Fatalf("cart model = %q", cart.Model)
	}
	if cart.MaxCompletionToken == nil || *cart.MaxCompletionToken != 500 {
		t.Fatalf("max tokens = %v", cart.MaxCompletionToken)
	}

	cfg.CartModel = " "
	if got := cfg.ChatModelFor(contractx.AgentTypeCart).Model; got != "gpt-4.1" {
		t.Fatalf("cart fallback model = %q", got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := &Config{FormatterModel: "gpt-4o"}
	if err := cfg.Validate(); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("Validate() error = %v, want ErrValidation", err)
	}
	cfg.Config = providerx.Config{APIKey: "sk-test"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}
