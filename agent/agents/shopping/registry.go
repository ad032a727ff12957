package shopping

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
	llmx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/llm"
	providerx "github.com/tanpawarit/Chative-Shopping-Assistant/pkg/llmprovider"
)

// NewModels creates the shopping and cart chat models from cfg.
func NewModels(ctx context.Context, cfg llmx.Config) (Models, error) {
	if err := cfg.Validate(); err != nil {
		return Models{}, err
	}

	shopping, err := providerx.NewChatModel(ctx, cfg.Config, cfg.ChatModelFor(contractx.AgentTypeShopping))
	if err != nil {
		return Models{}, fmt.Errorf("%w: create shopping model: %v", contractx.ErrModelInvoke, err)
	}
	cart, err := providerx.NewChatModel(ctx, cfg.Config, cfg.ChatModelFor(contractx.AgentTypeCart))
	if err != nil {
		return Models{}, fmt.Errorf("%w: create cart model: %v", contractx.ErrModelInvoke, err)
	}

	return Models{Shopping: shopping, Cart: cart}, nil
}
