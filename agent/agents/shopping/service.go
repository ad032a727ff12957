package shopping

import (
	"context"
	"errors"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
	conversationx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/conversation"
	nodex "github.com/tanpawarit/Chative-Shopping-Assistant/agent/nodes"
	promptx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/prompt"
	runtimex "github.com/tanpawarit/Chative-Shopping-Assistant/agent/runtime"
	toolx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/tool"
)

// Models are the chat models behind each agent.
type Models struct {
	Shopping einomodel.ToolCallingChatModel
	Cart     einomodel.ToolCallingChatModel
}

type Config struct {
	MaxTurns int
}

type Option func(*Service)

func WithTokenGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newToken = fn
		}
	}
}

func WithPrompts(p promptx.PromptSet) Option {
	return func(s *Service) {
		s.prompts = p
	}
}

// Service answers one shopping request: it rebuilds the agents, replays the conversation
// behind the resumption token and stores the new transcript under a new token.
type Service struct {
	store     conversationx.Store
	models    Models
	tools     toolx.Deps
	formatter contractx.Formatter
	prompts   promptx.PromptSet
	runner    *runtimex.Runner

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	newToken func() string
}

var _ contractx.Dispatcher = (*Service)(nil)

func New(
	store conversationx.Store,
	models Models,
	tools toolx.Deps,
	formatter contractx.Formatter,
	cfg Config,
	opts ...Option,
) (*Service, error) {
	if store == nil {
		return nil, errors.New("conversation store is required")
	}
	if models.Shopping == nil || models.Cart == nil {
		return nil, errors.New("shopping and cart models are required")
	}

	s := &Service{
		store:     store,
		models:    models,
		tools:     tools,
		formatter: formatter,
		prompts:   promptx.LoadPromptSet(),
		runner:    runtimex.NewRunner(runtimex.WithMaxTurns(cfg.MaxTurns)),
		newToken:  uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if _, err := s.buildAgents(context.Background(), false); err != nil {
		return nil, err
	}

	graphRunner, err := s.compileRespondGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

func (s *Service) Respond(
	ctx context.Context,
	session contractx.SessionContext,
	input string,
	useStructuring bool,
) (contractx.ResponseEnvelope, error) {
	log.Ctx(ctx).Info().
		Object("session", session).
		Bool("use_structuring", useStructuring).
		Msg("dispatching request")

	out, err := s.graphRunner.Invoke(ctx, nodex.GraphInput{
		Session:        session,
		Input:          input,
		UseStructuring: useStructuring,
	})
	if err != nil {
		return contractx.ResponseEnvelope{}, err
	}
	return out.Envelope, nil
}

// buildAgents wires a fresh shopping agent with a one-way edge to a fresh cart agent.
func (s *Service) buildAgents(_ context.Context, useStructuring bool) (*runtimex.Agent, error) {
	cartTools, err := toolx.BuildForAgent(contractx.AgentTypeCart, s.tools)
	if err != nil {
		return nil, err
	}
	shoppingTools, err := toolx.BuildForAgent(contractx.AgentTypeShopping, s.tools)
	if err != nil {
		return nil, err
	}

	cart := &runtimex.Agent{
		Type:         contractx.AgentTypeCart,
		Instructions: s.prompts.CartInstructions(),
		Model:        s.models.Cart,
		Capabilities: cartTools,
	}

	return &runtimex.Agent{
		Type:         contractx.AgentTypeShopping,
		Instructions: s.prompts.ShoppingInstructions(useStructuring),
		Model:        s.models.Shopping,
		Capabilities: shoppingTools,
		Handoffs:     []runtimex.Handoff{runtimex.HandoffTo(cart, s.prompts.CartHandoff)},
	}, nil
}
