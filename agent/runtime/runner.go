// Package runtime drives a tool-calling conversation between a user turn and a set of agents.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
	toolx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/tool"
)

const DefaultMaxTurns = 10

const msgAlreadyTransferred = "Control was already transferred in this turn."

var errEmptyModelResponse = errors.New("model returned no message")

type Result struct {
	FinalText string
	// Transcript holds history plus every message produced in this run, without system prompts.
	Transcript []*schema.Message
	LastAgent  contractx.AgentType
	Turns      int
}

type Option func(*Runner)

func WithMaxTurns(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxTurns = n
		}
	}
}

type Runner struct {
	maxTurns int
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{maxTurns: DefaultMaxTurns}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run appends input to history and lets entry answer it. Tool calls are executed in order
// before the next model call; a handoff switches the answering agent for the rest of the run.
func (r *Runner) Run(
	ctx context.Context,
	entry *Agent,
	session contractx.SessionContext,
	history []*schema.Message,
	input string,
) (Result, error) {
	if err := entry.validate(); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(input) == "" {
		return Result{}, contractx.ErrInvalidMessage
	}

	transcript := make([]*schema.Message, 0, len(history)+4)
	for _, m := range history {
		if m != nil && m.Role != schema.System {
			transcript = append(transcript, m)
		}
	}
	transcript = append(transcript, schema.UserMessage(input))

	bound := make(map[*Agent]einomodel.ToolCallingChatModel, 2)
	active := entry
	logger := log.Ctx(ctx)

	for turn := 1; turn <= r.maxTurns; turn++ {
		chatModel, err := bindTools(bound, active)
		if err != nil {
			return Result{}, err
		}

		prompt := make([]*schema.Message, 0, len(transcript)+1)
		prompt = append(prompt, schema.SystemMessage(active.Instructions))
		prompt = append(prompt, transcript...)

		msg, err := chatModel.Generate(ctx, prompt)
		if err != nil {
			return Result{}, fmt.Errorf("%w: agent=%s turn=%d: %v", contractx.ErrModelInvoke, active.Type, turn, err)
		}
		if msg == nil {
			return Result{}, fmt.Errorf("%w: agent=%s turn=%d: %v", contractx.ErrModelInvoke, active.Type, turn, errEmptyModelResponse)
		}
		if msg.Role == "" {
			msg.Role = schema.Assistant
		}
		transcript = append(transcript, msg)

		if len(msg.ToolCalls) == 0 {
			logger.Debug().Str("agent", string(active.Type)).Int("turns", turn).Msg("dispatcher produced final answer")
			return Result{
				FinalText:  strings.TrimSpace(msg.Content),
				Transcript: transcript,
				LastAgent:  active.Type,
				Turns:      turn,
			}, nil
		}

		var next *Agent
		for _, call := range msg.ToolCalls {
			name := strings.TrimSpace(call.Function.Name)

			if h, ok := active.handoff(name); ok {
				if next != nil {
					transcript = append(transcript, schema.ToolMessage(msgAlreadyTransferred, call.ID))
					continue
				}
				next = h.To
				transcript = append(transcript, schema.ToolMessage(toolx.HandoffAck(h.To.Type), call.ID))
				continue
			}

			capability, ok := active.capability(name)
			if !ok {
				logger.Warn().Str("agent", string(active.Type)).Str("tool", name).Msg("model called unknown tool")
				transcript = append(transcript, schema.ToolMessage(toolx.Unavailable(name, active.Type), call.ID))
				continue
			}

			out, err := capability.Invoke(ctx, session, call.Function.Arguments)
			if err != nil {
				return Result{}, fmt.Errorf("%w: agent=%s tool=%s: %v", contractx.ErrToolInvoke, active.Type, name, err)
			}
			logger.Debug().Str("agent", string(active.Type)).Str("tool", name).Int("result_len", len(out)).Msg("tool invoked")
			transcript = append(transcript, schema.ToolMessage(out, call.ID))
		}

		if next != nil {
			if err := next.validate(); err != nil {
				return Result{}, err
			}
			logger.Info().Str("from", string(active.Type)).Str("to", string(next.Type)).Msg("dispatcher handoff")
			active = next
		}
	}

	return Result{}, fmt.Errorf("%w: agent=%s limit=%d", contractx.ErrMaxTurnsExceeded, active.Type, r.maxTurns)
}

func bindTools(cache map[*Agent]einomodel.ToolCallingChatModel, agent *Agent) (einomodel.ToolCallingChatModel, error) {
	if m, ok := cache[agent]; ok {
		return m, nil
	}
	infos := agent.toolInfos()
	m := agent.Model
	if len(infos) > 0 {
		var err error
		m, err = agent.Model.WithTools(infos)
		if err != nil {
			return nil, fmt.Errorf("%w: bind tools for agent=%s: %v", contractx.ErrModelInvoke, agent.Type, err)
		}
	}
	cache[agent] = m
	return m, nil
}
