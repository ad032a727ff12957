package dispatchnode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
	runtimex "github.com/tanpawarit/Chative-Shopping-Assistant/agent/runtime"
)

// AgentBuilder assembles a fresh entry agent, with its delegation edges, for one request.
type AgentBuilder func(ctx context.Context, useStructuring bool) (*runtimex.Agent, error)

func RunDispatcher(
	ctx context.Context,
	in *GraphState,
	runner *runtimex.Runner,
	build AgentBuilder,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	entry, err := build(ctx, in.UseStructuring)
	if err != nil {
		return nil, err
	}

	res, err := runner.Run(ctx, entry, in.Session, in.History, in.Input)
	if err != nil {
		return nil, err
	}

	in.Run = res
	in.FinalText = res.FinalText
	return in, nil
}
