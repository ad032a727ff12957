package shopping

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	nodex "github.com/tanpawarit/Chative-Shopping-Assistant/agent/nodes"
)

func (s *Service) compileRespondGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("load_conversation",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.LoadConversation(ctx, in, s.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_conversation: %w", err)
	}

	if err := graph.AddLambdaNode("run_dispatcher",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RunDispatcher(ctx, in, s.runner, s.buildAgents)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node run_dispatcher: %w", err)
	}

	if err := graph.AddLambdaNode("restructure",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.Restructure(ctx, in, s.formatter)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node restructure: %w", err)
	}

	if err := graph.AddLambdaNode("save_conversation",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.SaveConversation(ctx, in, s.store, s.newToken)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node save_conversation: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_envelope",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeEnvelope(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_envelope: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "load_conversation"},
		{"load_conversation", "run_dispatcher"},
		{"run_dispatcher", "restructure"},
		{"restructure", "save_conversation"},
		{"save_conversation", "finalize_envelope"},
		{"finalize_envelope", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("shopping.respond"))
	if err != nil {
		return nil, fmt.Errorf("compile shopping graph: %w", err)
	}
	return runner, nil
}
