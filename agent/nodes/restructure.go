package dispatchnode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
)

// Restructure runs the formatter only when the caller asked for it. Formatting failures fail the request.
func Restructure(ctx context.Context, in *GraphState, formatter contractx.Formatter) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if !in.UseStructuring {
		return in, nil
	}
	if formatter == nil {
		return nil, fmt.Errorf("%w: formatter is not configured", contractx.ErrFormatting)
	}

	out, err := formatter.Restructure(ctx, in.FinalText)
	if err != nil {
		return nil, err
	}
	in.FinalText = out
	return in, nil
}
