package dispatchnode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
)

// FinalizeEnvelope trims surrounding whitespace from the formatted answer. A blank answer or a
// missing token is ErrValidation, which the HTTP layer reports as a 500.
func FinalizeEnvelope(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	text := strings.TrimSpace(in.FinalText)
	if text == "" {
		return GraphOutput{}, fmt.Errorf("%w: dispatcher returned empty answer", contractx.ErrValidation)
	}
	if in.NewToken == "" {
		return GraphOutput{}, fmt.Errorf("%w: resumption token was not issued", contractx.ErrValidation)
	}

	return GraphOutput{Envelope: contractx.ResponseEnvelope{
		NewResumptionToken: in.NewToken,
		OriginalInput:      in.RawInput,
		FinalText:          text,
	}}, nil
}
