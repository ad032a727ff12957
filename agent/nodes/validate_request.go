package dispatchnode

import (
	"strings"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
	runtimex "github.com/tanpawarit/Chative-Shopping-Assistant/agent/runtime"
)

type GraphInput struct {
	Session        contractx.SessionContext
	Input          string
	UseStructuring bool
}

type GraphOutput struct {
	Envelope contractx.ResponseEnvelope
}

type GraphState struct {
	Session        contractx.SessionContext
	Input          string
	RawInput       string
	UseStructuring bool

	History []*schema.Message
	Run     runtimex.Result

	FinalText string
	NewToken  string
}

// ValidateRequest trims the user input and resumption token. The auth token is forwarded as given.
func ValidateRequest(in GraphInput) (*GraphState, error) {
	input := strings.TrimSpace(in.Input)
	if input == "" {
		return nil, contractx.ErrInvalidMessage
	}

	session := in.Session
	session.ResumptionToken = strings.TrimSpace(session.ResumptionToken)

	return &GraphState{
		Session:        session,
		Input:          input,
		RawInput:       in.Input,
		UseStructuring: in.UseStructuring,
	}, nil
}
