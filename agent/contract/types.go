package contract

import (
	"strings"

	"github.com/rs/zerolog"
)

type AgentType string

const (
	AgentTypeShopping AgentType = "shopping"
	AgentTypeCart     AgentType = "cart"
)

func (t AgentType) DisplayName() string {
	switch t {
	case AgentTypeShopping:
		return "Shopping Assistant"
	case AgentTypeCart:
		return "Cart Manager"
	default:
		return string(t)
	}
}

// SessionContext is the caller identity for one request. It is never persisted.
type SessionContext struct {
	DisplayName     string
	Age             int
	ResumptionToken string
	AuthToken       string
}

func (s SessionContext) HasAuthToken() bool {
	return strings.TrimSpace(s.AuthToken) != ""
}

func (s SessionContext) HasResumptionToken() bool {
	return strings.TrimSpace(s.ResumptionToken) != ""
}

// MarshalZerologObject logs the session without the auth token itself.
func (s SessionContext) MarshalZerologObject(e *zerolog.Event) {
	e.Str("display_name", s.DisplayName).
		Int("age", s.Age).
		Bool("has_auth_token", s.HasAuthToken()).
		Str("resumption_token", s.ResumptionToken)
}

type ResponseEnvelope struct {
	NewResumptionToken string `json:"new_resumption_token"`
	OriginalInput      string `json:"original_input"`
	FinalText          string `json:"final_text"`
}
