package tool

import (
	"strings"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
)

// Handoff is a delegation edge. Calling its tool moves control of the run to Target.
type Handoff struct {
	Target contractx.AgentType
	Info   *schema.ToolInfo
}

func NewHandoff(target contractx.AgentType, description string) Handoff {
	return Handoff{
		Target: target,
		Info: &schema.ToolInfo{
			Name:        HandoffToolName(target),
			Desc:        strings.TrimSpace(description),
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
	}
}

// HandoffToolName derives the tool name from the target's display name,
// e.g. "Cart Manager" becomes transfer_to_cart_manager.
func HandoffToolName(target contractx.AgentType) string {
	name := strings.ToLower(strings.TrimSpace(target.DisplayName()))
	return "transfer_to_" + strings.Join(strings.Fields(name), "_")
}

// HandoffAck is the tool message recorded when a handoff is taken.
func HandoffAck(target contractx.AgentType) string {
	return "Transferred to " + target.DisplayName()
}
