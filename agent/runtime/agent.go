package runtime

import (
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
	toolx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/tool"
)

// Agent is one dispatcher configuration: a model, its instructions, the capabilities it may
// call and the agents it may hand control to.
type Agent struct {
	Type         contractx.AgentType
	Instructions string
	Model        einomodel.ToolCallingChatModel
	Capabilities []contractx.Capability
	Handoffs     []Handoff
}

// Handoff is a one-way delegation edge to another agent.
type Handoff struct {
	Info *schema.ToolInfo
	To   *Agent
}

func HandoffTo(to *Agent, description string) Handoff {
	return Handoff{
		Info: toolx.NewHandoff(to.Type, description).Info,
		To:   to,
	}
}

func (a *Agent) validate() error {
	if a == nil {
		return fmt.Errorf("%w: agent is nil", contractx.ErrValidation)
	}
	if a.Model == nil {
		return fmt.Errorf("%w: agent=%s has no model", contractx.ErrValidation, a.Type)
	}
	if strings.TrimSpace(a.Instructions) == "" {
		return fmt.Errorf("%w: agent=%s has no instructions", contractx.ErrValidation, a.Type)
	}
	for _, h := range a.Handoffs {
		if h.To == nil || h.Info == nil {
			return fmt.Errorf("%w: agent=%s has an incomplete handoff", contractx.ErrValidation, a.Type)
		}
	}
	return nil
}

func (a *Agent) toolInfos() []*schema.ToolInfo {
	infos := make([]*schema.ToolInfo, 0, len(a.Capabilities)+len(a.Handoffs))
	for _, c := range a.Capabilities {
		infos = append(infos, c.Info())
	}
	for _, h := range a.Handoffs {
		infos = append(infos, h.Info)
	}
	return infos
}

func (a *Agent) capability(name string) (contractx.Capability, bool) {
	for _, c := range a.Capabilities {
		if c.Info().Name == name {
			return c, true
		}
	}
	return nil, false
}

func (a *Agent) handoff(name string) (Handoff, bool) {
	for _, h := range a.Handoffs {
		if h.Info.Name == name {
			return h, true
		}
	}
	return Handoff{}, false
}
