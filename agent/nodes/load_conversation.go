package dispatchnode

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
	conversationx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/conversation"
)

// LoadConversation restores the transcript behind the resumption token. A request without a
// token starts a fresh conversation.
func LoadConversation(ctx context.Context, in *GraphState, store conversationx.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if !in.Session.HasResumptionToken() {
		return in, nil
	}

	history, err := store.Load(ctx, in.Session.ResumptionToken)
	if errors.Is(err, conversationx.ErrConversationNotFound) {
		return nil, fmt.Errorf("%w: %s", contractx.ErrUnknownResumptionToken, in.Session.ResumptionToken)
	}
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}

	in.History = history
	return in, nil
}
