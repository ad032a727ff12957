package dispatchnode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
	conversationx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/conversation"
)

// SaveConversation stores the run transcript under a freshly minted token. Earlier tokens
// keep pointing at their own snapshot.
func SaveConversation(
	ctx context.Context,
	in *GraphState,
	store conversationx.Store,
	newToken func() string,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	token := newToken()
	if err := store.Save(ctx, token, in.Run.Transcript); err != nil {
		return nil, fmt.Errorf("save conversation: %w", err)
	}
	in.NewToken = token
	return in, nil
}
