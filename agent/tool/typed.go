package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
)

// typedTool decodes the model's JSON arguments into T before running. Bad arguments are
// reported back to the model as text.
type typedTool[T any] struct {
	info *schema.ToolInfo
	run  func(ctx context.Context, session contractx.SessionContext, args T) (string, error)
}

func newTool[T any](
	info *schema.ToolInfo,
	run func(ctx context.Context, session contractx.SessionContext, args T) (string, error),
) *typedTool[T] {
	return &typedTool[T]{info: info, run: run}
}

func (t *typedTool[T]) Info() *schema.ToolInfo {
	return t.info
}

func (t *typedTool[T]) Invoke(ctx context.Context, session contractx.SessionContext, arguments string) (string, error) {
	var args T
	raw := strings.TrimSpace(arguments)
	if raw != "" && raw != "null" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return fmt.Sprintf("invalid arguments for tool=%s: %v", t.info.Name, err), nil
		}
	}
	return t.run(ctx, session, args)
}

func invalidArgs(tool, reason string) string {
	return fmt.Sprintf("invalid arguments for tool=%s: %s", tool, reason)
}
