package contract

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Capability is a tool the dispatcher can offer to a model. Arguments arrive as the raw JSON
// the model produced; expected outcomes, including bad arguments, come back as text.
type Capability interface {
	Info() *schema.ToolInfo
	Invoke(ctx context.Context, session SessionContext, arguments string) (string, error)
}

type Dispatcher interface {
	Respond(ctx context.Context, session SessionContext, input string, useStructuring bool) (ResponseEnvelope, error)
}

type Formatter interface {
	Restructure(ctx context.Context, text string) (string, error)
}

type Retriever interface {
	Retrieve(ctx context.Context, query string, limit int) (string, error)
}
