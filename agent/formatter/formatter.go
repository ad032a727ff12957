// Package formatter rewrites a final answer so product ids are wrapped in <id></id> tags.
package formatter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
)

type Config struct {
	Model         string
	FallbackModel string
	SystemPrompt  string
}

// Formatter calls the primary model and retries exactly once on the fallback model when the
// primary is rate limited.
type Formatter struct {
	client        *openai.Client
	model         string
	fallbackModel string
	systemPrompt  string
}

func New(client *openai.Client, cfg Config) (*Formatter, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: openai client is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("%w: formatter model is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		return nil, fmt.Errorf("%w: formatter prompt is required", contractx.ErrValidation)
	}
	return &Formatter{
		client:        client,
		model:         strings.TrimSpace(cfg.Model),
		fallbackModel: strings.TrimSpace(cfg.FallbackModel),
		systemPrompt:  cfg.SystemPrompt,
	}, nil
}

func (f *Formatter) Restructure(ctx context.Context, text string) (string, error) {
	out, err := f.complete(ctx, f.model, text)
	if err == nil {
		return out, nil
	}
	if !isRateLimited(err) || f.fallbackModel == "" {
		return "", fmt.Errorf("%w: model=%s: %v", contractx.ErrFormatting, f.model, err)
	}

	log.Ctx(ctx).Warn().Str("model", f.model).Str("fallback", f.fallbackModel).Msg("formatter rate limited, using fallback model")
	out, err = f.complete(ctx, f.fallbackModel, text)
	if err != nil {
		return "", fmt.Errorf("%w: fallback model=%s: %v", contractx.ErrFormatting, f.fallbackModel, err)
	}
	return out, nil
}

func (f *Formatter) complete(ctx context.Context, model, text string) (string, error) {
	resp, err := f.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(f.systemPrompt),
			openai.UserMessage(text),
		},
	}, option.WithMaxRetries(0))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func isRateLimited(err error) bool {
	var apiErr *openai.Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}
