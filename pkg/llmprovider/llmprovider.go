package llmprovider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaimodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	headerOrganization = "OpenAI-Organization"
	headerProject      = "OpenAI-Project"
)

// Config is the provider-level connection setup shared by every model the service talks to.
type Config struct {
	BaseURL   string        `split_words:"true" default:"https://api.openai.com/v1"`
	APIKey    string        `split_words:"true" required:"true"`
	OrgKey    string        `split_words:"true"`
	ProjectID string        `split_words:"true"`
	Timeout   time.Duration `split_words:"true" default:"30s"`
}

// ChatModelSpec selects a model and its sampling settings on top of Config.
type ChatModelSpec struct {
	Model              string
	Temperature        float32
	MaxCompletionToken *int
}

// NewChatModel builds an eino tool-calling chat model against the configured endpoint.
func NewChatModel(ctx context.Context, cfg Config, spec ChatModelSpec) (model.ToolCallingChatModel, error) {
	modelName := strings.TrimSpace(spec.Model)
	if modelName == "" {
		return nil, fmt.Errorf("llmprovider: model name is required")
	}

	temperature := spec.Temperature
	conf := &openaimodel.ChatModelConfig{
		BaseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		APIKey:      strings.TrimSpace(cfg.APIKey),
		Model:       modelName,
		MaxTokens:   spec.MaxCompletionToken,
		Temperature: &temperature,
		HTTPClient:  HTTPClient(cfg),
	}

	m, err := openaimodel.NewChatModel(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("llmprovider: create chat model %s: %w", modelName, err)
	}

	return m, nil
}

// NewClient creates an OpenAI SDK client. It returns nil when no API key is configured.
func NewClient(cfg Config) *openaisdk.Client {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}

	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if org := strings.TrimSpace(cfg.OrgKey); org != "" {
		opts = append(opts, option.WithOrganization(org))
	}
	if project := strings.TrimSpace(cfg.ProjectID); project != "" {
		opts = append(opts, option.WithProject(project))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	client := openaisdk.NewClient(opts...)
	return &client
}

// HTTPClient returns a client that stamps organization/project headers on every request.
func HTTPClient(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &headerTransport{
			base:         http.DefaultTransport,
			organization: strings.TrimSpace(cfg.OrgKey),
			project:      strings.TrimSpace(cfg.ProjectID),
		},
	}
}

type headerTransport struct {
	base         http.RoundTripper
	organization string
	project      string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.organization == "" && t.project == "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	if t.organization != "" {
		clone.Header.Set(headerOrganization, t.organization)
	}
	if t.project != "" {
		clone.Header.Set(headerProject, t.project)
	}
	return t.base.RoundTrip(clone)
}
