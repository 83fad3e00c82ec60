package mistral

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/a-h/jsonapi"
	"github.com/tmc/langchaingo/llms"
)

const (
	DefaultEndpoint = "https://api.mistral.ai/v1/chat/completions"
	DefaultModel    = "mistral-large-latest"
	DefaultTimeout  = 30 * time.Second
)

var (
	ErrMissingAPIKey     = errors.New("mistral: API key is required")
	ErrMalformedResponse = errors.New("mistral: malformed response")
	ErrEmptyContent      = errors.New("mistral: empty completion content")
)

type Option func(*Client)

// WithEndpoint overrides the chat completions URL.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		c.endpoint = url
	}
}

// WithModel sets the model used when the caller doesn't pass llms.WithModel.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithTimeout bounds the whole request, including reading the response body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Client{
		apiKey:   apiKey,
		endpoint: DefaultEndpoint,
		model:    DefaultModel,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	endpoint, err := jsonapi.URL(c.endpoint).String()
	if err != nil {
		return nil, fmt.Errorf("mistral: invalid endpoint %q: %w", c.endpoint, err)
	}
	c.endpoint = endpoint
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	return c, nil
}

// Client calls the Mistral chat completions API. It holds no mutable state, so a
// single Client is shared by all requests.
type Client struct {
	apiKey   string
	endpoint string
	model    string
	timeout  time.Duration
}

var _ llms.Model = (*Client)(nil)

func (c *Client) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c, prompt, options...)
}

func (c *Client) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{
		Model: c.model,
		TopP:  1,
	}
	for _, opt := range options {
		opt(&opts)
	}
	if opts.Model == "" {
		opts.Model = c.model
	}
	if opts.StreamingFunc != nil {
		return nil, fmt.Errorf("mistral: streaming is not supported")
	}

	req, err := newCompletionRequest(messages, opts)
	if err != nil {
		return nil, err
	}
	resp, err := c.complete(ctx, req)
	if err != nil {
		return nil, err
	}

	choice := resp.Choices[0]
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{
				Content:    *choice.Message.Content,
				StopReason: choice.FinishReason,
				GenerationInfo: map[string]any{
					"PromptTokens":     resp.Usage.PromptTokens,
					"CompletionTokens": resp.Usage.CompletionTokens,
					"TotalTokens":      resp.Usage.TotalTokens,
				},
			},
		},
	}, nil
}

func (c *Client) complete(ctx context.Context, req completionRequest) (resp completionResponse, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err = jsonapi.Post[completionRequest, completionResponse](ctx, c.endpoint, req,
		jsonapi.WithRequestHeader("Accept", "application/json"),
		jsonapi.WithAuthorization("Bearer "+c.apiKey))
	if err != nil {
		return resp, c.responseError(ctx, err)
	}
	if err = resp.validate(); err != nil {
		return resp, err
	}
	return resp, nil
}

func (c *Client) responseError(ctx context.Context, err error) error {
	var ise jsonapi.InvalidStatusError
	if errors.As(err, &ise) {
		return fmt.Errorf("mistral: unexpected response: %w", ise)
	}
	var ije jsonapi.InvalidJSONError
	if errors.As(err, &ije) {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, ije)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("mistral: request timed out after %v: %w", c.timeout, context.DeadlineExceeded)
	}
	return fmt.Errorf("mistral: request failed: %w", err)
}

func newCompletionRequest(messages []llms.MessageContent, opts llms.CallOptions) (req completionRequest, err error) {
	req = completionRequest{
		Model:       opts.Model,
		Messages:    make([]completionMessage, len(messages)),
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		TopP:        opts.TopP,
		Stream:      false,
	}
	for i, m := range messages {
		role, err := roleOf(m.Role)
		if err != nil {
			return req, err
		}
		var sb strings.Builder
		for _, part := range m.Parts {
			text, ok := part.(llms.TextContent)
			if !ok {
				return req, fmt.Errorf("mistral: unsupported message part %T", part)
			}
			sb.WriteString(text.Text)
		}
		content := sb.String()
		req.Messages[i] = completionMessage{
			Role:    role,
			Content: &content,
		}
	}
	return req, nil
}

func roleOf(t llms.ChatMessageType) (string, error) {
	switch t {
	case llms.ChatMessageTypeSystem:
		return "system", nil
	case llms.ChatMessageTypeHuman:
		return "user", nil
	case llms.ChatMessageTypeAI:
		return "assistant", nil
	}
	return "", fmt.Errorf("mistral: unsupported message role %q", t)
}
