package mistral

import "fmt"

type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	TopP        float64             `json:"top_p"`
	Stream      bool                `json:"stream"`
}

type completionMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

type completionResponse struct {
	ID      string             `json:"id"`
	Model   string             `json:"model"`
	Choices []completionChoice `json:"choices"`
	Usage   completionUsage    `json:"usage"`
}

type completionChoice struct {
	Index        int                `json:"index"`
	Message      *completionMessage `json:"message"`
	FinishReason string             `json:"finish_reason"`
}

type completionUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// validate checks that choices[0].message.content is present and non-empty.
func (r completionResponse) validate() error {
	if len(r.Choices) == 0 {
		return fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}
	msg := r.Choices[0].Message
	if msg == nil {
		return fmt.Errorf("%w: choice has no message", ErrMalformedResponse)
	}
	if msg.Content == nil {
		return fmt.Errorf("%w: message has no content", ErrMalformedResponse)
	}
	if *msg.Content == "" {
		return ErrEmptyContent
	}
	return nil
}
