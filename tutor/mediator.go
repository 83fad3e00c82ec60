package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
)

var (
	ErrNoChoices  = errors.New("tutor: completion returned no choices")
	ErrEmptyReply = errors.New("tutor: completion returned an empty reply")
)

type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

type Reply struct {
	Text   string
	Source Source
}

func New(log *slog.Logger, llm llms.Model) *Mediator {
	return &Mediator{
		log: log,
		llm: llm,
	}
}

// Mediator turns one student message into one completion call, and falls back
// to a canned reply if the call fails for any reason.
type Mediator struct {
	log *slog.Logger
	llm llms.Model
}

// Reply always returns a non-empty reply.
func (m *Mediator) Reply(ctx context.Context, message string) Reply {
	text, err := m.complete(ctx, message)
	if err != nil {
		m.log.Error("failed to generate reply, using fallback", slog.Any("error", err))
		return Reply{
			Text:   Fallback(message),
			Source: SourceFallback,
		}
	}
	return Reply{
		Text:   text,
		Source: SourceRemote,
	}
}

func (m *Mediator) complete(ctx context.Context, message string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tutor: completion panicked: %v", r)
		}
	}()
	resp, err := m.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, PersonaPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, message),
	},
		llms.WithTemperature(Temperature),
		llms.WithMaxTokens(MaxTokens),
		llms.WithTopP(TopP),
	)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", ErrNoChoices
	}
	if resp.Choices[0].Content == "" {
		return "", ErrEmptyReply
	}
	return resp.Choices[0].Content, nil
}
