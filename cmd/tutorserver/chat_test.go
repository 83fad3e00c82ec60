package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/a-h/tutorserver/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

type fakePoster struct {
	err error
}

func (f fakePoster) ChatPost(ctx context.Context, req models.ChatPostRequest) (models.ChatPostResponse, error) {
	if f.err != nil {
		return models.ChatPostResponse{}, f.err
	}
	return models.ChatPostResponse{Reply: "reply to " + req.Message}, nil
}

func receive(t *testing.T, fromServer <-chan []transcriptEntry) []transcriptEntry {
	t.Helper()
	select {
	case x := <-fromServer:
		return x
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for transcript")
		return nil
	}
}

func TestConverse(t *testing.T) {
	tests := []struct {
		name          string
		poster        fakePoster
		expectedReply string
	}{
		{
			name:          "replies are added to the transcript",
			poster:        fakePoster{},
			expectedReply: "reply to hello",
		},
		{
			name:          "server errors are shown as unreachable",
			poster:        fakePoster{err: errors.New("connection refused")},
			expectedReply: unreachableReply,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			toServer := make(chan string)
			fromServer := make(chan []transcriptEntry)
			go converse(ctx, tt.poster, toServer, fromServer)

			toServer <- "hello"
			pending := receive(t, fromServer)
			if diff := cmp.Diff([]transcriptEntry{{Type: entryTypeStudent, Content: "hello"}}, pending); diff != "" {
				t.Error(diff)
			}
			done := receive(t, fromServer)
			expected := []transcriptEntry{
				{Type: entryTypeStudent, Content: "hello"},
				{Type: entryTypeTutor, Content: tt.expectedReply},
			}
			if diff := cmp.Diff(expected, done); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestModelSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	toServer := make(chan string, 1)
	fromServer := make(chan []transcriptEntry)
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	t.Run("blank messages are not sent", func(t *testing.T) {
		m := newModel(ctx, toServer, fromServer)
		m.textarea.SetValue("   ")
		_, cmd := m.Update(enter)
		if cmd != nil {
			t.Error("expected no command for a blank message")
		}
	})
	t.Run("messages are trimmed and sent", func(t *testing.T) {
		m := newModel(ctx, toServer, fromServer)
		m.textarea.SetValue("  what is gravity?  ")
		updated, cmd := m.Update(enter)
		if cmd == nil {
			t.Fatal("expected a command to send the message")
		}
		cmd()
		if actual := <-toServer; actual != "what is gravity?" {
			t.Errorf("expected trimmed message, got %q", actual)
		}
		if !updated.(model).waiting {
			t.Error("expected the model to wait for a reply")
		}
		if v := updated.(model).textarea.Value(); v != "" {
			t.Errorf("expected input to be cleared, got %q", v)
		}
	})
	t.Run("messages are not sent while waiting", func(t *testing.T) {
		m := newModel(ctx, toServer, fromServer)
		m.waiting = true
		m.textarea.SetValue("another question")
		_, cmd := m.Update(enter)
		if cmd != nil {
			t.Error("expected no command while waiting")
		}
	})
	t.Run("a reply ends the wait", func(t *testing.T) {
		m := newModel(ctx, toServer, fromServer)
		m.waiting = true
		updated, _ := m.Update([]transcriptEntry{
			{Type: entryTypeStudent, Content: "hi"},
			{Type: entryTypeTutor, Content: "hello"},
		})
		if updated.(model).waiting {
			t.Error("expected waiting to be cleared")
		}
	})
}
