package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/a-h/tutorserver/client"
	"github.com/a-h/tutorserver/models"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type ChatCommand struct {
	TutorServerURL string `help:"The URL of the tutor server." env:"TUTOR_SERVER_URL" default:"http://127.0.0.1:8000"`
}

func (c ChatCommand) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	toServer := make(chan string)
	fromServer := make(chan []transcriptEntry)
	go converse(ctx, client.New(c.TutorServerURL), toServer, fromServer)

	p := tea.NewProgram(newModel(ctx, toServer, fromServer))
	if _, err = p.Run(); err != nil {
		return err
	}
	return nil
}

const unreachableReply = "Error: Unable to reach the server. Please try again later."

type chatPoster interface {
	ChatPost(ctx context.Context, req models.ChatPostRequest) (models.ChatPostResponse, error)
}

// converse owns the transcript. It publishes a copy after the student's message
// is added, and again once the reply arrives.
func converse(ctx context.Context, c chatPoster, toServer <-chan string, fromServer chan<- []transcriptEntry) {
	var transcript []transcriptEntry
	publish := func() bool {
		select {
		case fromServer <- slices.Clone(transcript):
			return true
		case <-ctx.Done():
			return false
		}
	}
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-toServer:
			transcript = append(transcript, transcriptEntry{Type: entryTypeStudent, Content: msg})
			if !publish() {
				return
			}
			reply := unreachableReply
			resp, err := c.ChatPost(ctx, models.ChatPostRequest{Message: msg})
			if err == nil {
				reply = resp.Reply
			}
			transcript = append(transcript, transcriptEntry{Type: entryTypeTutor, Content: reply})
			if !publish() {
				return
			}
		}
	}
}

type entryType string

const (
	entryTypeStudent entryType = "student"
	entryTypeTutor   entryType = "tutor"
)

type transcriptEntry struct {
	Type    entryType
	Content string
}

// Dracula color scheme.
var (
	Background  = lipgloss.Color("#282a36")
	CurrentLine = lipgloss.Color("#44475a")
	Foreground  = lipgloss.Color("#f8f8f2")
	Cyan        = lipgloss.Color("#8be9fd")
	Pink        = lipgloss.Color("#ff79c6")
	Purple      = lipgloss.Color("#bd93f9")
)

var headerStyle = lipgloss.NewStyle().Background(CurrentLine).Foreground(Purple).Bold(true).Margin(10).Padding(1).PaddingTop(0)

var header = `
 _______  __   __  _______  _______  ______
|       ||  | |  ||       ||       ||    _ |
|_     _||  | |  ||_     _||   _   ||   | ||
  |   |  |  |_|  |  |   |  |  | |  ||   |_||_
  |   |  |       |  |   |  |  |_|  ||    __  |
  |   |  |       |  |   |  |       ||   |  | |
  |___|  |_______|  |___|  |_______||___|  |_|
`

type model struct {
	viewport viewport.Model
	textarea textarea.Model
	ctx      context.Context

	// waiting is set while a message is with the server.
	waiting bool

	toServer   chan<- string
	fromServer <-chan []transcriptEntry
}

func newModel(ctx context.Context, toServer chan<- string, fromServer <-chan []transcriptEntry) model {
	ta := textarea.New()
	ta.Placeholder = "Ask your tutor a question..."
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 2000

	ta.SetHeight(3)

	// Remove cursor line styling
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)
	vp.SetContent(headerStyle.Render(header))

	ta.KeyMap.InsertNewline.SetEnabled(false)

	return model{
		ctx:        ctx,
		textarea:   ta,
		viewport:   vp,
		toServer:   toServer,
		fromServer: fromServer,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.subscribeToServer(),
	)
}

func (m model) subscribeToServer() tea.Cmd {
	return func() tea.Msg {
		select {
		case x := <-m.fromServer:
			return x
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m model) send(msg string) tea.Cmd {
	return func() tea.Msg {
		select {
		case m.toServer <- msg:
		case <-m.ctx.Done():
		}
		return nil
	}
}

var entryTypeToStyle = map[entryType]lipgloss.Style{
	entryTypeStudent: lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(Background).Foreground(Pink),
	entryTypeTutor:   lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(Background).Foreground(Cyan),
}

var entryTypeToIcon = map[entryType]string{
	entryTypeStudent: "🧑‍🎓",
	entryTypeTutor:   "🤖",
}

func formatEntry(e transcriptEntry) string {
	style, ok := entryTypeToStyle[e.Type]
	if !ok {
		return e.Content
	}
	icon, ok := entryTypeToIcon[e.Type]
	if !ok {
		icon = "🤷"
	}
	wrapped := wordwrap.String(strings.TrimSpace(icon+" "+e.Content), 80)
	return style.Render(wrapped)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case []transcriptEntry:
		var sb strings.Builder
		for _, e := range msg {
			sb.WriteString(formatEntry(e))
			sb.WriteString("\n")
		}
		m.viewport.SetContent(sb.String())
		m.viewport.GotoBottom()
		m.waiting = len(msg) > 0 && msg[len(msg)-1].Type == entryTypeStudent
		return m, m.subscribeToServer()
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - m.textarea.Height() - 3
		m.textarea.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			v := strings.TrimSpace(m.textarea.Value())
			if v == "" || m.waiting {
				return m, nil
			}
			m.textarea.Reset()
			m.waiting = true
			return m, m.send(v)
		default:
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			return m, cmd
		}

	case cursor.BlinkMsg:
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m model) View() string {
	status := ""
	if m.waiting {
		status = lipgloss.NewStyle().Foreground(Foreground).Render("Tutor is thinking...")
	}
	return fmt.Sprintf("%s\n%s\n%s",
		m.viewport.View(),
		status,
		m.textarea.View(),
	) + "\n\n"
}
