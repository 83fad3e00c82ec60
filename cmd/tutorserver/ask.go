package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/a-h/tutorserver/client"
	"github.com/a-h/tutorserver/models"
)

type AskCommand struct {
	TutorServerURL string `help:"The URL of the tutor server." env:"TUTOR_SERVER_URL" default:"http://127.0.0.1:8000"`
	Message        string `arg:"" help:"The message to send."`
}

func (c AskCommand) Run(ctx context.Context) (err error) {
	return c.run(ctx, os.Stdout)
}

func (c AskCommand) run(ctx context.Context, w io.Writer) (err error) {
	resp, err := client.New(c.TutorServerURL).ChatPost(ctx, models.ChatPostRequest{
		Message: c.Message,
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	_, err = fmt.Fprintln(w, resp.Reply)
	return err
}
