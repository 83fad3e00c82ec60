package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/a-h/tutorserver/client"
	"github.com/a-h/tutorserver/models"
)

type StatusCommand struct {
	TutorServerURL string `help:"The URL of the tutor server." env:"TUTOR_SERVER_URL" default:"http://127.0.0.1:8000"`
	Pretty         bool   `help:"Pretty print the JSON output." default:"true"`
}

type status struct {
	Root   models.RootGetResponse   `json:"root"`
	Health models.HealthGetResponse `json:"health"`
}

func (c StatusCommand) Run(ctx context.Context) (err error) {
	return c.run(ctx, os.Stdout)
}

func (c StatusCommand) run(ctx context.Context, w io.Writer) (err error) {
	tsc := client.New(c.TutorServerURL)
	var s status
	if s.Root, err = tsc.RootGet(ctx); err != nil {
		return fmt.Errorf("failed to get root: %w", err)
	}
	if s.Health, err = tsc.HealthGet(ctx); err != nil {
		return fmt.Errorf("failed to get health: %w", err)
	}

	enc := json.NewEncoder(w)
	if c.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(s)
}
