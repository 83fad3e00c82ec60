package main

import (
	"context"
	"fmt"

	"github.com/a-h/tutorserver"
)

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(tutorserver.Version)
	return nil
}
