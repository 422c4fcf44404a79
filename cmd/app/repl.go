package main

import (
	"context"
	"os"

	"backoffice/internal/adapters/repl"

	"github.com/urfave/cli/v3"
)

var cmdRepl = &cli.Command{
	Name:  "repl",
	Usage: "Browse listings interactively",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		svc, closeBackend, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeBackend()

		repl.Run(ctx, svc, os.Stdin, cmd.Root().Writer)
		return nil
	},
}
