package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "app",
		Usage: "Backoffice reporting API and tools",
		Commands: []*cli.Command{
			cmdServe,
			cmdMigrate,
			cmdSeed,
			cmdReport,
			cmdRecord,
			cmdCategories,
			cmdEntities,
			cmdRepl,
		},
	}
}
