package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	cliout "backoffice/internal/adapters/cli"
	"backoffice/internal/app"
	"backoffice/internal/core"

	"github.com/urfave/cli/v3"
)

var cmdReport = &cli.Command{
	Name:      "report",
	Aliases:   []string{"rep"},
	Usage:     "Print the listing and statistics of an entity",
	ArgsUsage: "<entity>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "month", Aliases: []string{"m"}, Usage: "reference month, YYYY-MM (default: current month)"},
		&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "free-text search over code, description, category and total"},
		&cli.StringFlag{Name: "page", Value: "1", Usage: "page number"},
		&cli.StringFlag{Name: "limit", Value: "10", Usage: "records per page (max 200)"},
	},
	Action: report,
}

var cmdRecord = &cli.Command{
	Name:      "record",
	Usage:     "Print a single live record",
	ArgsUsage: "<entity> <id>",
	Action:    record,
}

var cmdCategories = &cli.Command{
	Name:      "categories",
	Aliases:   []string{"cat"},
	Usage:     "List the live categories of an entity",
	ArgsUsage: "<entity>",
	Action:    categories,
}

var cmdEntities = &cli.Command{
	Name:  "entities",
	Usage: "List the entities that support listings",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		fmt.Fprintln(cmd.Root().Writer, strings.Join(entityNames(), "\n"))
		return nil
	},
}

func report(ctx context.Context, cmd *cli.Command) error {
	entity, err := entityArg(cmd)
	if err != nil {
		return err
	}

	svc, closeBackend, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeBackend()

	res, err := svc.ListRecords(ctx, app.ListRecordsRequest{
		Entity: entity,
		Page:   cmd.String("page"),
		Limit:  cmd.String("limit"),
		Search: cmd.String("search"),
		Month:  cmd.String("month"),
	})
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", entity, err)
	}
	cliout.PrintSummary(cmd.Root().Writer, res.Summary)
	return nil
}

func record(ctx context.Context, cmd *cli.Command) error {
	entity, err := entityArg(cmd)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(cmd.Args().Get(1), 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("usage: app record <entity> <id>")
	}

	svc, closeBackend, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeBackend()

	res, err := svc.GetRecord(ctx, entity, id)
	if err != nil {
		return fmt.Errorf("failed to get %s %d: %w", entity, id, err)
	}
	cliout.PrintRecord(cmd.Root().Writer, res.Entity, res.Record)
	return nil
}

func categories(ctx context.Context, cmd *cli.Command) error {
	entity, err := entityArg(cmd)
	if err != nil {
		return err
	}

	svc, closeBackend, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeBackend()

	res, err := svc.ListCategories(ctx, entity)
	if err != nil {
		return fmt.Errorf("failed to list %s categories: %w", entity, err)
	}
	cliout.PrintCategories(cmd.Root().Writer, res.Entity, res.Categories)
	return nil
}

func entityArg(cmd *cli.Command) (string, error) {
	entity := cmd.Args().First()
	if entity == "" {
		return "", fmt.Errorf("entity is required, one of: %s", strings.Join(entityNames(), ", "))
	}
	return entity, nil
}

func entityNames() []string {
	var names []string
	for _, e := range core.Entities() {
		names = append(names, e.Name)
	}
	return names
}
