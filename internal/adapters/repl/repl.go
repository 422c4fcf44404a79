package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"backoffice/internal/adapters/cli"
	"backoffice/internal/app"
)

var errExit = errors.New("exit")

// session is the browsing state carried between commands.
type session struct {
	entity string
	month  string
	search string
	page   int
	limit  int
	pages  int
}

// Run starts the interactive report browser. Slash commands change the
// session or print a view; any other input becomes the search text of the
// current entity.
func Run(ctx context.Context, svc app.ApplicationService, in io.Reader, out io.Writer) {
	reader := bufio.NewReader(in)
	s := &session{page: 1, limit: 10}

	fmt.Fprintln(out, "Backoffice reports")
	fmt.Fprintf(out, "Entities: %s\n", strings.Join(svc.ListEntities(), ", "))
	fmt.Fprintln(out, "Pick one with /use <entity>, then type to search, or use /help for commands.")
	fmt.Fprintln(out, strings.Repeat("-", 70))

	for {
		fmt.Fprint(out, "\n> ")
		input, readErr := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		if input != "" {
			var err error
			if strings.HasPrefix(input, "/") {
				err = dispatch(ctx, svc, s, out, input)
			} else {
				err = s.setSearch(input).list(ctx, svc, out)
			}
			if errors.Is(err, errExit) {
				fmt.Fprintln(out, "Goodbye!")
				return
			}
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
		}

		if readErr != nil {
			fmt.Fprintln(out)
			return
		}
	}
}

func dispatch(ctx context.Context, svc app.ApplicationService, s *session, out io.Writer, input string) error {
	tokens := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(tokens) == 0 {
		return nil
	}
	cmd := strings.ToLower(tokens[0])
	args := tokens[1:]

	switch cmd {
	case "use", "u":
		if len(args) < 1 {
			fmt.Fprintln(out, "Usage: /use <entity>")
			return nil
		}
		s.entity = strings.ToLower(args[0])
		s.search = ""
		s.page = 1
		return s.list(ctx, svc, out)

	case "month", "m":
		s.month = ""
		if len(args) > 0 {
			s.month = args[0]
		}
		s.page = 1
		return s.list(ctx, svc, out)

	case "search", "s":
		return s.setSearch(strings.Join(args, " ")).list(ctx, svc, out)

	case "limit":
		if len(args) < 1 {
			fmt.Fprintln(out, "Usage: /limit <n>")
			return nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("limit must be a number")
		}
		s.limit = n
		s.page = 1
		return s.list(ctx, svc, out)

	case "list", "l":
		return s.list(ctx, svc, out)

	case "next", "n":
		if s.pages > 0 && s.page >= s.pages {
			fmt.Fprintln(out, "Already on the last page.")
			return nil
		}
		s.page++
		return s.list(ctx, svc, out)

	case "prev", "p":
		if s.page <= 1 {
			fmt.Fprintln(out, "Already on the first page.")
			return nil
		}
		s.page--
		return s.list(ctx, svc, out)

	case "get", "g":
		if err := s.requireEntity(); err != nil {
			return err
		}
		if len(args) < 1 {
			fmt.Fprintln(out, "Usage: /get <id>")
			return nil
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("id must be a positive integer")
		}
		res, err := svc.GetRecord(ctx, s.entity, id)
		if err != nil {
			return err
		}
		cli.PrintRecord(out, res.Entity, res.Record)

	case "cat", "categories":
		if err := s.requireEntity(); err != nil {
			return err
		}
		res, err := svc.ListCategories(ctx, s.entity)
		if err != nil {
			return err
		}
		cli.PrintCategories(out, res.Entity, res.Categories)

	case "entities", "e":
		fmt.Fprintln(out, strings.Join(svc.ListEntities(), "\n"))

	case "help", "h":
		printHelp(out)

	case "exit", "quit", "q":
		return errExit

	default:
		fmt.Fprintf(out, "Unknown command: /%s  (type /help for all commands)\n", cmd)
	}
	return nil
}

func (s *session) setSearch(text string) *session {
	s.search = text
	s.page = 1
	return s
}

func (s *session) requireEntity() error {
	if s.entity == "" {
		return fmt.Errorf("no entity selected, use /use <entity>")
	}
	return nil
}

func (s *session) list(ctx context.Context, svc app.ApplicationService, out io.Writer) error {
	if err := s.requireEntity(); err != nil {
		return err
	}
	res, err := svc.ListRecords(ctx, app.ListRecordsRequest{
		Entity: s.entity,
		Page:   strconv.Itoa(s.page),
		Limit:  strconv.Itoa(s.limit),
		Search: s.search,
		Month:  s.month,
	})
	if err != nil {
		return err
	}
	// Keep the session in step with the clamped values.
	s.page = res.Summary.Pagination.Page
	s.limit = res.Summary.Pagination.Limit
	s.pages = res.Summary.Pagination.Pages
	cli.PrintSummary(out, res.Summary)
	return nil
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, `Commands:
  /use <entity>     switch entity and list its current month
  /month [YYYY-MM]  set the reference month (empty: current month)
  /search [text]    filter by code, description, category or total
  /limit <n>        records per page (1-200)
  /list             print the listing again
  /next, /prev      move between pages
  /get <id>         print one record
  /cat              list the categories of the entity
  /entities         list the available entities
  /exit             leave
Any other input searches the current entity.`)
}
