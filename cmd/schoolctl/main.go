package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/danmwangi/schoolhub/internal/client"
	"github.com/danmwangi/schoolhub/internal/domain/student"
	"github.com/danmwangi/schoolhub/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	env := os.Getenv("APP_ENV")

	if env == "" {
		env = "dev"
	}

	log := observability.NewLogger(env)

	baseURL := os.Getenv("SCHOOLHUB_URL")

	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	session := client.NewSession(client.DefaultTokenPath(), log)
	api := client.NewAPI(baseURL, session.Token)

	ctx := context.Background()

	var err error

	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, api, session, os.Args[2:])
	case "signup":
		err = runSignup(ctx, api, session, os.Args[2:])
	case "logout":
		session.Clear()
		fmt.Println("logged out")
	case "students":
		err = runStudents(ctx, api, session, log)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: schoolctl <command>

commands:
  login   -email <e> -password <p>
  signup  -username <u> -email <e> -password <p> [-type <t>]
  logout
  students`)
}

func runLogin(ctx context.Context, api *client.API, session *client.Session, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	resp, err := api.Login(ctx, *email, *password)

	if err != nil {
		return err
	}

	if err := session.SetToken(resp.Token); err != nil {
		return err
	}

	fmt.Printf("logged in as %s (%s)\n", resp.User.Username, resp.User.Email)

	return nil
}

func runSignup(ctx context.Context, api *client.API, session *client.Session, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	username := fs.String("username", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	userType := fs.String("type", "", "user type (optional)")
	_ = fs.Parse(args)

	resp, err := api.Signup(ctx, *username, *password, *email, *userType)

	if err != nil {
		return err
	}

	if err := session.SetToken(resp.Token); err != nil {
		return err
	}

	fmt.Printf("signed up as %s (%s)\n", resp.User.Username, resp.User.Email)

	return nil
}

// runStudents is the paginated table view. The session controller gates
// entry: no stored token means straight back to login, and any failed
// fetch drops the session the same way.
func runStudents(ctx context.Context, api *client.API, session *client.Session, log *slog.Logger) error {
	if session.State() != client.Authenticated {
		return fmt.Errorf("not logged in; run `schoolctl login` first")
	}

	table := client.NewTable(func(ctx context.Context, page, limit int) ([]student.Student, int, error) {
		p, err := api.ListStudents(ctx, page, limit)

		if err != nil {
			return nil, 0, err
		}

		return p.Data, p.TotalPages, nil
	}, client.WithLogger(log))

	fmt.Println("loading...")

	if err := table.Load(ctx, 1); err != nil {
		session.HandleFailure(err)
		return fmt.Errorf("fetch failed, session cleared; log in again: %w", err)
	}

	render(table)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")

		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)

		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "q":
			return nil
		case "next":
			table.PageChange(ctx, table.CurrentPage()+1)
		case "prev":
			table.PageChange(ctx, table.CurrentPage()-1)
		case "page":
			if len(fields) == 2 {
				if n, err := strconv.Atoi(fields[1]); err == nil {
					table.PageChange(ctx, n)
				}
			}
		case "filter":
			// filter firstname=an lastname= grade=5
			f := client.Filters{}
			for _, kv := range fields[1:] {
				k, v, _ := strings.Cut(kv, "=")
				switch k {
				case "firstname":
					f.Firstname = v
				case "lastname":
					f.Lastname = v
				case "grade":
					f.Grade = v
				}
			}
			table.SetFilters(f)
		case "clear":
			table.SetFilters(client.Filters{})
		case "edit":
			if len(fields) == 2 {
				table.Edit(fields[1])
			}
		case "delete":
			if len(fields) == 2 {
				table.Delete(fields[1])
			}
		default:
			fmt.Println("commands: next, prev, page N, filter k=v..., clear, edit ID, delete ID, quit")
			continue
		}

		if err := table.Err(); err != nil {
			session.HandleFailure(err)
			return fmt.Errorf("fetch failed, session cleared; log in again: %w", err)
		}

		render(table)
	}
}

func render(table *client.Table) {
	rows := table.VisibleRows()

	fmt.Printf("%-36s  %-12s  %-12s  %-6s  %s\n", "ID", "FIRSTNAME", "LASTNAME", "GRADE", "CONTACT")

	for _, s := range rows {
		fmt.Printf("%-36s  %-12s  %-12s  %-6s  %s\n", s.ID, s.Firstname, s.Lastname, s.Grade, s.Contact)
	}

	fmt.Printf("page %d/%d  (grades on page: %s)\n", table.CurrentPage(), table.TotalPages(), strings.Join(table.Grades(), ", "))
}
