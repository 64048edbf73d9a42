package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/fintrack"
	"github.com/google/subcommands"
)

type loginCmd struct {
	email    string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log in to the backend and store the session token" }
func (*loginCmd) Usage() string {
	return `fin login -email <email> [-password <password>]

  Exchanges credentials for a bearer token and stores it in the session
  file. The password is prompted on stdin when not given as a flag.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Account email")
	f.StringVar(&c.password, "password", "", "Account password (prompted when empty)")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return authenticate(ctx, c.email, c.password, func(client *fintrack.Client, email, password string) (fintrack.AuthResponse, error) {
		return client.Login(ctx, email, password)
	})
}

type registerCmd struct {
	email    string
	password string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create an account and store the session token" }
func (*registerCmd) Usage() string {
	return `fin register -email <email> [-password <password>]

  Creates a new account on the backend, logs in and stores the bearer
  token in the session file.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Account email")
	f.StringVar(&c.password, "password", "", "Account password (prompted when empty)")
}

func (c *registerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return authenticate(ctx, c.email, c.password, func(client *fintrack.Client, email, password string) (fintrack.AuthResponse, error) {
		return client.Register(ctx, email, password)
	})
}

// authenticate is the shared tail of login and register: run the exchange
// and persist the token next to the untouched spending limit.
func authenticate(ctx context.Context, email, password string, exchange func(*fintrack.Client, string, string) (fintrack.AuthResponse, error)) subcommands.ExitStatus {
	if email == "" {
		fmt.Fprintln(os.Stderr, "Error: -email is required.")
		return subcommands.ExitUsageError
	}
	if password == "" {
		fmt.Print("Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fail(err)
		}
		password = strings.TrimSpace(line)
	}

	session, err := loadSession()
	if err != nil {
		return fail(err)
	}
	client := fintrack.NewClient(*apiURL)
	resp, err := exchange(client, email, password)
	if err != nil {
		return fail(err)
	}

	session.Token = client.Token()
	if err := saveSession(session); err != nil {
		return fail(err)
	}
	if resp.Message != "" {
		fmt.Println(resp.Message)
	}
	fmt.Printf("✅ Logged in as %s.\n", email)
	return subcommands.ExitSuccess
}

type logoutCmd struct{}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "discard the stored session token" }
func (*logoutCmd) Usage() string {
	return `fin logout

  Removes the stored bearer token. The spending limit is kept.
`
}

func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (*logoutCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := fintrack.ClearSession(*sessionFile); err != nil {
		return fail(err)
	}
	fmt.Println("✅ Logged out.")
	return subcommands.ExitSuccess
}
