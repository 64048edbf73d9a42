// Package cmd implements the CLI application to track personal finances.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/fintrack"
	"github.com/google/subcommands"
)

// Commands lists the subcommands of the application. A main package
// registers them all on a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&loginCmd{},
	&registerCmd{},
	&logoutCmd{},
	&limitCmd{},
	&dashboardCmd{},
	&expenseAddCmd{},
	&expenseListCmd{},
	&expenseEditCmd{},
	&expenseRmCmd{},
	&subAddCmd{},
	&subListCmd{},
	&subEditCmd{},
	&subRmCmd{},
	&subToggleCmd{},
	&investAddCmd{},
	&investListCmd{},
	&investEditCmd{},
	&investRmCmd{},
	&coinSearchCmd{},
	&assetAddCmd{},
	&assetListCmd{},
	&assetRmCmd{},
	&reportCmd{},
	&pricesCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var apiURL = flag.String("api-url", defaultAPIURL(), "Base URL of the backend API")
var sessionFile = flag.String("session-file", fintrack.DefaultSessionPath(), "Path to the session file")

func defaultAPIURL() string {
	if url := os.Getenv("FINTRACK_API_URL"); url != "" {
		return url
	}
	return fintrack.DefaultBaseURL
}

// loadSession reads the session from the app session file.
func loadSession() (*fintrack.Session, error) {
	return fintrack.LoadSession(*sessionFile)
}

// saveSession writes the session into the app session file.
func saveSession(session *fintrack.Session) error {
	return fintrack.SaveSession(*sessionFile, session)
}

// newClient creates the API client carrying the session credential.
func newClient(session *fintrack.Session) *fintrack.Client {
	client := fintrack.NewClient(*apiURL)
	client.SetToken(session.Token)
	return client
}

// notify prints a store notification to stderr, keeping stdout for reports.
func notify(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}

// openStore authenticates from the session file and loads the full mirror.
// An invalid or expired session clears the stored credential so the user is
// asked to log in again instead of replaying a dead token.
func openStore(ctx context.Context) (*fintrack.Store, *fintrack.Session, error) {
	session, err := loadSession()
	if err != nil {
		return nil, nil, err
	}
	if session.Token == "" {
		return nil, nil, errors.New("not logged in, run 'fin login' first")
	}

	client := newClient(session)
	if client.TokenExpired() {
		if err := fintrack.ClearSession(*sessionFile); err != nil {
			return nil, nil, err
		}
		return nil, nil, errors.New("session expired, run 'fin login' again")
	}

	store := fintrack.NewStore(client, fintrack.NewQuoter(), notify)
	if err := store.Load(ctx); err != nil {
		if errors.Is(err, fintrack.ErrSessionInvalid) {
			if cerr := fintrack.ClearSession(*sessionFile); cerr != nil {
				return nil, nil, cerr
			}
			return nil, nil, fmt.Errorf("session rejected by the backend, run 'fin login' again: %w", err)
		}
		return nil, nil, err
	}
	return store, session, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// source when the renderer cannot be set up.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail prints the error and returns the failure exit status, the common
// tail of every command.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
