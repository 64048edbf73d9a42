package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/fintrack/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// A missing .env file is fine, the environment still applies.
	godotenv.Load()

	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion installs shell completion for all subcommands. It returns
// immediately unless the binary is invoked by the shell completion hook.
func completion() {
	subs := make(map[string]*complete.Command)
	for _, c := range cmd.Commands {
		subs[c.Name()] = &complete.Command{}
	}
	root := &complete.Command{
		Sub: subs,
		Flags: map[string]complete.Predictor{
			"api-url":      predict.Something,
			"session-file": predict.Files("*"),
		},
	}
	root.Complete("fin")
}
