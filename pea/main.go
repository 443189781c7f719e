package main

import (
	"context"
	"flag"
	"os"
	"path"

	"peatrack/cmd"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion runs first: in completion mode it prints and exits.
	completion().Complete("pea")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	periods := predict.Set{"week", "month", "6months", "year", "2years"}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.toml"),
		},
		Sub: map[string]*complete.Command{
			"run": {Flags: map[string]complete.Predictor{
				"d":            predict.Something,
				"email":        predict.Nothing,
				"assist":       predict.Nothing,
				"no-dashboard": predict.Nothing,
			}},
			"review":  {Flags: map[string]complete.Predictor{"p": periods}},
			"history": {Flags: map[string]complete.Predictor{"n": predict.Something}},
			"dashboard": {Flags: map[string]complete.Predictor{
				"o":     predict.Files("*.html"),
				"light": predict.Nothing,
			}},
			"assist": {Flags: map[string]complete.Predictor{"p": periods}},
			"schedule": {Flags: map[string]complete.Predictor{
				"spec":   predict.Something,
				"email":  predict.Nothing,
				"assist": predict.Nothing,
			}},
		},
	}
}
