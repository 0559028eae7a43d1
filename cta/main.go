package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/rpaludo/contas/cmd"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)

	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		commander.Register(c, "")
		sub[c.Name()] = &complete.Command{}
	}

	// Shell completion: exits early when invoked by the shell.
	completion := &complete.Command{
		Sub:   sub,
		Flags: map[string]complete.Predictor{"data-dir": predict.Dirs("*")},
	}
	completion.Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
