package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&seedCmd{}, "dataset")
	commander.Register(&exportCmd{}, "dataset")
	commander.Register(&importCmd{}, "dataset")
	commander.Register(&resetCmd{}, "dataset")
	commander.Register(&summaryCmd{}, "reports")
	commander.Register(&overviewCmd{}, "reports")
	commander.Register(&syncCmd{}, "cloud")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
