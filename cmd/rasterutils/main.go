package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/eak1mov/go-libraster/iterator"
	"github.com/google/subcommands"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&convertCmd{}, "")
	subcommands.Register(&importCmd{}, "")
	subcommands.Register(&exportCmd{}, "")
	subcommands.Register(&statsCmd{}, "")
	subcommands.Register(&infoCmd{}, "")
	subcommands.Register(&exportIndexCmd{}, "")

	verbose := flag.Bool("v", false, "Log debug messages")
	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		iterator.SetLogger(slog.Default())
	}

	os.Exit(int(subcommands.Execute(context.Background())))
}
