package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	uhppoted "github.com/uhppoted/uhppoted-lib/command"

	"github.com/ydg/chaterp-app-sheets/commands"
)

var cli = []uhppoted.Command{
	&commands.VersionCmd,
	&commands.AuthoriseCmd,
	&commands.GetSpreadsheetCmd,
	&commands.ListProjectsCmd,
	&commands.CreateProjectCmd,
	&commands.RenameProjectCmd,
	&commands.InfoCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = uhppoted.NewHelp(commands.APP, cli, nil)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	if options.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cmd, err := uhppoted.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if cmd == nil {
		help.Execute()
		os.Exit(1)
	}

	if err = cmd.Execute(&options); err != nil {
		fmt.Fprintf(os.Stderr, "\n   ERROR: %v\n\n", err)
		os.Exit(1)
	}
}
