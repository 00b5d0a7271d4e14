package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"
)

var RenameProjectCmd = RenameProject{
	command: defaults(),
	from:    "",
	to:      "",
}

type RenameProject struct {
	command
	from string
	to   string
}

func (cmd *RenameProject) Name() string {
	return "rename-project"
}

func (cmd *RenameProject) Description() string {
	return "Renames a project tab in the account spreadsheet"
}

func (cmd *RenameProject) Usage() string {
	return "--email <email> --from <title> --to <title>"
}

func (cmd *RenameProject) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] rename-project [options] --email <email> --from <title> --to <title>\n", APP)
	fmt.Println()
	fmt.Println("  Renames a project tab (matched exactly, case sensitive) and lists the resulting projects.")
	fmt.Println("  The tab keeps its sheet ID and contents.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    chaterp-app-sheets rename-project --email "someone@example.com" --from "Project A" --to "Warehouse"`)
	fmt.Println()
}

func (cmd *RenameProject) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("rename-project")

	flagset.StringVar(&cmd.from, "from", cmd.from, "Current project (tab) title")
	flagset.StringVar(&cmd.to, "to", cmd.to, "New project (tab) title")

	return flagset
}

func (cmd *RenameProject) Execute(args ...any) error {
	var options any
	if len(args) > 0 {
		options = args[0]
	}

	if err := cmd.validate(options); err != nil {
		return err
	}

	if cmd.from == "" {
		return fmt.Errorf("--from is a required option")
	}

	if strings.TrimSpace(cmd.to) == "" {
		return fmt.Errorf("--to is a required option")
	}

	if cmd.to == cmd.from {
		return fmt.Errorf("project '%s' not renamed - new title is the same as the current title", cmd.from)
	}

	ctx := context.Background()

	service, s, spreadsheet, token, err := cmd.spreadsheet(ctx)
	if err != nil {
		return err
	}

	defer s.Close()

	if err := service.RenameTab(ctx, token, spreadsheet, cmd.from, cmd.to); err != nil {
		return err
	}

	infof("Renamed project '%s' to '%s' in spreadsheet %s", cmd.from, cmd.to, spreadsheet)

	return cmd.list(ctx, service, spreadsheet, token)
}
