package commands

import (
	"context"
	"flag"
	"fmt"
)

var ListProjectsCmd = ListProjects{
	command: defaults(),
	tsv:     false,
	json:    false,
}

type ListProjects struct {
	command
	tsv  bool
	json bool
}

func (cmd *ListProjects) Name() string {
	return "list-projects"
}

func (cmd *ListProjects) Description() string {
	return "Lists the project tabs in the account spreadsheet"
}

func (cmd *ListProjects) Usage() string {
	return "--email <email> [--tsv | --json]"
}

func (cmd *ListProjects) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] list-projects [options] --email <email>\n", APP)
	fmt.Println()
	fmt.Println("  Lists the project tabs of the account spreadsheet in spreadsheet order, creating the")
	fmt.Println("  spreadsheet if the account does not have one yet.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    chaterp-app-sheets list-projects --email "someone@example.com"`)
	fmt.Println(`    chaterp-app-sheets list-projects --email "someone@example.com" --tsv > projects.tsv`)
	fmt.Println()
}

func (cmd *ListProjects) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("list-projects")

	flagset.BoolVar(&cmd.tsv, "tsv", cmd.tsv, "Lists the projects (and sheet IDs) as tab separated values")
	flagset.BoolVar(&cmd.json, "json", cmd.json, "Lists the projects (and sheet IDs) as JSON")

	return flagset
}

func (cmd *ListProjects) Execute(args ...any) error {
	var options any
	if len(args) > 0 {
		options = args[0]
	}

	if err := cmd.validate(options); err != nil {
		return err
	}

	if cmd.tsv && cmd.json {
		return fmt.Errorf("--tsv and --json are mutually exclusive")
	}

	ctx := context.Background()

	service, s, spreadsheet, token, err := cmd.spreadsheet(ctx)
	if err != nil {
		return err
	}

	defer s.Close()

	if cmd.tsv || cmd.json {
		tabs, err := service.Tabs(ctx, token, spreadsheet)
		if err != nil {
			return err
		}

		if cmd.tsv {
			return projectsToTSV(stdout, tabs)
		}

		return projectsToJSON(stdout, spreadsheet, tabs)
	}

	return cmd.list(ctx, service, spreadsheet, token)
}
