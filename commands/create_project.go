package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"
)

var CreateProjectCmd = CreateProject{
	command: defaults(),
	project: "",
}

type CreateProject struct {
	command
	project string
}

func (cmd *CreateProject) Name() string {
	return "create-project"
}

func (cmd *CreateProject) Description() string {
	return "Adds a project tab to the account spreadsheet"
}

func (cmd *CreateProject) Usage() string {
	return "--email <email> --project <title>"
}

func (cmd *CreateProject) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] create-project [options] --email <email> --project <title>\n", APP)
	fmt.Println()
	fmt.Println("  Adds a new project tab to the account spreadsheet and lists the resulting projects. Fails")
	fmt.Println("  if the spreadsheet already has a tab with the same title.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    chaterp-app-sheets create-project --email "someone@example.com" --project "Project B"`)
	fmt.Println()
}

func (cmd *CreateProject) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("create-project")

	flagset.StringVar(&cmd.project, "project", cmd.project, "Project (tab) title")

	return flagset
}

func (cmd *CreateProject) Execute(args ...any) error {
	var options any
	if len(args) > 0 {
		options = args[0]
	}

	if err := cmd.validate(options); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.project) == "" {
		return fmt.Errorf("--project is a required option")
	}

	ctx := context.Background()

	service, s, spreadsheet, token, err := cmd.spreadsheet(ctx)
	if err != nil {
		return err
	}

	defer s.Close()

	if err := service.CreateTab(ctx, token, spreadsheet, cmd.project); err != nil {
		return err
	}

	infof("Created project '%s' in spreadsheet %s", cmd.project, spreadsheet)

	return cmd.list(ctx, service, spreadsheet, token)
}
