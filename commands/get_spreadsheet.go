package commands

import (
	"context"
	"flag"
	"fmt"
)

var GetSpreadsheetCmd = GetSpreadsheet{
	command: defaults(),
}

type GetSpreadsheet struct {
	command
}

func (cmd *GetSpreadsheet) Name() string {
	return "get-spreadsheet"
}

func (cmd *GetSpreadsheet) Description() string {
	return "Retrieves (or creates) the ChatERP DATA spreadsheet for an account"
}

func (cmd *GetSpreadsheet) Usage() string {
	return "--email <email>"
}

func (cmd *GetSpreadsheet) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get-spreadsheet [options] --email <email>\n", APP)
	fmt.Println()
	fmt.Println("  Looks up the spreadsheet for the account in the local mapping store, creating a new")
	fmt.Println("  'ChatERP DATA' spreadsheet with a 'Project A' tab if the account does not have one yet.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    chaterp-app-sheets --debug get-spreadsheet --credentials "credentials.json" --email "someone@example.com"`)
	fmt.Println()
}

func (cmd *GetSpreadsheet) FlagSet() *flag.FlagSet {
	return cmd.flagset("get-spreadsheet")
}

func (cmd *GetSpreadsheet) Execute(args ...any) error {
	var options any
	if len(args) > 0 {
		options = args[0]
	}

	if err := cmd.validate(options); err != nil {
		return err
	}

	_, s, spreadsheet, _, err := cmd.spreadsheet(context.Background())
	if err != nil {
		return err
	}

	defer s.Close()

	fmt.Fprintf(stdout, "%s\t%s\n", spreadsheet, spreadsheetURL(spreadsheet))

	return nil
}
