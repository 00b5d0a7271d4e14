package commands

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

var InfoCmd = Info{
	command: defaults(),
}

type Info struct {
	command
}

type revision struct {
	id       string
	modified time.Time
}

func (cmd *Info) Name() string {
	return "info"
}

func (cmd *Info) Description() string {
	return "Displays the account spreadsheet ID, URL and latest revision"
}

func (cmd *Info) Usage() string {
	return "--email <email>"
}

func (cmd *Info) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] info [options] --email <email>\n", APP)
	fmt.Println()
	fmt.Println("  Displays the spreadsheet ID and URL for the account along with the latest Google Drive")
	fmt.Println("  revision and modification time.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    chaterp-app-sheets info --email "someone@example.com"`)
	fmt.Println()
}

func (cmd *Info) FlagSet() *flag.FlagSet {
	return cmd.flagset("info")
}

func (cmd *Info) Execute(args ...any) error {
	var options any
	if len(args) > 0 {
		options = args[0]
	}

	if err := cmd.validate(options); err != nil {
		return err
	}

	ctx := context.Background()

	_, s, spreadsheet, token, err := cmd.spreadsheet(ctx)
	if err != nil {
		return err
	}

	defer s.Close()

	gdrive, err := cmd.gdrive(ctx, token)
	if err != nil {
		return fmt.Errorf("unable to create new Drive client (%v)", err)
	}

	latest, err := getRevision(ctx, gdrive, spreadsheet)
	if err != nil {
		return fmt.Errorf("unable to retrieve spreadsheet revision (%w)", err)
	}

	fmt.Fprintf(stdout, "%-12s %s\n", "spreadsheet", spreadsheet)
	fmt.Fprintf(stdout, "%-12s %s\n", "url", spreadsheetURL(spreadsheet))
	fmt.Fprintf(stdout, "%-12s %s\n", "revision", latest.id)
	fmt.Fprintf(stdout, "%-12s %s\n", "modified", latest.modified.Local().Format("2006-01-02 15:04:05"))

	return nil
}

func (c *command) gdrive(ctx context.Context, token string) (*drive.Service, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   http.DefaultTransport,
		},
	}

	options := []option.ClientOption{
		option.WithHTTPClient(client),
	}

	if c.drive != "" {
		options = append(options, option.WithEndpoint(c.drive))
	}

	return drive.NewService(ctx, options...)
}

// getRevision returns the most recently modified revision of a Drive file.
func getRevision(ctx context.Context, gdrive *drive.Service, fileID string) (*revision, error) {
	page := ""
	latest := revision{
		id:       "",
		modified: time.Time{},
	}

	for {
		call := gdrive.Revisions.List(fileID).Fields("nextPageToken", "revisions(id,modifiedTime)").Context(ctx)
		if page != "" {
			call.PageToken(page)
		}

		revisions, err := call.Do()
		if err != nil {
			return nil, err
		}

		for _, r := range revisions.Revisions {
			datetime, err := time.Parse(time.RFC3339, r.ModifiedTime)
			if err != nil {
				return nil, err
			}

			if latest.modified.Before(datetime) {
				latest.id = r.Id
				latest.modified = datetime
			}
		}

		if page = revisions.NextPageToken; page == "" {
			break
		}
	}

	if latest.modified.IsZero() {
		return nil, fmt.Errorf("unable to identify latest revision for file ID %s", fileID)
	}

	return &latest, nil
}
