package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ydg/chaterp-app-sheets/config"
	"github.com/ydg/chaterp-app-sheets/provisioning"
	"github.com/ydg/chaterp-app-sheets/store"
)

const APP = "chaterp-app-sheets"

const (
	SHEETS = "https://www.googleapis.com/auth/spreadsheets"
	DRIVE  = "https://www.googleapis.com/auth/drive.file"
)

type Options struct {
	Debug bool
}

var conf = config.Load()

var stdout io.Writer = os.Stdout

// command holds the options shared by all the spreadsheet commands.
type command struct {
	workdir     string
	credentials string
	tokens      string
	store       string
	dsn         string
	endpoint    string
	drive       string
	email       string
	token       string
	debug       bool
}

func defaults() command {
	return command{
		workdir:     conf.Workdir,
		credentials: conf.Credentials,
		tokens:      "",
		store:       conf.Store,
		dsn:         conf.DSN,
		endpoint:    conf.Endpoint,
		drive:       "",
		email:       "",
		token:       conf.AccessToken,
		debug:       false,
	}
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (tokens, preferences, etc)")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&c.tokens, "tokens", c.tokens, "Directory for the authorisation tokens. Defaults to <workdir>/.google")
	flagset.StringVar(&c.store, "store", c.store, "Spreadsheet mapping store (file, sqlite, postgres, keyring or memory)")
	flagset.StringVar(&c.dsn, "dsn", c.dsn, "Store location (file path, database path or connection string)")
	flagset.StringVar(&c.email, "email", c.email, "Google account email address")
	flagset.StringVar(&c.token, "token", c.token, "OAuth2 access token. Defaults to the token saved by 'authorise'")

	return flagset
}

func (c *command) validate(options any) error {
	if opts, ok := options.(*Options); ok && opts != nil {
		c.debug = opts.Debug
	}

	if strings.TrimSpace(c.email) == "" {
		return fmt.Errorf("--email is a required option")
	}

	if strings.TrimSpace(c.token) == "" && strings.TrimSpace(c.credentials) == "" {
		return fmt.Errorf("one of --token or --credentials is required")
	}

	return nil
}

// open returns a provisioning service backed by the configured mapping store. The store
// must be closed by the caller.
func (c *command) open() (*provisioning.Service, store.Store, error) {
	cfg := conf
	cfg.DSN = c.dsn

	kind := strings.ToLower(strings.TrimSpace(c.store))
	dsn := cfg.StoreDSN(kind, c.workdir)

	if c.debug {
		debugf("Store - kind:%s  dsn:%s", kind, dsn)
	}

	s, err := store.Open(store.Config{
		Kind:     kind,
		DSN:      dsn,
		Password: conf.KeyringPassword,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open spreadsheet mapping store (%w)", err)
	}

	service := provisioning.NewService(s,
		provisioning.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
		provisioning.WithEndpoint(c.endpoint))

	return service, s, nil
}

// spreadsheet resolves (or creates) the user's spreadsheet and returns it along with the
// service and access token used.
func (c *command) spreadsheet(ctx context.Context) (*provisioning.Service, store.Store, string, string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, nil, "", "", err
	}

	service, s, err := c.open()
	if err != nil {
		return nil, nil, "", "", err
	}

	id, err := service.ResolveOrCreateSpreadsheet(ctx, c.email, token)
	if err != nil {
		s.Close()
		return nil, nil, "", "", err
	}

	if c.debug {
		debugf("Spreadsheet - email:%s  ID:%s", c.email, id)
	}

	return service, s, id, token, nil
}

// list prints the current project tabs of the spreadsheet.
func (c *command) list(ctx context.Context, service *provisioning.Service, spreadsheet, token string) error {
	titles, err := service.ListTabs(ctx, token, spreadsheet)
	if err != nil {
		return err
	}

	if c.debug {
		debugf("Projects - %v", titles)
	}

	projectsToText(stdout, spreadsheet, titles)

	return nil
}

func spreadsheetURL(id string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", id)
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		})
	}
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
