package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"

	"golang.org/x/oauth2"
)

var AuthoriseCmd = Authorise{
	command: defaults(),
}

type Authorise struct {
	command
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises chaterp-app-sheets to access the Google Sheets spreadsheets of an account"
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file> --email <email>"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options] --email <email>\n", APP)
	fmt.Println()
	fmt.Println("  Authorises chaterp-app-sheets to create and update spreadsheets for a Google account. The")
	fmt.Println("  access and refresh tokens are saved to the tokens directory for use by the other commands.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    chaterp-app-sheets authorise --credentials "credentials.json" --email "someone@example.com"`)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	return cmd.flagset("authorise")
}

func (cmd *Authorise) Execute(args ...any) error {
	if len(args) > 0 {
		if options, ok := args[0].(*Options); ok {
			cmd.debug = options.Debug
		}
	}

	// ... check parameters
	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(cmd.email) == "" {
		return fmt.Errorf("--email is a required option")
	}

	config, err := authorize(cmd.credentials, SHEETS, DRIVE)
	if err != nil {
		return fmt.Errorf("authorisation error (%v)", err)
	}

	token, err := authenticate(context.Background(), config, cmd.email, cmd.debug)
	if err != nil {
		return fmt.Errorf("authorisation error (%v)", err)
	} else if token == nil {
		return nil
	}

	file := cmd.tokensFile()
	if err := saveToken(file, token); err != nil {
		return err
	}

	infof("Saved authorisation tokens for %s to %s", cmd.email, file)

	return nil
}

// authenticate runs the OAuth2 authorisation code flow with a loopback redirect. Returns a
// nil token if cancelled with CTRL-C.
func authenticate(ctx context.Context, config *oauth2.Config, email string, debug bool) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	state, err := nonce()
	if err != nil {
		return nil, err
	}

	config.RedirectURL = fmt.Sprintf("http://%s/", listener.Addr().String())

	authorised := make(chan string, 1)
	failed := make(chan error, 1)
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, rq *http.Request) {
		if debug {
			debugf("RQ: %+v", rq.URL)
		}

		if e := rq.FormValue("error"); e != "" {
			http.Error(w, "Authorisation declined", http.StatusForbidden)
			failed <- fmt.Errorf("%s", e)
			return
		}

		if rq.FormValue("state") != state || rq.FormValue("code") == "" {
			http.Error(w, "Invalid authorisation response", http.StatusBadRequest)
			return
		}

		fmt.Fprintln(w, "chaterp-app-sheets is authorised - you can close this window")
		authorised <- rq.FormValue("code")
	})

	srv := &http.Server{
		Handler: mux,
	}

	go func() {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			failed <- err
		}
	}()

	defer srv.Shutdown(context.Background())

	// ... CTRL-C handler
	interrupt := make(chan os.Signal, 1)

	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	// ... open OAuth2 URL in browser
	url := config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("login_hint", email), oauth2.SetAuthURLParam("prompt", "consent"))

	fmt.Printf("Go to the following link in your browser to authorise access:\n\n  %v\n\n", url)

	if err := browse(url); err != nil && debug {
		debugf("could not open authorisation page in browser (%v)", err)
	}

	// ... wait for authorisation
	select {
	case <-interrupt:
		fmt.Printf("\n.. cancelled\n\n")
		return nil, nil

	case err := <-failed:
		return nil, err

	case code := <-authorised:
		return config.Exchange(ctx, code)
	}
}

func browse(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

func nonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
