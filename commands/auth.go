package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/context"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// authorize loads the OAuth2 client configuration from the credentials file.
func authorize(credentials string, scopes ...string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	return google.ConfigFromJSON(b, scopes...)
}

// tokensFile returns the path of the saved tokens for an account e.g.
// <workdir>/.google/credentials.someone@example.com.tokens
func (c *command) tokensFile() string {
	dir := c.tokens
	if dir == "" {
		dir = filepath.Join(c.workdir, ".google")
	}

	_, file := filepath.Split(c.credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return filepath.Join(dir, fmt.Sprintf("%s.%s.tokens", name, c.email))
}

// accessToken returns the --token access token if supplied, otherwise the saved token for
// the account, refreshed if it has expired.
func (c *command) accessToken(ctx context.Context) (string, error) {
	if token := strings.TrimSpace(c.token); token != "" {
		return token, nil
	}

	config, err := authorize(c.credentials, SHEETS, DRIVE)
	if err != nil {
		return "", fmt.Errorf("authentication/authorization error (%w)", err)
	}

	file := c.tokensFile()
	saved, err := tokenFromFile(file)
	if err != nil {
		return "", fmt.Errorf("no saved token for %s - run '%s authorise --email %s' (%w)", c.email, APP, c.email, err)
	}

	token, err := config.TokenSource(ctx, saved).Token()
	if err != nil {
		return "", fmt.Errorf("unable to refresh access token (%w)", err)
	}

	if token.AccessToken != saved.AccessToken {
		if c.debug {
			debugf("Refreshed access token for %s (expires %v)", c.email, token.Expiry.Format("2006-01-02 15:04:05"))
		}

		if err := saveToken(file, token); err != nil {
			warnf("unable to save refreshed token (%v)", err)
		}
	}

	return token.AccessToken, nil
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token (%w)", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
