// Package provisioning locates or creates a user's ChatERP spreadsheet and manages the
// project tabs inside it.
//
// Every operation takes the caller's bearer access token. The service never acquires or
// refreshes tokens itself.
package provisioning

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	DefaultSpreadsheetTitle = "ChatERP DATA"
	DefaultProjectTitle     = "Project A"
	DefaultEndpoint         = "https://sheets.googleapis.com/"

	// Scope is the OAuth2 scope callers must obtain tokens for.
	Scope = sheets.SpreadsheetsScope

	keyPrefix = "spreadsheetId_"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Cache is the local email to spreadsheet mapping. Get reports a missing key with ok == false
// and a nil error.
type Cache interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

type Service struct {
	cache    Cache
	client   *http.Client
	endpoint string
	title    string
	project  string
	flights  singleflight.Group
}

type Option func(*Service)

// WithHTTPClient sets the client whose transport carries the Sheets API requests. The bearer
// token is layered on top of its transport.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		if client != nil {
			s.client = client
		}
	}
}

func WithEndpoint(endpoint string) Option {
	return func(s *Service) {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			if !strings.HasSuffix(endpoint, "/") {
				endpoint += "/"
			}

			s.endpoint = endpoint
		}
	}
}

// WithTitles overrides the title of newly created spreadsheets and of their initial tab.
func WithTitles(spreadsheet, project string) Option {
	return func(s *Service) {
		if spreadsheet != "" {
			s.title = spreadsheet
		}

		if project != "" {
			s.project = project
		}
	}
}

func NewService(cache Cache, options ...Option) *Service {
	s := Service{
		cache:    cache,
		client:   http.DefaultClient,
		endpoint: DefaultEndpoint,
		title:    DefaultSpreadsheetTitle,
		project:  DefaultProjectTitle,
	}

	for _, opt := range options {
		opt(&s)
	}

	return &s
}

// Key returns the mapping key under which the spreadsheet ID for email is stored.
func Key(email string) string {
	return keyPrefix + email
}

func (s *Service) sheets(ctx context.Context, token string) (*sheets.Service, error) {
	base := s.client.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	client := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   base,
		},
		Timeout: s.client.Timeout,
	}

	google, err := sheets.NewService(ctx, option.WithHTTPClient(client), option.WithEndpoint(s.endpoint))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return google, nil
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: missing %s", ErrInvalidArgument, name)
	}

	return nil
}
