package provisioning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/sheets/v4"
)

// ResolveOrCreateSpreadsheet returns the ID of the spreadsheet mapped to email, creating the
// spreadsheet (with its initial project tab) and storing the mapping on first use.
//
// Concurrent calls for the same email share a single creation request. The mapping is only
// written once the spreadsheet has been created upstream.
func (s *Service) ResolveOrCreateSpreadsheet(ctx context.Context, email, token string) (string, error) {
	if err := required("email", email); err != nil {
		return "", err
	}

	key := Key(email)

	if id, ok, err := s.lookup(key); err != nil {
		return "", err
	} else if ok {
		slog.Debug("resolved spreadsheet from cache", "email", email, "spreadsheet", id)
		return id, nil
	}

	if err := required("access token", token); err != nil {
		return "", err
	}

	v, err, shared := s.flights.Do(key, func() (any, error) {
		if id, ok, err := s.lookup(key); err != nil {
			return "", err
		} else if ok {
			return id, nil
		}

		id, err := s.createSpreadsheet(ctx, token)
		if err != nil {
			return "", err
		}

		if err := s.cache.Set(key, id); err != nil {
			slog.Error("created spreadsheet but failed to store mapping", "email", email, "spreadsheet", id, "error", err)
			return "", fmt.Errorf("store spreadsheet mapping for %s: %w", email, err)
		}

		slog.Info("created spreadsheet", "email", email, "spreadsheet", id)

		return id, nil
	})

	if err != nil {
		return "", err
	}

	if shared {
		slog.Debug("shared in-flight spreadsheet creation", "email", email)
	}

	return v.(string), nil
}

func (s *Service) lookup(key string) (string, bool, error) {
	id, ok, err := s.cache.Get(key)
	if err != nil {
		return "", false, fmt.Errorf("read spreadsheet mapping %s: %w", key, err)
	}

	return id, ok && id != "", nil
}

func (s *Service) createSpreadsheet(ctx context.Context, token string) (string, error) {
	google, err := s.sheets(ctx, token)
	if err != nil {
		return "", &ProvisioningError{Message: err.Error(), Cause: err}
	}

	rq := sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: s.title,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: s.project,
				},
			},
		},
	}

	created, err := google.Spreadsheets.Create(&rq).Context(ctx).Do()
	if err != nil {
		status, message := upstream(err)
		return "", &ProvisioningError{Status: status, Message: message, Cause: err}
	}

	if strings.TrimSpace(created.SpreadsheetId) == "" {
		return "", &ProvisioningError{
			Status:  created.HTTPStatusCode,
			Message: "missing spreadsheetId in response",
		}
	}

	return created.SpreadsheetId, nil
}
