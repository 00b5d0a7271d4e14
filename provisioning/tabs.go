package provisioning

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"
)

// ProjectTab is a single tab in a spreadsheet. The title is the project name; the sheet ID
// is assigned upstream and does not change when the tab is renamed.
type ProjectTab struct {
	Title   string
	SheetID int64
}

// CreateTab adds a tab titled title to the spreadsheet. Title uniqueness is left to the
// Sheets API, which rejects duplicates.
func (s *Service) CreateTab(ctx context.Context, token, spreadsheet, title string) error {
	if err := s.validate(token, spreadsheet, "title", title); err != nil {
		return err
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{
						Title: title,
					},
				},
			},
		},
	}

	if err := s.batchUpdate(ctx, token, spreadsheet, &rq); err != nil {
		status, message := upstream(err)
		return &TabOperationError{Op: "add", Title: title, Status: status, Message: message, Cause: err}
	}

	slog.Debug("created sheet", "spreadsheet", spreadsheet, "title", title)

	return nil
}

// RenameTab changes the title of the first tab titled oldTitle to newTitle. The tab is
// located by exact title match in the current metadata and renamed by sheet ID.
func (s *Service) RenameTab(ctx context.Context, token, spreadsheet, oldTitle, newTitle string) error {
	if err := s.validate(token, spreadsheet, "new title", newTitle); err != nil {
		return err
	}

	tabs, err := s.Tabs(ctx, token, spreadsheet)
	if err != nil {
		return err
	}

	var tab *ProjectTab
	for i := range tabs {
		if tabs[i].Title == oldTitle {
			tab = &tabs[i]
			break
		}
	}

	if tab == nil {
		return &TabNotFoundError{Spreadsheet: spreadsheet, Title: oldTitle}
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId:         tab.SheetID,
						Title:           newTitle,
						ForceSendFields: []string{"SheetId"},
					},
					Fields: "title",
				},
			},
		},
	}

	if err := s.batchUpdate(ctx, token, spreadsheet, &rq); err != nil {
		status, message := upstream(err)
		return &TabOperationError{Op: "rename", Title: oldTitle, Status: status, Message: message, Cause: err}
	}

	slog.Debug("renamed sheet", "spreadsheet", spreadsheet, "sheetId", tab.SheetID, "from", oldTitle, "to", newTitle)

	return nil
}

// Tabs returns the title and sheet ID of every tab, in the order reported by the Sheets API.
func (s *Service) Tabs(ctx context.Context, token, spreadsheet string) ([]ProjectTab, error) {
	if err := s.validate(token, spreadsheet, "", ""); err != nil {
		return nil, err
	}

	metadata, err := s.get(ctx, token, spreadsheet, "sheets.properties")
	if err != nil {
		status, message := upstream(err)
		return nil, &MetadataFetchError{Spreadsheet: spreadsheet, Status: status, Message: message, Cause: err}
	}

	tabs := []ProjectTab{}
	for _, sheet := range metadata.Sheets {
		if sheet.Properties != nil {
			tabs = append(tabs, ProjectTab{
				Title:   sheet.Properties.Title,
				SheetID: sheet.Properties.SheetId,
			})
		}
	}

	return tabs, nil
}

// ListTabs returns the tab titles in the order reported by the Sheets API. Every call
// fetches a fresh list.
func (s *Service) ListTabs(ctx context.Context, token, spreadsheet string) ([]string, error) {
	if err := s.validate(token, spreadsheet, "", ""); err != nil {
		return nil, err
	}

	metadata, err := s.get(ctx, token, spreadsheet, "sheets.properties.title")
	if err != nil {
		status, message := upstream(err)
		return nil, &ListTabsError{Spreadsheet: spreadsheet, Status: status, Message: message, Cause: err}
	}

	titles := []string{}
	for _, sheet := range metadata.Sheets {
		if sheet.Properties != nil {
			titles = append(titles, sheet.Properties.Title)
		}
	}

	return titles, nil
}

func (s *Service) get(ctx context.Context, token, spreadsheet string, fields string) (*sheets.Spreadsheet, error) {
	google, err := s.sheets(ctx, token)
	if err != nil {
		return nil, err
	}

	return google.Spreadsheets.Get(spreadsheet).Fields(googleapi.Field(fields)).Context(ctx).Do()
}

func (s *Service) batchUpdate(ctx context.Context, token, spreadsheet string, rq *sheets.BatchUpdateSpreadsheetRequest) error {
	google, err := s.sheets(ctx, token)
	if err != nil {
		return err
	}

	_, err = google.Spreadsheets.BatchUpdate(spreadsheet, rq).Context(ctx).Do()

	return err
}

func (s *Service) validate(token, spreadsheet string, name, value string) error {
	if err := required("access token", token); err != nil {
		return err
	}

	if err := required("spreadsheet", spreadsheet); err != nil {
		return err
	}

	if name != "" && value == "" {
		return fmt.Errorf("%w: missing %s", ErrInvalidArgument, name)
	}

	return nil
}
