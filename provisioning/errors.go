package provisioning

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// ProvisioningError indicates the spreadsheet could not be created upstream.
type ProvisioningError struct {
	Status  int
	Message string
	Cause   error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("failed to create spreadsheet: %s", describe(e.Status, e.Message))
}

func (e *ProvisioningError) Unwrap() error {
	return e.Cause
}

// MetadataFetchError indicates the tab metadata of a spreadsheet could not be retrieved.
type MetadataFetchError struct {
	Spreadsheet string
	Status      int
	Message     string
	Cause       error
}

func (e *MetadataFetchError) Error() string {
	return fmt.Sprintf("failed to fetch metadata for spreadsheet %s: %s", e.Spreadsheet, describe(e.Status, e.Message))
}

func (e *MetadataFetchError) Unwrap() error {
	return e.Cause
}

// TabNotFoundError indicates no tab in the spreadsheet has the requested title.
type TabNotFoundError struct {
	Spreadsheet string
	Title       string
}

func (e *TabNotFoundError) Error() string {
	return fmt.Sprintf("sheet '%s' not found in spreadsheet %s", e.Title, e.Spreadsheet)
}

// TabOperationError indicates a structural change to a tab was rejected upstream.
type TabOperationError struct {
	Op      string
	Title   string
	Status  int
	Message string
	Cause   error
}

func (e *TabOperationError) Error() string {
	return fmt.Sprintf("failed to %s sheet '%s': %s", e.Op, e.Title, describe(e.Status, e.Message))
}

func (e *TabOperationError) Unwrap() error {
	return e.Cause
}

// ListTabsError indicates the tab titles of a spreadsheet could not be retrieved.
type ListTabsError struct {
	Spreadsheet string
	Status      int
	Message     string
	Cause       error
}

func (e *ListTabsError) Error() string {
	return fmt.Sprintf("error fetching tabs for spreadsheet %s: %s", e.Spreadsheet, describe(e.Status, e.Message))
}

func (e *ListTabsError) Unwrap() error {
	return e.Cause
}

func IsProvisioningError(err error) bool {
	var e *ProvisioningError
	return errors.As(err, &e)
}

func IsMetadataFetchError(err error) bool {
	var e *MetadataFetchError
	return errors.As(err, &e)
}

func IsTabNotFoundError(err error) bool {
	var e *TabNotFoundError
	return errors.As(err, &e)
}

func IsTabOperationError(err error) bool {
	var e *TabOperationError
	return errors.As(err, &e)
}

func IsListTabsError(err error) bool {
	var e *ListTabsError
	return errors.As(err, &e)
}

// upstream extracts the HTTP status and message from a Google API error. Transport errors
// have no status and report their own text.
func upstream(err error) (int, string) {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		message := gerr.Message
		if message == "" && len(gerr.Errors) > 0 {
			message = gerr.Errors[0].Message
		}

		return gerr.Code, message
	}

	if err != nil {
		return 0, err.Error()
	}

	return 0, ""
}

func describe(status int, message string) string {
	switch {
	case status != 0 && message != "":
		return fmt.Sprintf("%d %s", status, message)
	case status != 0:
		return fmt.Sprintf("%d", status)
	case message != "":
		return message
	default:
		return "unknown error"
	}
}
