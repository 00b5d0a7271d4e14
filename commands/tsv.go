package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ydg/chaterp-app-sheets/provisioning"
)

// projectsToTSV writes the project tabs as a tab separated table with a header row. Titles
// are written as is (quoted only if they contain a tab, quote or newline).
func projectsToTSV(f io.Writer, tabs []provisioning.ProjectTab) error {
	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write([]string{"Sheet ID", "Project"}); err != nil {
		return err
	}

	for _, tab := range tabs {
		if err := w.Write([]string{fmt.Sprintf("%v", tab.SheetID), tab.Title}); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

func projectsToJSON(f io.Writer, spreadsheet string, tabs []provisioning.ProjectTab) error {
	type project struct {
		SheetID int64  `json:"sheet-id"`
		Title   string `json:"title"`
	}

	doc := struct {
		Spreadsheet string    `json:"spreadsheet"`
		URL         string    `json:"url"`
		Projects    []project `json:"projects"`
	}{
		Spreadsheet: spreadsheet,
		URL:         spreadsheetURL(spreadsheet),
		Projects:    []project{},
	}

	for _, tab := range tabs {
		doc.Projects = append(doc.Projects, project{
			SheetID: tab.SheetID,
			Title:   tab.Title,
		})
	}

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")

	return encoder.Encode(doc)
}

func projectsToText(f io.Writer, spreadsheet string, titles []string) {
	fmt.Fprintf(f, "%s\n", spreadsheetURL(spreadsheet))

	if len(titles) == 0 {
		fmt.Fprintf(f, "  (no projects)\n")
		return
	}

	for i, title := range titles {
		fmt.Fprintf(f, "  %-3v %s\n", fmt.Sprintf("%v.", i+1), title)
	}
}
