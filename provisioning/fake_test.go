package provisioning

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/api/sheets/v4"
)

type tab struct {
	id    int64
	title string
}

// fakeSheets is a minimal stateful stand-in for the Sheets v4 REST API.
type fakeSheets struct {
	sync.Mutex
	spreadsheets map[string][]tab
	next         int
	nextSheetId  int64

	creates  int
	requests []string
	bodies   []string
	tokens   []string

	fail  map[string]int
	delay time.Duration
	empty bool
}

func newFakeSheets(t *testing.T) (*fakeSheets, *httptest.Server) {
	t.Helper()

	fake := fakeSheets{
		spreadsheets: map[string][]tab{},
		nextSheetId:  1000,
		fail:         map[string]int{},
	}

	srv := httptest.NewServer(http.HandlerFunc(fake.handle))
	t.Cleanup(srv.Close)

	return &fake, srv
}

func newTestService(t *testing.T, c Cache) (*Service, *fakeSheets) {
	t.Helper()

	fake, srv := newFakeSheets(t)

	return NewService(c, WithHTTPClient(srv.Client()), WithEndpoint(srv.URL)), fake
}

func (f *fakeSheets) titles(id string) []string {
	f.Lock()
	defer f.Unlock()

	titles := []string{}
	for _, t := range f.spreadsheets[id] {
		titles = append(titles, t.title)
	}

	return titles
}

func (f *fakeSheets) count(prefix string) int {
	f.Lock()
	defer f.Unlock()

	count := 0
	for _, rq := range f.requests {
		if strings.HasPrefix(rq, prefix) {
			count++
		}
	}

	return count
}

func (f *fakeSheets) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets")

	f.Lock()
	f.requests = append(f.requests, fmt.Sprintf("%s %s", r.Method, r.URL.Path))
	f.bodies = append(f.bodies, string(body))
	f.tokens = append(f.tokens, r.Header.Get("Authorization"))
	delay := f.delay
	f.Unlock()

	switch {
	case path == "" && r.Method == http.MethodPost:
		time.Sleep(delay)
		f.create(w, body)

	case strings.HasSuffix(path, ":batchUpdate") && r.Method == http.MethodPost:
		f.batchUpdate(w, strings.TrimSuffix(strings.TrimPrefix(path, "/"), ":batchUpdate"), body)

	case strings.HasPrefix(path, "/") && r.Method == http.MethodGet:
		f.get(w, strings.TrimPrefix(path, "/"), r.URL.Query().Get("fields"))

	default:
		reply(w, http.StatusNotFound, "not found")
	}
}

func (f *fakeSheets) create(w http.ResponseWriter, body []byte) {
	f.Lock()
	defer f.Unlock()

	if status, ok := f.fail["create"]; ok {
		reply(w, status, "The caller does not have permission")
		return
	}

	if f.empty {
		write(w, map[string]any{})
		return
	}

	var rq sheets.Spreadsheet
	if err := json.Unmarshal(body, &rq); err != nil {
		reply(w, http.StatusBadRequest, err.Error())
		return
	}

	f.creates++
	f.next++

	id := fmt.Sprintf("S%d", f.next)
	tabs := []tab{}
	for i, s := range rq.Sheets {
		tabs = append(tabs, tab{id: int64(i), title: s.Properties.Title})
	}

	f.spreadsheets[id] = tabs

	write(w, map[string]any{
		"spreadsheetId": id,
		"properties":    map[string]any{"title": rq.Properties.Title},
	})
}

func (f *fakeSheets) get(w http.ResponseWriter, id string, fields string) {
	f.Lock()
	defer f.Unlock()

	if status, ok := f.fail["get"]; ok {
		reply(w, status, "Internal error encountered")
		return
	}

	tabs, ok := f.spreadsheets[id]
	if !ok {
		reply(w, http.StatusNotFound, "Requested entity was not found.")
		return
	}

	list := []map[string]any{}
	for _, t := range tabs {
		properties := map[string]any{"title": t.title}
		if fields != "sheets.properties.title" {
			properties["sheetId"] = t.id
			properties["index"] = len(list)
		}

		list = append(list, map[string]any{"properties": properties})
	}

	write(w, map[string]any{"sheets": list})
}

func (f *fakeSheets) batchUpdate(w http.ResponseWriter, id string, body []byte) {
	f.Lock()
	defer f.Unlock()

	if status, ok := f.fail["batchUpdate"]; ok {
		reply(w, status, "Request had invalid authentication credentials.")
		return
	}

	tabs, ok := f.spreadsheets[id]
	if !ok {
		reply(w, http.StatusNotFound, "Requested entity was not found.")
		return
	}

	var rq sheets.BatchUpdateSpreadsheetRequest
	if err := json.Unmarshal(body, &rq); err != nil {
		reply(w, http.StatusBadRequest, err.Error())
		return
	}

	exists := func(title string) bool {
		for _, t := range tabs {
			if t.title == title {
				return true
			}
		}
		return false
	}

	for _, r := range rq.Requests {
		switch {
		case r.AddSheet != nil:
			title := r.AddSheet.Properties.Title
			if exists(title) {
				reply(w, http.StatusBadRequest, fmt.Sprintf("Invalid requests[0].addSheet: A sheet with the name \"%s\" already exists.", title))
				return
			}

			tabs = append(tabs, tab{id: f.nextSheetId, title: title})
			f.nextSheetId++

		case r.UpdateSheetProperties != nil:
			p := r.UpdateSheetProperties.Properties
			if r.UpdateSheetProperties.Fields != "title" {
				reply(w, http.StatusBadRequest, "unexpected fields mask")
				return
			}

			if exists(p.Title) {
				reply(w, http.StatusBadRequest, fmt.Sprintf("Invalid requests[0].updateSheetProperties: A sheet with the name \"%s\" already exists.", p.Title))
				return
			}

			found := false
			for i := range tabs {
				if tabs[i].id == p.SheetId {
					tabs[i].title = p.Title
					found = true
				}
			}

			if !found {
				reply(w, http.StatusBadRequest, fmt.Sprintf("No grid with id: %d", p.SheetId))
				return
			}
		}
	}

	f.spreadsheets[id] = tabs

	write(w, map[string]any{"spreadsheetId": id})
}

func write(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func reply(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    status,
			"message": message,
		},
	})
}
