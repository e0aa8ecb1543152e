package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shelf-ui/shelf/internal/library"
	"github.com/shelf-ui/shelf/pkg/thumbs"
)

func newTestServer(t *testing.T) (*Server, *library.Library, *httptest.Server) {
	t.Helper()
	lib := library.New()
	store := thumbs.NewMemStore()
	store.Put("doom.png", []byte("fake-png"), "image/png")

	s := New(lib, store)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, lib, ts
}

func TestHealth(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	_, lib, ts := newTestServer(t)
	lib.Add("Doom", "doom.png", "")
	lib.Add("Quake", "", "")

	resp, err := http.Get(ts.URL + "/api/apps")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var snap []library.App
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snap) != 2 || snap[0].Title != "Doom" || snap[1].Title != "Quake" {
		t.Errorf("snapshot = %v", snap)
	}
}

func TestSnapshotAdvertisesPollInterval(t *testing.T) {
	lib := library.New()
	s := New(lib, thumbs.NewMemStore(), WithPollInterval(2*time.Second))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/apps")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Poll-Interval"); got != "2" {
		t.Errorf("X-Poll-Interval = %q, want 2", got)
	}

	// Default cadence when the option is not given.
	_, _, defTS := newTestServer(t)
	resp2, err := http.Get(defTS.URL + "/api/apps")
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if got := resp2.Header.Get("X-Poll-Interval"); got != "5" {
		t.Errorf("default X-Poll-Interval = %q, want 5", got)
	}
}

func TestCreateApp(t *testing.T) {
	_, lib, ts := newTestServer(t)

	body := bytes.NewBufferString(`{"title":"Doom","thumbKey":"doom.png"}`)
	resp, err := http.Post(ts.URL+"/api/apps", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var app library.App
	if err := json.NewDecoder(resp.Body).Decode(&app); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if app.Title != "Doom" {
		t.Errorf("title = %q", app.Title)
	}
	if lib.Len() != 1 {
		t.Errorf("library len = %d, want 1", lib.Len())
	}
}

func TestCreateAppValidation(t *testing.T) {
	_, _, ts := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"thumbKey":"x.png"}`},
		{"invalid json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/apps", "application/json",
				strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestDeleteApp(t *testing.T) {
	_, lib, ts := newTestServer(t)
	app := lib.Add("Doom", "", "")

	req, _ := http.NewRequest(http.MethodDelete,
		fmt.Sprintf("%s/api/apps/%s", ts.URL, app.ID), nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	if lib.Len() != 0 {
		t.Errorf("library len = %d, want 0", lib.Len())
	}

	// Deleting again: 404.
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp2.StatusCode)
	}
}

func TestRenameApp(t *testing.T) {
	_, lib, ts := newTestServer(t)
	app := lib.Add("Dom", "", "")

	req, _ := http.NewRequest(http.MethodPatch,
		fmt.Sprintf("%s/api/apps/%s", ts.URL, app.ID),
		strings.NewReader(`{"title":"Doom"}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	if got := lib.Snapshot()[0].Title; got != "Doom" {
		t.Errorf("title = %q, want Doom", got)
	}
}

func TestIndexRendersCatalog(t *testing.T) {
	_, lib, ts := newTestServer(t)
	lib.Add("Doom", "doom.png", "")
	lib.Add("Quake", "", "")

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	page := string(body)

	if !strings.Contains(page, "Doom") || !strings.Contains(page, "Quake") {
		t.Errorf("page missing titles: %s", page)
	}
	// Thumbnail present in the store renders as an inline data URI.
	if !strings.Contains(page, "data:image/png;base64,") {
		t.Errorf("page missing presented thumbnail")
	}
	// Enter transitions settled before serialization.
	if !strings.Contains(page, `class="slot shown"`) {
		t.Errorf("page missing settled shown state")
	}
}

func TestIndexConvergesAfterMutations(t *testing.T) {
	_, lib, ts := newTestServer(t)
	doom := lib.Add("Doom", "", "")
	lib.Add("Quake", "", "")

	if _, err := http.Get(ts.URL + "/"); err != nil {
		t.Fatal(err)
	}

	lib.Remove(doom.ID)
	lib.Add("Hexen", "", "")

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	page := string(body)

	if strings.Contains(page, "Doom") {
		t.Errorf("removed app still rendered")
	}
	if !strings.Contains(page, "Quake") || !strings.Contains(page, "Hexen") {
		t.Errorf("page missing expected apps: %s", page)
	}
	// Persisted items keep their position; new ones land after.
	if strings.Index(page, "Quake") > strings.Index(page, "Hexen") {
		t.Errorf("new app rendered before persisted one")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
