package timemap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultServerRoot {
		t.Fatalf("base = %q, want %q", u.String(), defaultServerRoot)
	}

	u, err = parseBaseURL("example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchDomain(t *testing.T) {
	t.Parallel()

	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/events":
			_, _ = w.Write([]byte(`[{"id": 7, "date": "2020-01-01", "location": "Puebla", "sources": ["s1", "missing"], "card": []}]`))
		case "/api/associations":
			_, _ = w.Write([]byte(`[{"id": "a1", "title": "Narrative", "mode": "NARRATIVE"}]`))
		case "/api/sources":
			_, _ = w.Write([]byte(`{"s1": {"title": "Video", "type": "Video", "paths": ["a.mp4"]}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, Endpoints{Events: "/api/events", Associations: "/api/associations", Sources: "/api/sources"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	domain, err := c.FetchDomain(ctx)
	if err != nil {
		t.Fatalf("FetchDomain returned error: %v", err)
	}
	if len(domain.Events) != 1 || domain.Events[0].ID != "7" || domain.Events[0].Location != "Puebla" {
		t.Fatalf("events = %#v, want one event id=7", domain.Events)
	}
	if _, ok := domain.Events[0].Attr("card"); !ok {
		t.Fatalf("unknown event attribute not kept in Attrs")
	}
	if len(domain.Associations) != 1 || domain.Associations[0].Mode != "NARRATIVE" {
		t.Fatalf("associations = %#v", domain.Associations)
	}
	srcs := domain.SourcesFor(domain.Events[0])
	if len(srcs) != 1 || srcs[0].ID != "s1" || srcs[0].Paths[0] != "a.mp4" {
		t.Fatalf("SourcesFor = %#v, want s1 only", srcs)
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
}

func TestClient_SkipsUnconfiguredEndpoints(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" {
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, Endpoints{Events: "/events"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	domain, err := c.FetchDomain(context.Background())
	if err != nil {
		t.Fatalf("FetchDomain returned error: %v", err)
	}
	if len(domain.Events) != 0 || domain.Sources != nil {
		t.Fatalf("domain = %#v, want empty", domain)
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, Endpoints{Events: "/events"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchDomain(context.Background())
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("FetchDomain error = %v, want status 500", err)
	}
}

func TestClient_RequiresEventsEndpoint(t *testing.T) {
	c, err := NewClient("", Endpoints{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchDomain(context.Background()); err == nil {
		t.Fatalf("FetchDomain returned nil error without events endpoint")
	}
}

func TestBundleFile_ReadsListSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.json")
	if err := os.WriteFile(path, []byte(`{
		"events": [{"id": "e1", "description": "Flood reported", "sources": ["s1"]}],
		"sources": [{"id": "s1", "title": "Photo", "paths": []}]
	}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	domain, err := (&BundleFile{Path: path}).FetchDomain(context.Background())
	if err != nil {
		t.Fatalf("FetchDomain returned error: %v", err)
	}
	if got := domain.SourcesFor(domain.Events[0]); len(got) != 1 || got[0].Title != "Photo" {
		t.Fatalf("SourcesFor = %#v, want Photo", got)
	}
}

func TestEvent_UnmarshalToleratesBadTypes(t *testing.T) {
	d, err := ParseBundle([]byte(`{"events": [{"id": null, "location": 12, "sources": "s1", "description": ["x"]}]}`))
	if err != nil {
		t.Fatalf("ParseBundle returned error: %v", err)
	}
	ev := d.Events[0]
	if ev.ID != "" || ev.Location != "12" || ev.Sources != nil || ev.Description != "" {
		t.Fatalf("event = %#v, want degraded zero values", ev)
	}
}
