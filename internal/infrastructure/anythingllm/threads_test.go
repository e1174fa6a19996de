package anythingllm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doeshing/foxbrief/internal/domain"
)

func TestCreateThread(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"thread": map[string]string{"slug": "2026-08-31-10-00-00-deadbeef"},
		})
	}))
	defer server.Close()

	slug, err := newTestClient(server).CreateThread(context.Background(), "threatfox-daily",
		"ThreatFox IOCs 2026-08-31 (42 indicators)", "2026-08-31-10-00-00-deadbeef")
	if err != nil {
		t.Fatalf("CreateThread() error = %v", err)
	}
	if slug != "2026-08-31-10-00-00-deadbeef" {
		t.Errorf("slug = %q", slug)
	}
	if gotPath != "/api/v1/workspace/threatfox-daily/thread/new" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["name"] != "ThreatFox IOCs 2026-08-31 (42 indicators)" {
		t.Errorf("name = %q", gotBody["name"])
	}
	if gotBody["slug"] != "2026-08-31-10-00-00-deadbeef" {
		t.Errorf("slug in body = %q", gotBody["slug"])
	}
}

func TestCreateThreadNoSlugInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "created"})
	}))
	defer server.Close()

	_, err := newTestClient(server).CreateThread(context.Background(), "ws", "name", "slug")
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("CreateThread() error = %v, want ErrTransport", err)
	}
}

func TestCreateThreadNon2xxIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workspace not found", http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := newTestClient(server).CreateThread(context.Background(), "missing", "name", "slug")
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("CreateThread() error = %v, want ErrTransport", err)
	}
}
