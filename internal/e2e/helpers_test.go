package e2e

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"modelgate/internal/catalog"
	"modelgate/internal/classifier"
	"modelgate/internal/httpapi"
	"modelgate/internal/ollama"
)

type fakeModel struct {
	Name       string `json:"name"`
	Model      string `json:"model"`
	Size       uint64 `json:"size"`
	ModifiedAt string `json:"modified_at,omitempty"`
	modelfile  string
}

// newFakeDaemon serves /api/tags, /api/show and /api/version for the given models.
func newFakeDaemon(t *testing.T, models ...fakeModel) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		list := models
		if list == nil {
			list = []fakeModel{}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"models": list})
	})
	mux.HandleFunc("/api/show", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		for _, m := range models {
			if m.Name == req.Model || m.Model == req.Model {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(map[string]any{"modelfile": m.modelfile})
				return
			}
		}
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("/api/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"version":"0.0.0-test"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newStack wires daemon client, classifier, catalog and HTTP mux against daemonURL.
func newStack(t *testing.T, daemonURL string) *httptest.Server {
	t.Helper()
	cli, err := ollama.New(daemonURL)
	if err != nil {
		t.Fatalf("ollama client: %v", err)
	}
	svc := catalog.New(catalog.Config{
		Source:     cli,
		Classifier: classifier.New(classifier.DefaultConfig(), cli),
	})
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func mustContain(t *testing.T, body []byte, want string) {
	t.Helper()
	if !strings.Contains(string(body), want) {
		t.Fatalf("body %q does not contain %q", string(body), want)
	}
}
