package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func fakeDaemon(t *testing.T, tags string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(tags))
	})
	mux.HandleFunc("/api/show", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"modelfile":"FROM base"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MODELGATE_CONFIG", "")
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestModelsCmd_JSON(t *testing.T) {
	srv := fakeDaemon(t, `{"models":[
		{"name":"nomic-embed-text:latest","size":274302450,"modified_at":"2024-09-01T08:30:00Z"},
		{"name":"llama3.2:latest","size":2019393189,"modified_at":"2024-10-01T12:00:00Z"}
	]}`)
	out, err := runCLI(t, "models", "--json", "--log-level", "off", "--ollama-url", srv.URL)
	if err != nil {
		t.Fatalf("models: %v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("json: %v (%q)", err, out)
	}
	if len(got) != 1 || got[0]["name"] != "llama3.2:latest" || got[0]["modified_at"] != "2024-10-01T12:00:00Z" {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestModelsCmd_Table(t *testing.T) {
	srv := fakeDaemon(t, `{"models":[{"name":"mistral:7b","size":4109865159}]}`)
	out, err := runCLI(t, "models", "--log-level", "off", "--ollama-url", srv.URL)
	if err != nil {
		t.Fatalf("models: %v", err)
	}
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "mistral:7b") || !strings.Contains(out, "4.11 GB") {
		t.Fatalf("unexpected table: %q", out)
	}
}

func TestModelsCmd_NoChatModels(t *testing.T) {
	srv := fakeDaemon(t, `{"models":[]}`)
	_, err := runCLI(t, "models", "--log-level", "off", "--ollama-url", srv.URL)
	if err == nil || !strings.Contains(err.Error(), "ollama pull llama3.2") {
		t.Fatalf("expected remediation error, got %v", err)
	}
}

func TestRootCmd_BadConfig(t *testing.T) {
	_, err := runCLI(t, "models", "--config", "/definitely/missing.yaml")
	if err == nil {
		t.Fatalf("expected config error")
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "dashboard", "models"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Fatalf("missing subcommand %q: %v", name, err)
		}
	}
}
