package httpapi

import (
	"bytes"
	"errors"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":      LevelInfo,
		"off":   LevelOff,
		"error": LevelError,
		"info":  LevelInfo,
		"debug": LevelDebug,
		"weird": LevelInfo, // default
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_Overrides(t *testing.T) {
	// query param ?log=debug
	r := httptest.NewRequest("GET", "/x?log=debug", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query override failed: %v", got)
	}
	// legacy query param ?log=1
	r = httptest.NewRequest("GET", "/x?log=1", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("legacy query override failed: %v", got)
	}
	// header X-Log-Level
	r = httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("header override failed: %v", got)
	}
}

func TestLogRequest_StdlibFallback(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	defer log.SetOutput(orig)
	log.SetOutput(&buf)

	r := httptest.NewRequest("GET", "/api/v1/models", nil)
	logRequest(r, LevelInfo, 404, time.Now(), errors.New("no chat models"))
	logRequest(r, LevelOff, 500, time.Now(), errors.New("hidden"))
	logRequest(r, LevelError, 200, time.Now(), nil)

	out := buf.String()
	if !strings.Contains(out, "status=404") || !strings.Contains(out, "no chat models") {
		t.Fatalf("missing logged line: %q", out)
	}
	if strings.Contains(out, "hidden") || strings.Contains(out, "status=200") {
		t.Fatalf("level filtering failed: %q", out)
	}
}

func TestLogRequest_Zerolog(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer func() { zlog = nil }()

	logRequest(httptest.NewRequest("GET", "/api/v1/models", nil), LevelInfo, 500, time.Now(), errors.New("boom"))
	out := buf.String()
	if !strings.Contains(out, `"level":"error"`) || !strings.Contains(out, `"status":500`) || !strings.Contains(out, "boom") {
		t.Fatalf("unexpected log: %q", out)
	}
}
