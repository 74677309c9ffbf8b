package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestSetup_DisabledIsNoop(t *testing.T) {
	tp, shutdown, err := Setup(context.Background(), Config{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	_, span := tp.Tracer("test").Start(context.Background(), "noop")
	span.End()
	if span.SpanContext().IsSampled() {
		t.Fatalf("disabled tracing should not sample spans")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetup_ExportsToCollector(t *testing.T) {
	var posts atomic.Int32
	var path atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			posts.Add(1)
			path.Store(r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })

	tp, shutdown, err := Setup(context.Background(), Config{Enabled: true, Endpoint: srv.URL}, zerolog.Nop())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	_, span := tp.Tracer("test").Start(context.Background(), "listing", trace.WithSpanKind(trace.SpanKindInternal))
	if !span.SpanContext().IsSampled() {
		t.Fatalf("span should be sampled")
	}
	span.End()
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if posts.Load() == 0 {
		t.Fatalf("collector received no export")
	}
	if got, _ := path.Load().(string); got != tracesPath {
		t.Fatalf("export path=%q want %q", got, tracesPath)
	}
}

func TestTracesURL(t *testing.T) {
	cases := map[string]string{
		"http://collector:4318":             "http://collector:4318/v1/traces",
		"http://collector:4318/":            "http://collector:4318/v1/traces",
		"https://c.example/custom/v1/spans": "https://c.example/custom/v1/spans",
	}
	for in, want := range cases {
		got, err := tracesURL(in)
		if err != nil || got != want {
			t.Fatalf("%q -> %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := tracesURL("collector:4318"); err == nil {
		t.Fatalf("expected error for endpoint without scheme")
	}
}
