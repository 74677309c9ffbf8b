package config

import (
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default().ApplyEnv(envMap(map[string]string{
		"MODELGATE_METADATA_PROBE":       "false",
		"MODELGATE_MIN_CHAT_SIZE_BYTES":  "500000000",
		"MODELGATE_EMBEDDING_INDICATORS": "embed, gte ,",
		"MODELGATE_PROBE_CONCURRENCY":    "8",
		"MODELGATE_CORS_ORIGINS":         "http://a,http://b",
		"OLLAMA_HOST":                    "0.0.0.0:11435",
	}))
	if cfg.Classifier.MetadataProbe == nil || *cfg.Classifier.MetadataProbe {
		t.Fatalf("probe should be disabled")
	}
	if *cfg.Classifier.MinChatSizeBytes != 500_000_000 || cfg.ProbeConcurrency != 8 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Classifier.EmbeddingIndicators) != 2 || cfg.Classifier.EmbeddingIndicators[1] != "gte" {
		t.Fatalf("indicators=%v", cfg.Classifier.EmbeddingIndicators)
	}
	if !cfg.CORS.Enabled || len(cfg.CORS.Origins) != 2 {
		t.Fatalf("cors=%+v", cfg.CORS)
	}
	if cfg.OllamaURL != "http://localhost:11435" {
		t.Fatalf("ollama url=%q", cfg.OllamaURL)
	}
}

func TestApplyEnv_ExplicitURLBeatsOllamaHost(t *testing.T) {
	cfg := Default().ApplyEnv(envMap(map[string]string{
		"MODELGATE_OLLAMA_URL": "http://remote:11434",
		"OLLAMA_HOST":          "other",
	}))
	if cfg.OllamaURL != "http://remote:11434" {
		t.Fatalf("ollama url=%q", cfg.OllamaURL)
	}
}

func TestMergeKeepsDefaults(t *testing.T) {
	cfg := Default().Merge(Config{Addr: ":1"})
	if cfg.Addr != ":1" || cfg.OllamaURL != Default().OllamaURL || *cfg.Classifier.MinChatSizeBytes != 400_000_000 {
		t.Fatalf("unexpected merge: %+v", cfg)
	}
}

func TestZeroThresholdSurvivesMergeAndEnv(t *testing.T) {
	zero := uint64(0)
	cfg := Default().Merge(Config{Classifier: ClassifierConfig{MinChatSizeBytes: &zero}})
	if cc := cfg.ClassifierConfig(); cc.MinChatSize() != 0 {
		t.Fatalf("file zero should disable size check, got %d", cc.MinChatSize())
	}
	cfg = Default().ApplyEnv(envMap(map[string]string{"MODELGATE_MIN_CHAT_SIZE_BYTES": "0"}))
	if cc := cfg.ClassifierConfig(); cc.MinChatSize() != 0 {
		t.Fatalf("env zero should disable size check, got %d", cc.MinChatSize())
	}
}

func TestTracingConfig(t *testing.T) {
	if tc := Default().TracingConfig(); tc.Enabled || tc.ServiceName != "modelgate" || tc.SampleRatio != 1 {
		t.Fatalf("unexpected default tracing: %+v", tc)
	}
	cfg := Default().Merge(Config{Tracing: TracingConfig{Endpoint: "http://file:4318", SampleRatio: 0.5}})
	cfg = cfg.ApplyEnv(envMap(map[string]string{
		"MODELGATE_TRACING_ENABLED":  "true",
		"MODELGATE_TRACING_ENDPOINT": " http://otel:4318 ",
	}))
	tc := cfg.TracingConfig()
	if !tc.Enabled || tc.Endpoint != "http://otel:4318" || tc.SampleRatio != 0.5 {
		t.Fatalf("unexpected tracing: %+v", tc)
	}
	cfg.Tracing.SampleRatio = 2
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected sample ratio error")
	}
}

func TestClassifierConfig(t *testing.T) {
	cfg := Default()
	cc := cfg.ClassifierConfig()
	if cc.MinChatSize() != 400_000_000 || cc.ProbeTimeout != 5*time.Second || !cc.ProbeEnabled() {
		t.Fatalf("unexpected classifier config: %+v", cc)
	}
	if len(cc.EmbeddingIndicators) != 8 {
		t.Fatalf("indicators=%v", cc.EmbeddingIndicators)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.CORS.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected cors validation error")
	}
	cfg = Default()
	cfg.RequestTimeout = "-1s"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected negative duration error")
	}
}

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"a,,c", []string{"a", "c"}},
		{"", nil},
	}
	for _, c := range cases {
		got := SplitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}
