package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"modelgate/internal/classifier"
	"modelgate/internal/tracing"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified"; Default supplies the documented defaults.
type Config struct {
	Addr             string           `json:"addr" yaml:"addr" toml:"addr"`
	OllamaURL        string           `json:"ollama_url" yaml:"ollama_url" toml:"ollama_url"`
	LogLevel         string           `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogPretty        bool             `json:"log_pretty" yaml:"log_pretty" toml:"log_pretty"`
	PullModel        string           `json:"pull_model" yaml:"pull_model" toml:"pull_model"`
	ProbeConcurrency int              `json:"probe_concurrency" yaml:"probe_concurrency" toml:"probe_concurrency"`
	RequestTimeout   string           `json:"request_timeout" yaml:"request_timeout" toml:"request_timeout"`
	CORS             CORSConfig       `json:"cors" yaml:"cors" toml:"cors"`
	Classifier       ClassifierConfig `json:"classifier" yaml:"classifier" toml:"classifier"`
	Dashboard        DashboardConfig  `json:"dashboard" yaml:"dashboard" toml:"dashboard"`
	Tracing          TracingConfig    `json:"tracing" yaml:"tracing" toml:"tracing"`
}

// TracingConfig enables OTLP/HTTP span export.
type TracingConfig struct {
	Enabled     bool    `json:"enabled" yaml:"enabled" toml:"enabled"`
	Endpoint    string  `json:"endpoint" yaml:"endpoint" toml:"endpoint"`
	ServiceName string  `json:"service_name" yaml:"service_name" toml:"service_name"`
	SampleRatio float64 `json:"sample_ratio" yaml:"sample_ratio" toml:"sample_ratio"`
}

// CORSConfig is opt-in; when disabled no CORS middleware is installed.
type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// ClassifierConfig mirrors classifier.Config in file-friendly types.
type ClassifierConfig struct {
	EmbeddingIndicators []string `json:"embedding_indicators" yaml:"embedding_indicators" toml:"embedding_indicators"`
	MinChatSizeBytes    *uint64  `json:"min_chat_size_bytes,omitempty" yaml:"min_chat_size_bytes,omitempty" toml:"min_chat_size_bytes,omitempty"`
	MetadataProbe       *bool    `json:"metadata_probe,omitempty" yaml:"metadata_probe,omitempty" toml:"metadata_probe,omitempty"`
	ProbeTimeout        string   `json:"probe_timeout" yaml:"probe_timeout" toml:"probe_timeout"`
}

// DashboardConfig describes the external dashboard process.
type DashboardConfig struct {
	Command string   `json:"command" yaml:"command" toml:"command"`
	Args    []string `json:"args" yaml:"args" toml:"args"`
	AppPath string   `json:"app_path" yaml:"app_path" toml:"app_path"`
}

// Default returns the documented defaults.
func Default() Config {
	def := classifier.DefaultConfig()
	probe := true
	minSize := def.MinChatSize()
	return Config{
		Addr:             ":8001",
		OllamaURL:        "http://localhost:11434",
		LogLevel:         "info",
		PullModel:        "llama3.2",
		ProbeConcurrency: 4,
		RequestTimeout:   "30s",
		CORS: CORSConfig{
			Methods: []string{"GET", "OPTIONS"},
			Headers: []string{"Accept", "Content-Type", "X-Request-Id"},
		},
		Classifier: ClassifierConfig{
			EmbeddingIndicators: def.EmbeddingIndicators,
			MinChatSizeBytes:    &minSize,
			MetadataProbe:       &probe,
			ProbeTimeout:        def.ProbeTimeout.String(),
		},
		Dashboard: DashboardConfig{
			Command: "streamlit",
			Args:    []string{"run"},
			AppPath: "src/app/main.py",
		},
		Tracing: TracingConfig{
			ServiceName: tracing.DefaultServiceName,
			SampleRatio: 1,
		},
	}
}

// Merge overlays the non-zero fields of o onto c.
func (c Config) Merge(o Config) Config {
	out := c
	setStr(&out.Addr, o.Addr)
	setStr(&out.OllamaURL, o.OllamaURL)
	setStr(&out.LogLevel, o.LogLevel)
	setStr(&out.PullModel, o.PullModel)
	setStr(&out.RequestTimeout, o.RequestTimeout)
	if o.LogPretty {
		out.LogPretty = true
	}
	if o.ProbeConcurrency > 0 {
		out.ProbeConcurrency = o.ProbeConcurrency
	}
	if o.CORS.Enabled {
		out.CORS.Enabled = true
	}
	setList(&out.CORS.Origins, o.CORS.Origins)
	setList(&out.CORS.Methods, o.CORS.Methods)
	setList(&out.CORS.Headers, o.CORS.Headers)
	setList(&out.Classifier.EmbeddingIndicators, o.Classifier.EmbeddingIndicators)
	if o.Classifier.MinChatSizeBytes != nil {
		v := *o.Classifier.MinChatSizeBytes
		out.Classifier.MinChatSizeBytes = &v
	}
	if o.Classifier.MetadataProbe != nil {
		v := *o.Classifier.MetadataProbe
		out.Classifier.MetadataProbe = &v
	}
	setStr(&out.Classifier.ProbeTimeout, o.Classifier.ProbeTimeout)
	setStr(&out.Dashboard.Command, o.Dashboard.Command)
	setList(&out.Dashboard.Args, o.Dashboard.Args)
	setStr(&out.Dashboard.AppPath, o.Dashboard.AppPath)
	if o.Tracing.Enabled {
		out.Tracing.Enabled = true
	}
	setStr(&out.Tracing.Endpoint, o.Tracing.Endpoint)
	setStr(&out.Tracing.ServiceName, o.Tracing.ServiceName)
	if o.Tracing.SampleRatio > 0 {
		out.Tracing.SampleRatio = o.Tracing.SampleRatio
	}
	return out
}

// ApplyEnv overlays MODELGATE_* variables using lookup (normally os.LookupEnv).
func (c Config) ApplyEnv(lookup func(string) (string, bool)) Config {
	out := c
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("MODELGATE_ADDR", &out.Addr)
	str("MODELGATE_OLLAMA_URL", &out.OllamaURL)
	if v, ok := lookup("OLLAMA_HOST"); ok && strings.TrimSpace(v) != "" {
		if _, set := lookup("MODELGATE_OLLAMA_URL"); !set {
			out.OllamaURL = hostURL(strings.TrimSpace(v))
		}
	}
	str("MODELGATE_LOG_LEVEL", &out.LogLevel)
	str("MODELGATE_PULL_MODEL", &out.PullModel)
	str("MODELGATE_REQUEST_TIMEOUT", &out.RequestTimeout)
	str("MODELGATE_PROBE_TIMEOUT", &out.Classifier.ProbeTimeout)
	str("MODELGATE_DASHBOARD_APP", &out.Dashboard.AppPath)
	str("MODELGATE_TRACING_ENDPOINT", &out.Tracing.Endpoint)
	if v, ok := lookup("MODELGATE_TRACING_ENABLED"); ok && v != "" {
		out.Tracing.Enabled = parseBool(v)
	}
	if v, ok := lookup("MODELGATE_TRACING_SAMPLE_RATIO"); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			out.Tracing.SampleRatio = f
		}
	}
	if v, ok := lookup("MODELGATE_LOG_PRETTY"); ok {
		out.LogPretty = parseBool(v)
	}
	if v, ok := lookup("MODELGATE_METADATA_PROBE"); ok && v != "" {
		b := parseBool(v)
		out.Classifier.MetadataProbe = &b
	}
	if v, ok := lookup("MODELGATE_MIN_CHAT_SIZE_BYTES"); ok {
		if n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64); err == nil {
			out.Classifier.MinChatSizeBytes = &n
		}
	}
	if v, ok := lookup("MODELGATE_EMBEDDING_INDICATORS"); ok {
		if list := SplitCSV(v); len(list) > 0 {
			out.Classifier.EmbeddingIndicators = list
		}
	}
	if v, ok := lookup("MODELGATE_PROBE_CONCURRENCY"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			out.ProbeConcurrency = n
		}
	}
	if v, ok := lookup("MODELGATE_CORS_ORIGINS"); ok {
		if list := SplitCSV(v); len(list) > 0 {
			out.CORS.Enabled = true
			out.CORS.Origins = list
		}
	}
	return out
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if _, err := c.ProbeTimeout(); err != nil {
		return err
	}
	if _, err := c.RequestTimeoutDuration(); err != nil {
		return err
	}
	if c.CORS.Enabled && len(c.CORS.Origins) == 0 {
		return fmt.Errorf("cors enabled but no origins configured")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("invalid tracing.sample_ratio %v: want 0..1", c.Tracing.SampleRatio)
	}
	return nil
}

// ProbeTimeout parses Classifier.ProbeTimeout. Empty means the classifier default.
func (c Config) ProbeTimeout() (time.Duration, error) {
	return parseDuration("classifier.probe_timeout", c.Classifier.ProbeTimeout)
}

// RequestTimeoutDuration parses RequestTimeout. Empty or zero disables it.
func (c Config) RequestTimeoutDuration() (time.Duration, error) {
	return parseDuration("request_timeout", c.RequestTimeout)
}

// ClassifierConfig converts the file representation to classifier.Config.
func (c Config) ClassifierConfig() classifier.Config {
	timeout, _ := c.ProbeTimeout()
	var probe *bool
	if c.Classifier.MetadataProbe != nil {
		v := *c.Classifier.MetadataProbe
		probe = &v
	}
	var minSize *uint64
	if c.Classifier.MinChatSizeBytes != nil {
		v := *c.Classifier.MinChatSizeBytes
		minSize = &v
	}
	return classifier.Config{
		EmbeddingIndicators: append([]string(nil), c.Classifier.EmbeddingIndicators...),
		MinChatSizeBytes:    minSize,
		MetadataProbe:       probe,
		ProbeTimeout:        timeout,
	}
}

// TracingConfig converts the file representation to tracing.Config.
func (c Config) TracingConfig() tracing.Config {
	return tracing.Config{
		Enabled:     c.Tracing.Enabled,
		Endpoint:    strings.TrimSpace(c.Tracing.Endpoint),
		ServiceName: c.Tracing.ServiceName,
		SampleRatio: c.Tracing.SampleRatio,
	}
}

// SplitCSV splits a comma-separated list, trimming blanks and empty items.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(field, s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: negative", field, s)
	}
	return d, nil
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// hostURL turns an OLLAMA_HOST value ("0.0.0.0:11434", "host") into a URL.
func hostURL(h string) string {
	if strings.HasPrefix(h, "http://") || strings.HasPrefix(h, "https://") {
		return h
	}
	if strings.HasPrefix(h, "0.0.0.0") {
		h = "localhost" + strings.TrimPrefix(h, "0.0.0.0")
	}
	if !strings.Contains(h, ":") {
		h += ":11434"
	}
	return "http://" + h
}

func setStr(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func setList(dst *[]string, v []string) {
	if len(v) > 0 {
		*dst = append([]string(nil), v...)
	}
}
