package classifier

import (
	"strings"
	"time"
)

// Defaults applied when corresponding Config fields are unset.
const (
	// DefaultMinChatSizeBytes is an empirical cut-off. Small instruction-tuned
	// models sit around 600 MB-1 GB, so it stays well under 1 GB.
	DefaultMinChatSizeBytes uint64 = 400_000_000
	DefaultProbeTimeout            = 5 * time.Second
)

// DefaultEmbeddingIndicators are name fragments that mark embedding models.
var DefaultEmbeddingIndicators = []string{
	"embed", "embedding", "bge", "e5", "sentence", "mpnet", "minilm", "retrieval",
}

// Config holds the classifier tunables.
type Config struct {
	// EmbeddingIndicators are matched as case-insensitive substrings of the model name.
	EmbeddingIndicators []string
	// MinChatSizeBytes excludes models strictly smaller than this many bytes.
	// Nil uses DefaultMinChatSizeBytes; zero turns the size stage off.
	MinChatSizeBytes *uint64
	// MetadataProbe enables the Modelfile lookup stage.
	MetadataProbe *bool
	// ProbeTimeout bounds a single metadata lookup. Zero uses DefaultProbeTimeout.
	ProbeTimeout time.Duration
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	probe := true
	minSize := DefaultMinChatSizeBytes
	return Config{
		EmbeddingIndicators: append([]string(nil), DefaultEmbeddingIndicators...),
		MinChatSizeBytes:    &minSize,
		MetadataProbe:       &probe,
		ProbeTimeout:        DefaultProbeTimeout,
	}
}

// MinChatSize returns the effective size threshold; zero means no size check.
func (c Config) MinChatSize() uint64 {
	if c.MinChatSizeBytes == nil {
		return DefaultMinChatSizeBytes
	}
	return *c.MinChatSizeBytes
}

// ProbeEnabled reports whether the metadata stage should run. Unset means enabled.
func (c Config) ProbeEnabled() bool {
	return c.MetadataProbe == nil || *c.MetadataProbe
}

// withDefaults fills zero fields from DefaultConfig and lower-cases indicators.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	out := c
	if len(out.EmbeddingIndicators) == 0 {
		out.EmbeddingIndicators = def.EmbeddingIndicators
	}
	indicators := make([]string, 0, len(out.EmbeddingIndicators))
	for _, ind := range out.EmbeddingIndicators {
		ind = strings.ToLower(strings.TrimSpace(ind))
		if ind == "" {
			continue
		}
		indicators = append(indicators, ind)
	}
	out.EmbeddingIndicators = indicators
	if out.MinChatSizeBytes == nil {
		out.MinChatSizeBytes = def.MinChatSizeBytes
	} else {
		v := *out.MinChatSizeBytes
		out.MinChatSizeBytes = &v
	}
	if out.ProbeTimeout <= 0 {
		out.ProbeTimeout = def.ProbeTimeout
	}
	return out
}
