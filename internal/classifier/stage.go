package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Stage names reported in Decision.Stage.
const (
	StageName     = "name"
	StageSize     = "size"
	StageMetadata = "metadata"
	StageDefault  = "default"
)

// ModelDescriptor is the classifier input for one catalog entry.
type ModelDescriptor struct {
	Name string
	Size uint64
}

// ModelDetails is the subset of the daemon's "show model" response the
// classifier inspects.
type ModelDetails struct {
	// Modelfile is the free-text model configuration. Empty when absent.
	Modelfile string
}

// MetadataProvider fetches extended details for a single model.
type MetadataProvider interface {
	ShowModel(ctx context.Context, name string) (ModelDetails, error)
}

// MetadataProviderFunc adapts a function to MetadataProvider.
type MetadataProviderFunc func(ctx context.Context, name string) (ModelDetails, error)

func (f MetadataProviderFunc) ShowModel(ctx context.Context, name string) (ModelDetails, error) {
	return f(ctx, name)
}

// Stage is one step of the classification pipeline. Evaluate returns
// exclude=true to classify the model as embedding-only; otherwise the next
// stage runs.
type Stage interface {
	Name() string
	Evaluate(ctx context.Context, m ModelDescriptor) (exclude bool, reason string)
}

type nameStage struct {
	indicators []string
}

func (nameStage) Name() string { return StageName }

func (s nameStage) Evaluate(_ context.Context, m ModelDescriptor) (bool, string) {
	lower := strings.ToLower(m.Name)
	for _, ind := range s.indicators {
		if strings.Contains(lower, ind) {
			return true, fmt.Sprintf("name contains %q", ind)
		}
	}
	return false, ""
}

type sizeStage struct {
	min uint64
}

func (sizeStage) Name() string { return StageSize }

func (s sizeStage) Evaluate(_ context.Context, m ModelDescriptor) (bool, string) {
	if m.Size < s.min {
		return true, fmt.Sprintf("size %.2fGB below %.2fGB", float64(m.Size)/1e9, float64(s.min)/1e9)
	}
	return false, ""
}

// metadataStage never fails classification: probe errors mean "no information".
type metadataStage struct {
	provider MetadataProvider
	timeout  time.Duration
	log      zerolog.Logger
}

func (metadataStage) Name() string { return StageMetadata }

func (s metadataStage) Evaluate(ctx context.Context, m ModelDescriptor) (bool, string) {
	if s.provider == nil {
		return false, ""
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	details, err := s.probe(ctx, m.Name)
	if err != nil {
		s.log.Debug().Str("model", m.Name).Err(err).Msg("metadata probe failed")
		return false, ""
	}
	if strings.Contains(strings.ToLower(details.Modelfile), "embed") {
		return true, `modelfile contains "embed"`
	}
	return false, ""
}

// probe converts provider panics into errors.
func (s metadataStage) probe(ctx context.Context, name string) (d ModelDetails, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("metadata provider panic: %v", r)
		}
	}()
	return s.provider.ShowModel(ctx, name)
}
