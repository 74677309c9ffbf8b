package catalog

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"modelgate/internal/classifier"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultPullModel        = "llama3.2"
	defaultProbeConcurrency = 4
)

// Config encapsulates all tunables for Service construction.
type Config struct {
	// Source lists installed models. Required.
	Source Source
	// Classifier decides which models are chat-capable. Defaults to a
	// classifier with default config and no metadata probe.
	Classifier *classifier.Classifier
	// PullModel is suggested in the empty-result hint.
	PullModel string
	// ProbeConcurrency bounds concurrent classifications per listing.
	ProbeConcurrency int
	Publisher        EventPublisher
	// TracerProvider receives one span per listing. Nil uses the global provider.
	TracerProvider trace.TracerProvider
	Logger         *zerolog.Logger
}

// New constructs a Service from Config.
func New(cfg Config) *Service {
	s := &Service{
		source:      cfg.Source,
		classifier:  cfg.Classifier,
		pullModel:   cfg.PullModel,
		concurrency: cfg.ProbeConcurrency,
		publisher:   cfg.Publisher,
		tracer:      tracerFrom(cfg.TracerProvider),
		log:         zerolog.Nop(),
	}
	if cfg.Logger != nil {
		s.log = *cfg.Logger
	}
	if s.classifier == nil {
		s.classifier = classifier.New(classifier.DefaultConfig(), nil, classifier.WithLogger(s.log))
	}
	if s.pullModel == "" {
		s.pullModel = DefaultPullModel
	}
	if s.concurrency <= 0 {
		s.concurrency = defaultProbeConcurrency
	}
	if s.publisher == nil {
		s.publisher = noopPublisher{}
	}
	return s
}
