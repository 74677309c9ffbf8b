package classifier

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
)

// Decision is the outcome of classifying one model.
type Decision struct {
	Model string
	// Chat is true when the model is treated as chat-capable.
	Chat bool
	// Stage names the heuristic that produced the decision.
	Stage string
	// Reason is a human-readable explanation for logs.
	Reason string
}

// Classifier runs the stage pipeline.
type Classifier struct {
	cfg    Config
	stages []Stage
	log    zerolog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger installs a structured logger. The default discards output.
func WithLogger(l zerolog.Logger) Option { return func(c *Classifier) { c.log = l } }

// New builds the default pipeline from cfg. A nil provider or a disabled
// probe leaves the metadata stage out; a zero size threshold leaves the size
// stage out.
func New(cfg Config, provider MetadataProvider, opts ...Option) *Classifier {
	c := &Classifier{cfg: cfg.withDefaults(), log: zerolog.Nop()}
	for _, o := range opts {
		o(c)
	}
	c.stages = []Stage{nameStage{indicators: c.cfg.EmbeddingIndicators}}
	if minSize := c.cfg.MinChatSize(); minSize > 0 {
		c.stages = append(c.stages, sizeStage{min: minSize})
	}
	if provider != nil && c.cfg.ProbeEnabled() {
		c.stages = append(c.stages, metadataStage{provider: provider, timeout: c.cfg.ProbeTimeout, log: c.log})
	}
	return c
}

// NewWithStages builds a Classifier with a custom pipeline.
func NewWithStages(stages []Stage, opts ...Option) *Classifier {
	c := &Classifier{cfg: DefaultConfig(), log: zerolog.Nop()}
	for _, o := range opts {
		o(c)
	}
	c.stages = append([]Stage(nil), stages...)
	return c
}

// Config returns the effective configuration.
func (c *Classifier) Config() Config { return c.cfg }

// Classify runs the stages in order; the first exclusion wins.
func (c *Classifier) Classify(ctx context.Context, m ModelDescriptor) Decision {
	for _, s := range c.stages {
		exclude, reason := s.Evaluate(ctx, m)
		if !exclude {
			c.log.Debug().Str("model", m.Name).Str("stage", s.Name()).Msg("stage passed")
			continue
		}
		d := Decision{Model: m.Name, Chat: false, Stage: s.Name(), Reason: reason}
		c.record(d)
		return d
	}
	d := Decision{Model: m.Name, Chat: true, Stage: StageDefault, Reason: "no embedding signal"}
	c.record(d)
	return d
}

// IsChatModel is the boolean form of Classify.
func (c *Classifier) IsChatModel(ctx context.Context, name string, size uint64) bool {
	return c.Classify(ctx, ModelDescriptor{Name: name, Size: size}).Chat
}

func (c *Classifier) record(d Decision) {
	decisionsTotal.WithLabelValues(d.Stage, strconv.FormatBool(d.Chat)).Inc()
	if d.Chat {
		c.log.Info().Str("model", d.Model).Str("stage", d.Stage).Msg("model appears to be a chat model")
		return
	}
	c.log.Info().Str("model", d.Model).Str("stage", d.Stage).Str("reason", d.Reason).Msg("likely embedding model")
}
