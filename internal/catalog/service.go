package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"modelgate/internal/classifier"
	"modelgate/internal/ollama"
	"modelgate/pkg/types"
)

// Source lists the models installed on the daemon.
type Source interface {
	ListModels(ctx context.Context) ([]ollama.Model, error)
}

// pinger is implemented by sources that offer a cheap reachability check.
type pinger interface {
	Version(ctx context.Context) (string, error)
}

// Service lists the chat-capable models of a daemon. It keeps no state
// between calls; every listing fetches the catalog afresh.
type Service struct {
	source      Source
	classifier  *classifier.Classifier
	pullModel   string
	concurrency int
	publisher   EventPublisher
	tracer      trace.Tracer
	log         zerolog.Logger
}

const tracerName = "modelgate/internal/catalog"

func tracerFrom(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(tracerName)
}

// ListChatModels fetches the catalog and returns the chat-capable models in
// catalog order. It fails with ErrUpstreamUnavailable when the catalog cannot
// be fetched and ErrNoQualifyingModels when nothing qualifies.
func (s *Service) ListChatModels(ctx context.Context) (_ []types.ModelInfo, err error) {
	scanID := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, "ListChatModels", trace.WithAttributes(attribute.String("scan_id", scanID)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	log := s.log.With().Str("scan_id", scanID).Logger()

	models, err := s.source.ListModels(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch models")
		return nil, ErrUpstreamUnavailable(err)
	}
	log.Info().Int("count", len(models)).Msg("analyzing models")
	s.publisher.Publish(Event{Name: EventScanStart, ScanID: scanID, Fields: map[string]any{"count": len(models)}})
	span.SetAttributes(attribute.Int("catalog.size", len(models)))

	decisions := make([]classifier.Decision, len(models))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, m := range models {
		g.Go(func() error {
			decisions[i] = s.classifier.Classify(ctx, classifier.ModelDescriptor{Name: m.ID(), Size: m.Size})
			return nil
		})
	}
	_ = g.Wait()
	// A departed client gets nothing. A deadline only cuts probes short, and
	// the classifier already decided those models without metadata.
	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		return nil, err
	}

	out := make([]types.ModelInfo, 0, len(models))
	for i, m := range models {
		d := decisions[i]
		if !d.Chat {
			log.Info().Str("model", d.Model).Str("stage", d.Stage).Msg("skipped non-chat model")
			s.publisher.Publish(Event{Name: EventModelSkipped, ScanID: scanID, ModelID: d.Model, Fields: map[string]any{"stage": d.Stage, "reason": d.Reason}})
			continue
		}
		out = append(out, types.ModelInfo{Name: d.Model, Size: m.Size, ModifiedAt: m.ModifiedAt})
		log.Info().Str("model", d.Model).Msg("added chat model")
		s.publisher.Publish(Event{Name: EventModelAccepted, ScanID: scanID, ModelID: d.Model})
	}
	s.publisher.Publish(Event{Name: EventScanEnd, ScanID: scanID, Fields: map[string]any{"accepted": len(out)}})
	span.SetAttributes(attribute.Int("catalog.accepted", len(out)))

	if len(out) == 0 {
		err := ErrNoQualifyingModels(s.pullModel)
		log.Warn().Msg(err.Error())
		return nil, err
	}
	log.Info().Int("count", len(out)).Msg("returning chat models")
	return out, nil
}

// Ready reports whether the daemon is reachable.
func (s *Service) Ready(ctx context.Context) bool {
	if p, ok := s.source.(pinger); ok {
		_, err := p.Version(ctx)
		return err == nil
	}
	_, err := s.source.ListModels(ctx)
	return err == nil
}
