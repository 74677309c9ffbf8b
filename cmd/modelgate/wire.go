package main

import (
	"context"
	"time"

	client "github.com/mutablelogic/go-client"

	"modelgate/internal/catalog"
	"modelgate/internal/classifier"
	"modelgate/internal/ollama"
	"modelgate/internal/tracing"
)

const tracingFlushTimeout = 5 * time.Second

// startTracing installs the tracer provider from config. The returned func
// flushes pending spans.
func (a *app) startTracing(ctx context.Context) (func(), error) {
	tp, shutdown, err := tracing.Setup(ctx, a.cfg.TracingConfig(), a.log.With().Str("component", "tracing").Logger())
	if err != nil {
		return nil, err
	}
	a.tracer = tp
	return func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), tracingFlushTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			a.log.Warn().Err(err).Msg("tracing shutdown")
		}
	}, nil
}

// buildService wires the daemon client, classifier and catalog service.
func (a *app) buildService(opts ...client.ClientOpt) (*catalog.Service, error) {
	cli, err := ollama.New(a.cfg.OllamaURL, opts...)
	if err != nil {
		return nil, err
	}
	clsLog := a.log.With().Str("component", "classifier").Logger()
	cls := classifier.New(a.cfg.ClassifierConfig(), cli, classifier.WithLogger(clsLog))
	catLog := a.log.With().Str("component", "catalog").Logger()
	return catalog.New(catalog.Config{
		Source:           cli,
		Classifier:       cls,
		PullModel:        a.cfg.PullModel,
		ProbeConcurrency: a.cfg.ProbeConcurrency,
		TracerProvider:   a.tracer,
		Logger:           &catLog,
	}), nil
}
