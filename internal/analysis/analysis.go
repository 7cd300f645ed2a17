// Package analysis selects and runs one of three verification strategies:
// text/URL reasoning, single-image forensics, or multi-frame video forensics.
// The dispatcher owns strategy choice and search grounding; model and search
// access arrive as injected capabilities so tests can substitute fakes.
package analysis

import (
	"context"
	"log/slog"

	"veritas/internal/frames"
	"veritas/internal/payload"
	"veritas/internal/verdict"
)

const (
	DefaultMaxFrames         = 4
	DefaultMaxImageDimension = 1280
	DefaultSearchResults     = 5
)

// Options bound the dispatcher's resource use per request.
type Options struct {
	MaxFrames         int
	MaxImageDimension int
	SearchResults     int
}

func (o *Options) finalize() {
	if o.MaxFrames <= 0 {
		o.MaxFrames = DefaultMaxFrames
	}

	if o.MaxImageDimension <= 0 {
		o.MaxImageDimension = DefaultMaxImageDimension
	}

	if o.SearchResults <= 0 {
		o.SearchResults = DefaultSearchResults
	}
}

type Dispatcher struct {
	model   ModelClient
	search  SearchClient
	sampler *frames.Sampler
	options Options
	logger  *slog.Logger
}

// New builds a Dispatcher. search may be nil when no provider is configured;
// grounding and follow-up lookups are skipped in that case.
func New(model ModelClient, search SearchClient, sampler *frames.Sampler, options Options, logger *slog.Logger) *Dispatcher {
	options.finalize()

	return &Dispatcher{
		model:   model,
		search:  search,
		sampler: sampler,
		options: options,
		logger:  logger.With("system", "analysis"),
	}
}

// Dispatch routes a normalized request to its strategy: media requests to
// image or video forensics by declared kind, everything else to text/URL
// reasoning. The input normalizer guarantees at least one input is present.
func (d *Dispatcher) Dispatch(ctx context.Context, req *payload.AnalysisRequest) (*verdict.Report, error) {
	switch {
	case req.Media != nil && req.Media.Kind == payload.KindVideo:
		return d.analyzeVideo(ctx, req)
	case req.Media != nil:
		return d.analyzeImage(ctx, req)
	default:
		return d.analyzeText(ctx, req)
	}
}
