package api

import (
	"veritas/internal/analysis"
	"veritas/internal/checks"
	"veritas/internal/frames"
	"veritas/internal/llm"
	"veritas/internal/search"
)

// Domain holds the domain systems that comprise the API.
type Domain struct {
	Checks checks.System
}

// NewDomain creates all domain systems from the API runtime. The search
// client is only attached when an API key is configured; without it the
// dispatcher runs ungrounded.
func NewDomain(runtime *Runtime) (*Domain, error) {
	model, err := llm.New(llm.Config{
		Provider:    runtime.Analysis.Provider,
		Model:       runtime.Analysis.Model,
		Token:       runtime.Analysis.Token,
		BaseURL:     runtime.Analysis.BaseURL,
		Timeout:     runtime.Analysis.TimeoutDuration(),
		Temperature: float32(runtime.Analysis.Temperature),
	}, runtime.Logger)
	if err != nil {
		return nil, err
	}

	var searcher analysis.SearchClient
	if runtime.Analysis.Search.Enabled() {
		searcher = search.NewSerper(
			runtime.Analysis.Search.APIKey,
			runtime.Analysis.Search.BaseURL,
			runtime.Analysis.Search.TimeoutDuration(),
			runtime.Logger,
		)
	}

	decoder := frames.NewFFmpegDecoder(
		runtime.Media.FFprobePath,
		runtime.Media.FFmpegPath,
		runtime.Media.MaxImageDimension,
	)
	sampler := frames.NewSampler(decoder, runtime.Logger)

	dispatcher := analysis.New(model, searcher, sampler, analysis.Options{
		MaxFrames:         runtime.Media.MaxFrames,
		MaxImageDimension: runtime.Media.MaxImageDimension,
		SearchResults:     runtime.Analysis.Search.MaxResults,
	}, runtime.Logger)

	checksSystem := checks.New(dispatcher, runtime.Storage, runtime.Logger)

	return &Domain{
		Checks: checksSystem,
	}, nil
}
