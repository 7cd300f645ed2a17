package analysis

import "context"

// ModelClient is the capability surface for the external language/vision
// model. Implementations must request JSON-shaped output from the provider
// and fail hard on transport errors; the dispatcher does not retry.
type ModelClient interface {
	Complete(ctx context.Context, system string, blocks []Content) (string, error)
}

// SearchClient is the capability surface for the external web-search
// provider. Implementations fail soft: any error, including missing
// credentials, yields an empty result list rather than a failure.
type SearchClient interface {
	Search(ctx context.Context, query string, max int) []SearchResult
}

// SearchResult is one web-search hit used as grounding evidence.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}
