package analysis

import "errors"

// ErrUpstreamAnalysis indicates the model client failed: network error,
// non-2xx response, or timeout. The dispatcher performs a single attempt;
// whether to re-submit is the caller's policy decision.
var ErrUpstreamAnalysis = errors.New("analysis engine request failed")
