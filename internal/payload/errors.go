package payload

import "errors"

// Domain errors for request normalization.
var (
	ErrMissingInput     = errors.New("either a claim, url, or media attachment must be provided")
	ErrUnsupportedMedia = errors.New("unsupported media type")
)
