package frames

import "errors"

// ErrUnreadableMedia indicates the media bytes could not be probed or
// decoded. The condition is terminal: re-sampling the same bytes cannot
// succeed, so callers must not retry.
var ErrUnreadableMedia = errors.New("media could not be decoded for analysis")
