// Package payload resolves inbound verification requests of unknown shape
// into a canonical AnalysisRequest. Callers decode the wire body once into a
// tagged Body variant, then Normalize maps any variant plus query parameters
// and an optional attachment to the canonical form.
package payload

// MediaKind identifies the broad category of an uploaded attachment.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// AnalysisRequest is the canonical form of a verification request.
// It is constructed once per request during normalization and treated
// as immutable afterwards.
type AnalysisRequest struct {
	Claim        string
	URL          string
	Media        *MediaBlob
	ExtraContext string
	Deep         bool
}

// MediaBlob carries an uploaded attachment with its declared content type.
type MediaBlob struct {
	Data        []byte
	ContentType string
	Kind        MediaKind
	Filename    string
}

// Attachment describes a file part as received by the transport layer,
// before its content type has been classified.
type Attachment struct {
	Data        []byte
	ContentType string
	Filename    string
}
