package payload

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Alias keys tolerated during extraction. Declaration order here is the
// precedence order; request order never matters.
var (
	claimAliases   = []string{"claim", "text", "input", "message", "query", "prompt", "statement"}
	urlAliases     = []string{"url", "link"}
	contextAliases = []string{"extra_context", "context"}
)

// queryClaimAliases appends the query-string-only shorthand q.
var queryClaimAliases = append(claimAliases[:len(claimAliases):len(claimAliases)], "q")

// ClaimAliases returns the accepted claim alias keys, for usage responses.
func ClaimAliases() []string {
	out := make([]string, len(claimAliases))
	copy(out, claimAliases)
	return out
}

// URLAliases returns the accepted URL alias keys, for usage responses.
func URLAliases() []string {
	out := make([]string, len(urlAliases))
	copy(out, urlAliases)
	return out
}

// Normalize maps a decoded body, query parameters, and an optional attachment
// to a canonical AnalysisRequest. Body values beat query values for the same
// alias; an unrecognized raw body becomes the claim only as a last resort.
// URL values pass through verbatim even when malformed. On success at least
// one of Claim, URL, or Media is set; otherwise ErrMissingInput is returned.
// Pure transformation: no I/O beyond what the transport already performed.
func Normalize(body Body, query url.Values, att *Attachment) (*AnalysisRequest, error) {
	req := &AnalysisRequest{}

	switch body.Kind {
	case BodyStructured:
		req.Claim = firstField(body.Fields, claimAliases)
		req.URL = firstStringField(body.Fields, urlAliases)
		req.ExtraContext = firstField(body.Fields, contextAliases)
		req.Deep = boolish(body.Fields["deep"])
	case BodyPlainText:
		req.Claim = body.Text
	case BodyFieldSequence:
		req.Claim = joinItems(body.Items)
	}

	if req.Claim == "" {
		req.Claim = firstQuery(query, queryClaimAliases)
	}
	if req.URL == "" {
		req.URL = firstQuery(query, urlAliases)
	}
	if req.ExtraContext == "" {
		req.ExtraContext = firstQuery(query, contextAliases)
	}
	if !req.Deep {
		req.Deep = boolish(query.Get("deep"))
	}

	// A parsed object suppresses the raw fallback even when its fields
	// were unusable; every other shape lets the raw body stand in.
	if req.Claim == "" && body.Raw != "" && len(body.Fields) == 0 {
		req.Claim = body.Raw
	}

	if att != nil {
		media, err := mediaFromAttachment(att)
		if err != nil {
			return nil, err
		}
		req.Media = media
	}

	if req.Claim == "" && req.URL == "" && req.Media == nil {
		return nil, ErrMissingInput
	}

	return req, nil
}

// KindFromContentType maps a declared content type to a MediaKind. Types
// outside image/* and video/* are rejected, not silently dropped.
func KindFromContentType(contentType string) (MediaKind, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return KindImage, nil
	case strings.HasPrefix(contentType, "video/"):
		return KindVideo, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, contentType)
	}
}

func mediaFromAttachment(att *Attachment) (*MediaBlob, error) {
	kind, err := KindFromContentType(att.ContentType)
	if err != nil {
		return nil, err
	}

	return &MediaBlob{
		Data:        att.Data,
		ContentType: att.ContentType,
		Kind:        kind,
		Filename:    att.Filename,
	}, nil
}

func firstField(fields map[string]any, aliases []string) string {
	for _, key := range aliases {
		v, ok := fields[key]
		if !ok {
			continue
		}
		if s := fieldString(v); s != "" {
			return s
		}
	}
	return ""
}

func firstStringField(fields map[string]any, aliases []string) string {
	for _, key := range aliases {
		s, ok := fields[key].(string)
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// fieldString accepts string and number values; numbers keep their wire text.
func fieldString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	}
	return ""
}

func firstQuery(query url.Values, aliases []string) string {
	for _, key := range aliases {
		if v := strings.TrimSpace(query.Get(key)); v != "" {
			return v
		}
	}
	return ""
}

func joinItems(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			parts = append(parts, v)
		case json.Number:
			parts = append(parts, v.String())
		case bool:
			parts = append(parts, strconv.FormatBool(v))
		default:
			parts = append(parts, fmt.Sprintf("%v", v))
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func boolish(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "on", "yes":
			return true
		}
	}
	return false
}
