package payload

import (
	"encoding/json"
	"net/url"
	"strings"
)

// BodyKind discriminates the tolerated wire body shapes.
type BodyKind int

const (
	// BodyEmpty marks a body with no recognized structure. Raw retains the
	// trimmed body text for the last-resort claim fallback.
	BodyEmpty BodyKind = iota
	// BodyStructured marks a JSON object or transport-parsed form fields.
	BodyStructured
	// BodyPlainText marks a body that was a bare JSON-encoded string.
	BodyPlainText
	// BodyFieldSequence marks a body that was a JSON array.
	BodyFieldSequence
)

// Body is a wire request body resolved once into a tagged variant.
type Body struct {
	Kind   BodyKind
	Fields map[string]any
	Text   string
	Items  []any
	Raw    string
}

// Decode resolves a raw request body into a Body variant. A JSON parse is
// attempted on any non-empty body regardless of the declared content type;
// form fields parsed by the transport are consulted when JSON yields no
// usable shape. Parse failures fall through to BodyEmpty, never an error.
func Decode(raw []byte, form url.Values) Body {
	text := strings.TrimSpace(string(raw))

	if text != "" {
		dec := json.NewDecoder(strings.NewReader(text))
		dec.UseNumber()

		var parsed any
		if err := dec.Decode(&parsed); err == nil && !dec.More() {
			switch v := parsed.(type) {
			case map[string]any:
				return Body{Kind: BodyStructured, Fields: v, Raw: text}
			case string:
				if s := strings.TrimSpace(v); s != "" {
					return Body{Kind: BodyPlainText, Text: s, Raw: text}
				}
			case []any:
				return Body{Kind: BodyFieldSequence, Items: v, Raw: text}
			}
		}
	}

	if len(form) > 0 {
		fields := make(map[string]any, len(form))
		for key, values := range form {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
		return Body{Kind: BodyStructured, Fields: fields, Raw: text}
	}

	return Body{Kind: BodyEmpty, Raw: text}
}
