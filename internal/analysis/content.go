package analysis

// Content is one block of model input: either text or an encoded image,
// never both. Blocks are ordered; providers render them in sequence.
type Content struct {
	Text string
	Data []byte
	MIME string
}

// TextContent builds a text block.
func TextContent(text string) Content {
	return Content{Text: text}
}

// ImageContent builds an image block.
func ImageContent(data []byte, mime string) Content {
	return Content{Data: data, MIME: mime}
}

// IsImage reports whether the block carries image bytes.
func (c Content) IsImage() bool {
	return len(c.Data) > 0
}
