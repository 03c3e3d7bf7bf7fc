package gemini

import "encoding/json"

// Direction indicates whether a Part travels toward the model (request)
// or back from it (response).
type Direction int

const (
	DirectionRequest Direction = iota
	DirectionResponse
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirectionRequest:
		return "request"
	case DirectionResponse:
		return "response"
	default:
		return "unknown"
	}
}

// Part is the smallest unit of prompt or response text. Parts are
// immutable once constructed.
type Part struct {
	text      string
	direction Direction
}

// NewRequestPart creates an outbound prompt fragment.
func NewRequestPart(text string) Part {
	return Part{text: text, direction: DirectionRequest}
}

// NewResponsePart creates an inbound (model-generated) fragment.
func NewResponsePart(text string) Part {
	return Part{text: text, direction: DirectionResponse}
}

// Text returns the fragment text.
func (p Part) Text() string { return p.text }

// Direction returns the direction the fragment travels.
func (p Part) Direction() Direction { return p.direction }

// Content is one turn's worth of material, an ordered sequence of parts.
type Content struct {
	parts []Part
}

// NewContent creates a Content from the given parts. The input slice is
// copied so later mutation by the caller cannot change the value.
func NewContent(parts ...Part) Content {
	copied := make([]Part, len(parts))
	copy(copied, parts)
	return Content{parts: copied}
}

// Parts returns a copy of the ordered parts.
func (c Content) Parts() []Part {
	out := make([]Part, len(c.parts))
	copy(out, c.parts)
	return out
}

// Len returns the number of parts.
func (c Content) Len() int { return len(c.parts) }

// Text returns the concatenated text of all parts in order.
func (c Content) Text() string {
	var out string
	for _, part := range c.parts {
		out += part.text
	}
	return out
}

// RequestBody is the ordered sequence of contents sent in one call.
type RequestBody struct {
	contents []Content
}

// NewRequestBody creates a RequestBody from the given contents.
func NewRequestBody(contents ...Content) RequestBody {
	copied := make([]Content, len(contents))
	copy(copied, contents)
	return RequestBody{contents: copied}
}

// Contents returns a copy of the ordered contents.
func (b RequestBody) Contents() []Content {
	out := make([]Content, len(b.contents))
	copy(out, b.contents)
	return out
}

// Len returns the number of contents.
func (b RequestBody) Len() int { return len(b.contents) }

// wirePart, wireContent and wireRequestBody are the generateContent wire
// DTOs. The prompt model stays immutable; serialization goes through these.
type wirePart struct {
	Text string `json:"text"`
}

type wireContent struct {
	Parts []wirePart `json:"parts"`
}

type wireRequestBody struct {
	Contents []wireContent `json:"contents"`
}

// MarshalJSON serializes the body into the generateContent wire shape:
// {"contents":[{"parts":[{"text":"..."}]}]}.
func (b RequestBody) MarshalJSON() ([]byte, error) {
	wire := wireRequestBody{Contents: make([]wireContent, 0, len(b.contents))}
	for _, content := range b.contents {
		wc := wireContent{Parts: make([]wirePart, 0, len(content.parts))}
		for _, part := range content.parts {
			wc.Parts = append(wc.Parts, wirePart{Text: part.text})
		}
		wire.Contents = append(wire.Contents, wc)
	}
	return json.Marshal(wire)
}
