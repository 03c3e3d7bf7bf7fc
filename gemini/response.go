package gemini

// Usage metric names returned by the generateContent API.
const (
	UsagePromptTokens     = "promptTokenCount"
	UsageCandidatesTokens = "candidatesTokenCount"
	UsageTotalTokens      = "totalTokenCount"
)

// UsageMetadata maps a usage metric name to its integer count. It is nil
// when the upstream service returned no usage block.
type UsageMetadata map[string]int

// Outcome tags how a ResponseBody was produced, distinguishing an empty
// upstream result from unparseable input.
type Outcome int

const (
	// OutcomeParsed means the response body was valid JSON, even if it
	// carried no candidates.
	OutcomeParsed Outcome = iota

	// OutcomeMalformed means the raw body could not be parsed and the
	// defaults were substituted.
	OutcomeMalformed
)

// Candidate is one generated alternative, an ordered sequence of contents.
type Candidate struct {
	contents []Content
}

// NewCandidate creates a Candidate from the given contents.
func NewCandidate(contents ...Content) Candidate {
	copied := make([]Content, len(contents))
	copy(copied, contents)
	return Candidate{contents: copied}
}

// Contents returns a copy of the candidate's ordered contents.
func (c Candidate) Contents() []Content {
	out := make([]Content, len(c.contents))
	copy(out, c.contents)
	return out
}

// Len returns the number of contents.
func (c Candidate) Len() int { return len(c.contents) }

// Text returns the concatenated text of all contents in order.
func (c Candidate) Text() string {
	var out string
	for _, content := range c.contents {
		out += content.Text()
	}
	return out
}

// ResponseBody is the mapped payload of a generateContent response.
type ResponseBody struct {
	candidates   []Candidate
	usage        UsageMetadata
	modelVersion string
	outcome      Outcome
}

// NewResponseBody creates a ResponseBody. A nil candidates slice is
// normalized to an empty one; Candidates never returns nil.
func NewResponseBody(candidates []Candidate, usage UsageMetadata, modelVersion string) ResponseBody {
	copied := make([]Candidate, len(candidates))
	copy(copied, candidates)
	return ResponseBody{
		candidates:   copied,
		usage:        usage,
		modelVersion: modelVersion,
		outcome:      OutcomeParsed,
	}
}

// Candidates returns a copy of the candidate sequence, never nil.
func (b ResponseBody) Candidates() []Candidate {
	out := make([]Candidate, len(b.candidates))
	copy(out, b.candidates)
	return out
}

// Usage returns the usage metadata, nil when the service omitted it.
func (b ResponseBody) Usage() UsageMetadata { return b.usage }

// TokenCount returns the count for a usage metric, zero when absent.
func (b ResponseBody) TokenCount(metric string) int { return b.usage[metric] }

// ModelVersion returns the reported model version, "unknown" when absent.
func (b ResponseBody) ModelVersion() string { return b.modelVersion }

// Outcome reports whether the body was parsed or substituted for
// malformed input.
func (b ResponseBody) Outcome() Outcome { return b.outcome }

// Response is the inbound counterpart of Request.
type Response interface {
	StatusCode() int
	Headers() map[string]string
	Body() ResponseBody
	Successful() bool
	ErrorMessage() string
}

// ChatResponse is the Response implementation returned by ChatModel.Call.
type ChatResponse struct {
	statusCode int
	headers    map[string]string
	body       ResponseBody
	successful bool
	errMessage string
}

// NewChatResponse creates a ChatResponse. The success flag is derived
// from the status code (2xx).
func NewChatResponse(statusCode int, headers map[string]string, body ResponseBody) *ChatResponse {
	if headers == nil {
		headers = map[string]string{}
	}
	return &ChatResponse{
		statusCode: statusCode,
		headers:    headers,
		body:       body,
		successful: statusCode >= 200 && statusCode < 300,
	}
}

// StatusCode implements Response.
func (r *ChatResponse) StatusCode() int { return r.statusCode }

// Headers implements Response.
func (r *ChatResponse) Headers() map[string]string { return r.headers }

// Body implements Response.
func (r *ChatResponse) Body() ResponseBody { return r.body }

// Successful implements Response.
func (r *ChatResponse) Successful() bool { return r.successful }

// ErrorMessage implements Response. It is empty unless the response was
// synthesized from a transport failure.
func (r *ChatResponse) ErrorMessage() string { return r.errMessage }
