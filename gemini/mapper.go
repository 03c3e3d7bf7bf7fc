package gemini

import (
	"encoding/json"
	"strconv"
)

// unknownModelVersion is reported when the payload carries no model field.
const unknownModelVersion = "unknown"

// Wire DTOs for the response side. All fields are optional; absence
// degrades to defaults rather than failing the mapping.
type wireResponse struct {
	Candidates    json.RawMessage `json:"candidates"`
	UsageMetadata json.RawMessage `json:"usageMetadata"`
	Model         json.RawMessage `json:"model"`
}

type wireCandidate struct {
	Content *wireContent `json:"content"`
}

// MapResponseBody parses raw response text into a ResponseBody. It is a
// total function: malformed, empty or null input yields a body with an
// empty candidate sequence, nil usage metadata and model version
// "unknown", tagged OutcomeMalformed when the text was not valid JSON.
func MapResponseBody(raw string) ResponseBody {
	var root wireResponse
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		return ResponseBody{
			candidates:   []Candidate{},
			modelVersion: unknownModelVersion,
			outcome:      OutcomeMalformed,
		}
	}

	body := ResponseBody{
		candidates:   []Candidate{},
		modelVersion: unknownModelVersion,
		outcome:      OutcomeParsed,
	}

	if len(root.Candidates) > 0 {
		var wires []wireCandidate
		if err := json.Unmarshal(root.Candidates, &wires); err == nil {
			for _, wire := range wires {
				body.candidates = append(body.candidates, mapCandidate(wire))
			}
		}
	}

	if len(root.UsageMetadata) > 0 {
		body.usage = mapUsageMetadata(root.UsageMetadata)
	}

	if len(root.Model) > 0 {
		var model string
		if err := json.Unmarshal(root.Model, &model); err == nil && model != "" {
			body.modelVersion = model
		}
	}

	return body
}

// mapCandidate extracts the candidate's content sequence. A candidate
// without content or parts still yields a Candidate with an empty
// sequence; the entry itself is never skipped.
func mapCandidate(wire wireCandidate) Candidate {
	var contents []Content
	if wire.Content != nil {
		for _, part := range wire.Content.Parts {
			if part.Text == "" {
				continue
			}
			contents = append(contents, NewContent(NewResponsePart(part.Text)))
		}
	}
	return NewCandidate(contents...)
}

// mapUsageMetadata copies integer-valued fields by key. Fields holding
// floats, strings or structured values are silently skipped, not coerced.
func mapUsageMetadata(raw json.RawMessage) UsageMetadata {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}

	usage := UsageMetadata{}
	for key, value := range fields {
		var number json.Number
		if err := json.Unmarshal(value, &number); err != nil {
			continue
		}
		count, err := strconv.ParseInt(number.String(), 10, 64)
		if err != nil {
			continue
		}
		usage[key] = int(count)
	}
	return usage
}
