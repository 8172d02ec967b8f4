package osint

import (
	"encoding/json"
	"strings"
)

// Extractor locates and parses the single JSON object expected inside a
// free-text model response. Isolated behind an interface so a stricter
// balanced-object scanner can replace the brace heuristic without
// touching callers.
type Extractor interface {
	Extract(text string) (json.RawMessage, error)
}

// BraceExtractor slices from the first '{' to the last '}' and parses the
// result. Known limitation: unrelated braces in surrounding prose widen
// the slice; the parse step then rejects it as malformed.
type BraceExtractor struct{}

func (BraceExtractor) Extract(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &MalformedResponseError{Reason: "no se encontró un objeto JSON"}
	}

	raw := json.RawMessage(text[start : end+1])
	if !json.Valid(raw) {
		return nil, &MalformedResponseError{Reason: "el objeto JSON no es válido"}
	}
	return raw, nil
}
