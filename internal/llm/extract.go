package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned by ExtractJSON when the text holds no brace-delimited span.
var ErrNoJSON = errors.New("no JSON object in model output")

// ExtractJSON returns the substring from the first '{' to the last '}'
// inclusive. Models often wrap the object in prose or markdown fences; the
// span is returned as-is and is not checked for validity here.
func ExtractJSON(text string) (json.RawMessage, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return nil, ErrNoJSON
	}
	return json.RawMessage(text[start : end+1]), nil
}

// decodeContent turns raw provider text into response content. With a
// schema the JSON span is extracted and validated; without one the text is
// passed through untouched.
func decodeContent(schema *Schema, text string) (json.RawMessage, error) {
	if schema == nil {
		return json.RawMessage(text), nil
	}
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, invalidResponse(text, err)
	}
	if err := validate(schema, raw); err != nil {
		return nil, invalidResponse(string(raw), err)
	}
	return raw, nil
}
