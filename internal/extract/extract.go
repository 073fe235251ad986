// Package extract recovers a JSON object embedded in free-form AI output.
//
// The upstream generator wraps its answer in prose or code fences and
// occasionally emits trailing commas or strings broken across lines. The
// recovery here is a fixed set of substitutions, not a parser; it defines
// the contract with the generator's formatting quirks and must not be
// replaced by stricter scanning.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Extraction errors.
var (
	ErrNoObject   = errors.New("no JSON object found in text")
	ErrUnparsable = errors.New("JSON candidate could not be repaired")
)

// Repair rules, applied in this order exactly once after a failed parse.
var (
	trailingObjectComma = regexp.MustCompile(`,\s*}`)
	trailingArrayComma  = regexp.MustCompile(`,\s*]`)
	splitString         = regexp.MustCompile(`"\s*\n\s*"`)
)

// Object extracts and parses the JSON object contained in text.
//
// The candidate is the span from the first '{' to the last '}' inclusive.
// That is deliberately not a balanced-brace scan: if the generator ever
// emits multiple JSON-like blocks the span captures too much. Known
// limitation, kept for compatibility with the historical behavior.
func Object(text string) (map[string]any, error) {
	if text == "" || !strings.Contains(text, "{") {
		return nil, ErrNoObject
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if end == -1 {
		return nil, ErrNoObject
	}

	// A '}' before the first '{' leaves an empty candidate, which falls
	// through the repair pass and fails like any other garbage.
	candidate := ""
	if end >= start {
		candidate = text[start : end+1]
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err == nil {
		return obj, nil
	}

	candidate = trailingObjectComma.ReplaceAllString(candidate, "}")
	candidate = trailingArrayComma.ReplaceAllString(candidate, "]")
	candidate = splitString.ReplaceAllString(candidate, `" "`)

	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}

	return obj, nil
}
