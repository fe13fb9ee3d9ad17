// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract recovers structured JSON embedded in free-form model
// output. Providers cannot be trusted to return bare JSON, so callers cut
// the likely JSON span out of the response text before decoding and fall
// back to canned content when decoding still fails.
package extract

import (
	"encoding/json"
	"strings"
)

// Array returns the substring from the first '[' to the last ']' in text,
// inclusive. If no such span exists it returns the empty-array literal "[]".
//
// This is a textual heuristic, not a balanced-bracket parse: nested or
// multiple arrays are not distinguished from the single intended array.
func Array(text string) string {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return "[]"
	}
	return text[start : end+1]
}

// Object returns the substring from the first '{' to the last '}' in text,
// inclusive. If no such span exists the original text is returned unchanged.
//
// The asymmetry with Array (which substitutes "[]") is deliberate and
// matches the behavior callers depend on.
func Object(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return text
	}
	return text[start : end+1]
}

// DecodeArray cuts the array span out of text and decodes it. A decode
// failure, or a response that decodes to null, yields the fallback.
func DecodeArray[T any](text string, fallback []T) []T {
	var out []T
	if err := json.Unmarshal([]byte(Array(text)), &out); err != nil || out == nil {
		return fallback
	}
	return out
}

// DecodeObject cuts the object span out of text and decodes it, yielding
// the fallback when decoding fails.
func DecodeObject[T any](text string, fallback T) T {
	var out T
	if err := json.Unmarshal([]byte(Object(text)), &out); err != nil {
		return fallback
	}
	return out
}
