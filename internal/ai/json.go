// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"encoding/json"
	"strings"
)

// DecodeJSON parses a model response into T, tolerating the usual LLM
// artifacts: markdown code fences, leading prose, trailing commentary.
// On any parse failure the provided fallback is returned and ok is false,
// so every call site carries an explicit default instead of a scattered
// literal.
func DecodeJSON[T any](raw string, fallback T) (T, bool) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return fallback, false
	}

	var out T
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return fallback, false
	}
	return out, true
}

// extractJSON strips code fences and isolates the first JSON document
// (object or array) in the text.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Strip ```json ... ``` fences.
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	// Isolate the outermost object or array.
	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')
	start := objStart
	end := strings.LastIndexByte(s, '}')
	if arrStart != -1 && (objStart == -1 || arrStart < objStart) {
		start = arrStart
		end = strings.LastIndexByte(s, ']')
	}
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
