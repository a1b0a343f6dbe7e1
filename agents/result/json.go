/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ExtractJSON extracts JSON content from a text response that may contain
// markdown code blocks. It looks for content between ```json and ``` markers,
// or returns the input trimmed if no markers are found.
func ExtractJSON(responseText string) string {
	// Search for the first instance of ```json on its own line and collect
	// content until the closing ```.
	lines := strings.Split(responseText, "\n")
	var jsonBuffer bytes.Buffer
	inJSONBlock := false
	foundJSON := false

	for _, line := range lines {
		if !inJSONBlock && line == "```json" {
			inJSONBlock = true
			foundJSON = true
			continue
		}

		if inJSONBlock && line == "```" {
			break
		}

		if inJSONBlock {
			if jsonBuffer.Len() > 0 {
				jsonBuffer.WriteString("\n")
			}
			jsonBuffer.WriteString(line)
		}
	}

	if foundJSON {
		if jsonBuffer.Len() == 0 {
			// Found a ```json block but it was empty. The caller should
			// handle the empty string as an error.
			return ""
		}
		return strings.TrimSpace(jsonBuffer.String())
	}

	// Fallback: clean the response text - sometimes models add extra
	// whitespace or markdown formatting around the object.
	responseText = strings.TrimSpace(responseText)

	if strings.HasPrefix(responseText, "```json") && strings.HasSuffix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)
	} else {
		// These do nothing if the values aren't there, so always do it.
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)
	}

	return responseText
}

// ScanObject returns the outermost {...} object embedded anywhere in the text,
// or "" if none is found. Judges that reason before answering often wrap their
// JSON verdict in prose; this recovers the object without requiring fences.
// Brace matching ignores braces inside JSON string values.
func ScanObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// String contents never affect depth.
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// Extract extracts JSON content from a text response and unmarshals it into
// the provided type. Fenced blocks are tried first, then a raw parse, then a
// brace-scan over the full text for models that surround their answer with
// chain-of-thought prose.
func Extract[T any](responseText string) (T, error) {
	var result T

	jsonContent := ExtractJSON(responseText)
	err := json.Unmarshal([]byte(jsonContent), &result)
	if err == nil {
		return result, nil
	}

	if scanned := ScanObject(responseText); scanned != "" && scanned != jsonContent {
		var rescued T
		if scanErr := json.Unmarshal([]byte(scanned), &rescued); scanErr == nil {
			return rescued, nil
		}
	}

	return result, err
}
