// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ExtractStringArray locates the first JSON array inside raw model output
// and decodes it as a list of strings. Models wrap arrays in prose or code
// fences often enough that a plain json.Unmarshal on the whole response is
// useless; the scanner below tracks string and escape state so brackets
// inside quoted values do not terminate the array early.
func ExtractStringArray(raw string) ([]string, error) {
	candidate := firstJSONArray(raw)
	if candidate == "" {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var items []string
	if err := json.Unmarshal([]byte(candidate), &items); err == nil {
		return items, nil
	}

	// Tolerate arrays of objects by keeping one string-valued field each.
	var objects []map[string]any
	if err := json.Unmarshal([]byte(candidate), &objects); err != nil {
		return nil, fmt.Errorf("parsing JSON array: %w", err)
	}
	for _, obj := range objects {
		if s := stringField(obj); s != "" {
			items = append(items, s)
		}
	}
	return items, nil
}

// preferredFields are the object keys models tend to wrap list entries in,
// tried in order before falling back to the lexically first string field.
// Fixed ordering keeps the output stable across map iterations.
var preferredFields = []string{"achievement", "recognition", "item", "text", "title", "name", "value"}

func stringField(obj map[string]any) string {
	for _, key := range preferredFields {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// firstJSONArray returns the first balanced [...] span in input, or "".
func firstJSONArray(input string) string {
	start := strings.IndexByte(input, '[')
	if start == -1 {
		return ""
	}

	inString := false
	escape := false
	depth := 0

	for i := start; i < len(input); i++ {
		ch := input[i]

		if inString {
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
			if depth < 0 {
				return ""
			}
		}
	}

	return ""
}
