// Package extract pulls usable payloads out of noisy model output.
package extract

import (
	"encoding/json"
	"strings"
)

// ExtractJSON finds the widest {...} span in text and decodes it as a JSON object.
// A failed decode gets one repair pass that escapes stray backslashes.
// It reports false when no object could be decoded.
func ExtractJSON(text string) (map[string]any, bool) {
	candidate, ok := jsonSpan(StripCodeFence(text))
	if !ok {
		return nil, false
	}

	if obj, err := decodeObject(candidate); err == nil {
		return obj, true
	}

	obj, err := decodeObject(RepairEscapes(candidate))
	if err != nil {
		return nil, false
	}

	return obj, true
}

// ExtractPlainAnswer trims text and strips one layer of matching quotes.
func ExtractPlainAnswer(text string) string {
	answer := strings.TrimSpace(text)
	if len(answer) >= 2 {
		first, last := answer[0], answer[len(answer)-1]
		if first == last && (first == '"' || first == '\'') {
			answer = strings.TrimSpace(answer[1 : len(answer)-1])
		}
	}
	return answer
}

// StripCodeFence removes a surrounding markdown code fence such as ```json ... ```.
func StripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	raw = strings.TrimPrefix(raw, "```")
	if idx := strings.IndexByte(raw, '\n'); idx != -1 && !strings.ContainsAny(raw[:idx], "{[") {
		raw = raw[idx+1:]
	}
	if idx := strings.LastIndex(raw, "```"); idx != -1 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw)
}

// RepairEscapes doubles every backslash that does not start a valid JSON escape.
func RepairEscapes(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}

		if i+1 < len(s) && isEscapeChar(s[i+1]) {
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i++
			continue
		}

		b.WriteString(`\\`)
	}

	return b.String()
}

func isEscapeChar(c byte) bool {
	return strings.IndexByte(`\/bfnrtu"`, c) != -1
}

func jsonSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func decodeObject(s string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = map[string]any{}
	}
	return obj, nil
}
