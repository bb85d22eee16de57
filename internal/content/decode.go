package content

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// decode maps a model's JSON object onto out. Keys match regardless of case
// and underscores ("top_skills" fills topSkills) and scalars are coerced
// ("85" fills an int).
func decode(input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
		MatchName: func(mapKey, fieldName string) bool {
			return normalizeKey(mapKey) == normalizeKey(fieldName)
		},
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	return dec.Decode(input)
}

func normalizeKey(s string) string {
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return strings.ToLower(s)
}

// lookup finds a key the same way decode matches it.
func lookup(input map[string]any, key string) (any, bool) {
	want := normalizeKey(key)
	for k, v := range input {
		if normalizeKey(k) == want {
			return v, true
		}
	}
	return nil, false
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
