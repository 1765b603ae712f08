package iiif

import (
	"encoding/json"
	"sort"
)

// LanguageMap maps a language tag ("ja", "en", "none", or any BCP-47-like
// tag) to an ordered list of values. The first value under a tag is the
// current one. Every key holds at least one value; an absent/empty field is
// represented as a nil map, never an empty one.
type LanguageMap map[string][]string

// UnmarshalJSON accepts the canonical mapping form as well as the legacy
// shapes NormalizeLanguageMap repairs, so stored documents with dirty label
// data still decode.
func (lm *LanguageMap) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*lm = NormalizeLanguageMap(raw)
	return nil
}

// SelectText picks a single display string from a language map. Priority is
// preferred (when given), then ja, en, none, then the lexicographically first
// remaining key. Returns "" when the map holds nothing.
func SelectText(lm LanguageMap, preferred string) string {
	if len(lm) == 0 {
		return ""
	}

	candidates := []string{"ja", "en", "none"}
	if preferred != "" {
		candidates = append([]string{preferred}, candidates...)
	}
	for _, tag := range candidates {
		if vals, ok := lm[tag]; ok && len(vals) > 0 {
			return vals[0]
		}
	}

	keys := make([]string, 0, len(lm))
	for k := range lm {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if len(lm[k]) > 0 {
			return lm[k][0]
		}
	}
	return ""
}

// NormalizeLanguageMap coerces arbitrary JSON into a LanguageMap.
// Accepted shapes:
//   - a plain string, wrapped under "none"
//   - the canonical tag -> []string mapping
//   - a mapping whose values are arrays of objects instead of strings;
//     each object contributes the string found under its own tag key,
//     "ja", or "en", and elements with nothing extractable are dropped
//
// Returns nil for empty or unusable input.
func NormalizeLanguageMap(input any) LanguageMap {
	switch v := input.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return LanguageMap{"none": {v}}
	case LanguageMap:
		return compactLanguageMap(v)
	case map[string][]string:
		return compactLanguageMap(v)
	case map[string]any:
		out := LanguageMap{}
		for tag, val := range v {
			vals := normalizeTagValues(tag, val)
			if len(vals) > 0 {
				out[tag] = vals
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}

func compactLanguageMap(in map[string][]string) LanguageMap {
	out := LanguageMap{}
	for tag, vals := range in {
		if len(vals) > 0 {
			out[tag] = vals
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeTagValues(tag string, val any) []string {
	switch vv := val.(type) {
	case string:
		if vv == "" {
			return nil
		}
		return []string{vv}
	case []any:
		var vals []string
		for _, elem := range vv {
			switch e := elem.(type) {
			case string:
				if e != "" {
					vals = append(vals, e)
				}
			case map[string]any:
				if s := extractNestedValue(e, tag); s != "" {
					vals = append(vals, s)
				}
			}
		}
		return vals
	case []string:
		var vals []string
		for _, s := range vv {
			if s != "" {
				vals = append(vals, s)
			}
		}
		return vals
	default:
		return nil
	}
}

// extractNestedValue salvages a display string from a value element that is
// an object rather than a string. The element's own tag key wins, then ja,
// then en.
func extractNestedValue(obj map[string]any, tag string) string {
	for _, k := range []string{tag, "ja", "en"} {
		if s, ok := obj[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// LegacyText converts a Presentation 2 text field into a LanguageMap.
// v2 allows a bare string, an {@language, @value} object, an array mixing
// both, or an already-canonical mapping.
func LegacyText(input any) LanguageMap {
	switch v := input.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return LanguageMap{"none": {v}}
	case map[string]any:
		if val, ok := v["@value"].(string); ok {
			if val == "" {
				return nil
			}
			tag, _ := v["@language"].(string)
			if tag == "" {
				tag = "none"
			}
			return LanguageMap{tag: {val}}
		}
		return NormalizeLanguageMap(v)
	case []any:
		out := LanguageMap{}
		for _, elem := range v {
			for tag, vals := range LegacyText(elem) {
				out[tag] = append(out[tag], vals...)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}
