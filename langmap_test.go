package iiif

import (
	"encoding/json"
	"testing"
)

func TestSelectTextPriority(t *testing.T) {
	lm := LanguageMap{
		"en":   {"Title"},
		"ja":   {"タイトル", "副題"},
		"none": {"plain"},
	}

	if got := SelectText(lm, ""); got != "タイトル" {
		t.Fatalf("expected ja first, got %s", got)
	}
	if got := SelectText(lm, "en"); got != "Title" {
		t.Fatalf("expected preferred en, got %s", got)
	}
	if got := SelectText(lm, "fr"); got != "タイトル" {
		t.Fatalf("expected ja fallback for missing preferred, got %s", got)
	}

	delete(lm, "ja")
	if got := SelectText(lm, ""); got != "Title" {
		t.Fatalf("expected en fallback, got %s", got)
	}
	delete(lm, "en")
	if got := SelectText(lm, ""); got != "plain" {
		t.Fatalf("expected none fallback, got %s", got)
	}
}

func TestSelectTextFirstKeyFallback(t *testing.T) {
	lm := LanguageMap{"fr": {"titre"}, "de": {"Titel"}}
	if got := SelectText(lm, ""); got != "Titel" {
		t.Fatalf("expected lexicographically first key, got %s", got)
	}
	if got := SelectText(nil, "ja"); got != "" {
		t.Fatalf("expected empty string for nil map, got %s", got)
	}
}

func TestNormalizeLanguageMapString(t *testing.T) {
	lm := NormalizeLanguageMap("hello")
	if len(lm) != 1 || lm["none"][0] != "hello" {
		t.Fatalf("unexpected map: %+v", lm)
	}
	if NormalizeLanguageMap("") != nil {
		t.Fatalf("expected nil for empty string")
	}
	if NormalizeLanguageMap(nil) != nil {
		t.Fatalf("expected nil for nil input")
	}
	if NormalizeLanguageMap(map[string]any{}) != nil {
		t.Fatalf("expected nil for empty object")
	}
}

func TestNormalizeLanguageMapCanonical(t *testing.T) {
	lm := NormalizeLanguageMap(map[string]any{
		"ja": []any{"こんにちは"},
		"en": []any{"hello", "hi"},
	})
	if lm["ja"][0] != "こんにちは" {
		t.Fatalf("unexpected ja value: %+v", lm)
	}
	if len(lm["en"]) != 2 || lm["en"][0] != "hello" {
		t.Fatalf("unexpected en values: %+v", lm)
	}
}

func TestNormalizeLanguageMapRepairsNestedObjects(t *testing.T) {
	lm := NormalizeLanguageMap(map[string]any{
		"ja": []any{map[string]any{"ja": "タイトル"}},
		"en": []any{
			map[string]any{"en": "Title"},
			map[string]any{"fr": "titre"}, // nothing extractable
		},
	})
	if lm["ja"][0] != "タイトル" {
		t.Fatalf("expected nested ja extraction, got %+v", lm)
	}
	if len(lm["en"]) != 1 || lm["en"][0] != "Title" {
		t.Fatalf("expected single repaired en value, got %+v", lm)
	}
}

func TestLanguageMapUnmarshalRepairs(t *testing.T) {
	var doc V3Document
	raw := `{"id":"x","type":"Manifest","label":{"ja":[{"ja":"タイトル"}]}}`
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if doc.Label["ja"][0] != "タイトル" {
		t.Fatalf("expected repaired label, got %+v", doc.Label)
	}
}

func TestLegacyText(t *testing.T) {
	if lm := LegacyText("plain"); lm["none"][0] != "plain" {
		t.Fatalf("unexpected string handling: %+v", lm)
	}

	lm := LegacyText([]any{
		map[string]any{"@language": "ja", "@value": "タイトル"},
		map[string]any{"@language": "en", "@value": "Title"},
	})
	if lm["ja"][0] != "タイトル" || lm["en"][0] != "Title" {
		t.Fatalf("unexpected @language handling: %+v", lm)
	}

	if lm := LegacyText(map[string]any{"@value": "anon"}); lm["none"][0] != "anon" {
		t.Fatalf("expected none tag for missing @language: %+v", lm)
	}
	if LegacyText(nil) != nil {
		t.Fatalf("expected nil for nil input")
	}
}
