package iiif

import (
	"errors"
	"testing"
)

func TestParseResourceIDRoundTrip(t *testing.T) {
	id := ResourceID{Owner: "u1", Collection: "c1"}
	parsed, err := ParseResourceID(id.String())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed != id {
		t.Fatalf("expected %+v got %+v", id, parsed)
	}

	id3 := ResourceID{Owner: "u1", Collection: "c1", Item: "i1"}
	parsed, err = ParseResourceID(id3.String())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed != id3 {
		t.Fatalf("expected %+v got %+v", id3, parsed)
	}
	if !parsed.HasItem() {
		t.Fatalf("expected item segment")
	}
}

func TestParseResourceIDLegacySeparator(t *testing.T) {
	parsed, err := ParseResourceID("u1-c1-i1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.Owner != "u1" || parsed.Collection != "c1" || parsed.Item != "i1" {
		t.Fatalf("unexpected parse: %+v", parsed)
	}

	// "_" wins when both separators appear, so a legacy "-" inside a
	// segment survives.
	parsed, err = ParseResourceID("u1_c-1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.Collection != "c-1" {
		t.Fatalf("expected collection c-1 got %s", parsed.Collection)
	}
}

func TestParseResourceIDMalformed(t *testing.T) {
	for _, raw := range []string{"", "single", "u1_c1_i1_extra", "u1__c1", "a-b-c-d-e"} {
		_, err := ParseResourceID(raw)
		if err == nil {
			t.Fatalf("expected error for %q", raw)
		}
		if !errors.Is(err, ErrMalformedID) {
			t.Fatalf("expected MalformedIDError for %q got %v", raw, err)
		}
	}
}

func TestItemIDFromManifestURL(t *testing.T) {
	cases := map[string]string{
		"https://storage.example.org/u1/c1/items/i1/manifest.json": "i1",
		"https://storage.example.org/u1/c1/i9.json":                "i9",
		"https://storage.example.org/u1/c1/i9":                     "i9",
	}
	for url, want := range cases {
		if got := ItemIDFromManifestURL(url); got != want {
			t.Fatalf("url %s: expected %s got %s", url, want, got)
		}
	}
}
