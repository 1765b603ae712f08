package iiif

import (
	"fmt"
	"strings"
)

// ResourceID is the composite identifier routing every presentation and auth
// request: owner and collection, plus an item segment for per-item resources.
// It only ever exists as a string inside generated URLs; parse it per request.
type ResourceID struct {
	Owner      string
	Collection string
	Item       string
}

// MalformedIDError reports an identifier that does not split into exactly
// two or three segments.
type MalformedIDError struct {
	Raw string
}

func (e MalformedIDError) Error() string {
	if e.Raw == "" {
		return "malformed resource identifier"
	}
	return fmt.Sprintf("malformed resource identifier: %q", e.Raw)
}

// Is enables errors.Is matching on MalformedIDError.
func (e MalformedIDError) Is(target error) bool {
	_, ok := target.(MalformedIDError)
	if ok {
		return true
	}
	_, ok = target.(*MalformedIDError)
	return ok
}

// ErrMalformedID is the sentinel error for unparseable identifiers.
var ErrMalformedID = MalformedIDError{}

// String encodes the identifier with the current separator. The legacy "-"
// separator is never emitted because UUID segments may contain it.
func (r ResourceID) String() string {
	if r.Item == "" {
		return r.Owner + "_" + r.Collection
	}
	return r.Owner + "_" + r.Collection + "_" + r.Item
}

// HasItem reports whether the identifier addresses a single item.
func (r ResourceID) HasItem() bool {
	return r.Item != ""
}

// CollectionID strips the item segment.
func (r ResourceID) CollectionID() ResourceID {
	return ResourceID{Owner: r.Owner, Collection: r.Collection}
}

// ParseResourceID decodes a composite identifier. Splitting prefers "_" and
// falls back to the legacy "-" separator only when no "_" is present. The
// identifier must yield exactly 2 or 3 segments; existence of the referenced
// resource is not checked here.
func ParseResourceID(raw string) (ResourceID, error) {
	sep := "_"
	if !strings.Contains(raw, "_") {
		sep = "-"
	}
	segments := strings.Split(raw, sep)
	for _, s := range segments {
		if s == "" {
			return ResourceID{}, MalformedIDError{Raw: raw}
		}
	}
	switch len(segments) {
	case 2:
		return ResourceID{Owner: segments[0], Collection: segments[1]}, nil
	case 3:
		return ResourceID{Owner: segments[0], Collection: segments[1], Item: segments[2]}, nil
	default:
		return ResourceID{}, MalformedIDError{Raw: raw}
	}
}

// ItemIDFromManifestURL recovers an item id from a stored manifest URL of the
// form .../items/{itemId}/manifest.json. This is an explicit fallback for
// item records created before ids were stored alongside them; when a record
// already carries its id this function must not be consulted.
func ItemIDFromManifestURL(rawURL string) string {
	segments := strings.Split(rawURL, "/")
	for i := 0; i < len(segments)-1; i++ {
		if segments[i] == "items" && segments[i+1] != "" {
			return segments[i+1]
		}
	}
	// Last non-empty path segment, with a .json suffix stripped.
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return strings.TrimSuffix(segments[i], ".json")
		}
	}
	return ""
}
