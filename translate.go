package iiif

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UnsupportedVersionError reports a document whose Presentation API version
// could not be detected.
type UnsupportedVersionError struct {
	Detail string
}

func (e UnsupportedVersionError) Error() string {
	if e.Detail == "" {
		return "unsupported presentation version"
	}
	return fmt.Sprintf("unsupported presentation version: %s", e.Detail)
}

// Is enables errors.Is matching on UnsupportedVersionError.
func (e UnsupportedVersionError) Is(target error) bool {
	_, ok := target.(UnsupportedVersionError)
	if ok {
		return true
	}
	_, ok = target.(*UnsupportedVersionError)
	return ok
}

// ErrUnsupportedVersion is the sentinel error for undetectable documents.
var ErrUnsupportedVersion = UnsupportedVersionError{}

type versionProbe struct {
	Context any    `json:"@context"`
	Type    string `json:"type"`
	AtType  string `json:"@type"`
}

// DetectVersion sniffs the Presentation API version of a raw document.
// A presentation/3 context or a bare "type" field means v3; a presentation/2
// context or an "@type" field means v2; anything else is unknown.
func DetectVersion(raw []byte) Version {
	var probe versionProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return VersionUnknown
	}

	for _, ctx := range contextStrings(probe.Context) {
		if strings.Contains(ctx, "presentation/3") {
			return Version3
		}
		if strings.Contains(ctx, "presentation/2") {
			return Version2
		}
	}
	if probe.Type != "" && probe.AtType == "" {
		return Version3
	}
	if probe.AtType != "" {
		return Version2
	}
	return VersionUnknown
}

func contextStrings(ctx any) []string {
	switch v := ctx.(type) {
	case string:
		return []string{v}
	case []any:
		var out []string
		for _, elem := range v {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// ToCanonical normalizes a raw v2 or v3 document into the canonical shape.
// v3 input passes through a strict decode; v2 input is upgraded; anything
// else fails with UnsupportedVersionError.
func ToCanonical(raw []byte) (*V3Document, error) {
	switch DetectVersion(raw) {
	case Version3:
		var doc V3Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		doc.Context = ContextV3
		return &doc, nil
	case Version2:
		var legacy V2Document
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil, err
		}
		return upgradeLegacy(&legacy), nil
	default:
		return nil, UnsupportedVersionError{Detail: "no recognizable context or type field"}
	}
}

func upgradeLegacy(legacy *V2Document) *V3Document {
	doc := &V3Document{
		Context: ContextV3,
		ID:      RewriteVersionPath(legacy.ID, Version3),
		Type:    upgradeType(legacy.Type),
		Label:   LegacyText(legacy.Label),
		Summary: LegacyText(legacy.Description),
		Rights:  legacy.License,
	}

	for _, entry := range legacy.Metadata {
		label := LegacyText(entry.Label)
		value := LegacyText(entry.Value)
		if label == nil && value == nil {
			continue
		}
		doc.Metadata = append(doc.Metadata, MetadataEntry{Label: label, Value: value})
	}

	if attribution := LegacyText(legacy.Attribution); attribution != nil {
		doc.RequiredStatement = &MetadataEntry{
			Label: LanguageMap{"en": {"Attribution"}},
			Value: attribution,
		}
	}

	for _, child := range legacy.Manifests {
		doc.Items = append(doc.Items, upgradeLegacyItem(child))
	}
	for _, child := range legacy.Collections {
		doc.Items = append(doc.Items, upgradeLegacyItem(child))
	}
	return doc
}

func upgradeLegacyItem(child V2Item) V3Item {
	return V3Item{
		ID:    RewriteVersionPath(child.ID, Version3),
		Type:  upgradeType(child.Type),
		Label: LegacyText(child.Label),
	}
}

func upgradeType(t string) string {
	return strings.TrimPrefix(t, "sc:")
}

// ToLegacy projects a canonical document into Presentation 2 form. The
// projection is lossy: summary collapses to a single description string and
// requiredStatement/rights map onto attribution/license. Applying it twice
// to the same canonical input yields identical output.
func ToLegacy(doc *V3Document, preferredLang string) *V2Document {
	legacy := &V2Document{
		Context: ContextV2,
		ID:      RewriteVersionPath(doc.ID, Version2),
		Type:    legacyType(doc.Type),
		Label:   legacyLabel(doc.Label),
		License: doc.Rights,
	}
	if description := SelectText(doc.Summary, preferredLang); description != "" {
		legacy.Description = description
	}

	for _, entry := range doc.Metadata {
		legacy.Metadata = append(legacy.Metadata, V2MetadataEntry{
			Label: legacyLabel(entry.Label),
			Value: legacyLabel(entry.Value),
		})
	}

	if doc.RequiredStatement != nil {
		if attribution := SelectText(doc.RequiredStatement.Value, preferredLang); attribution != "" {
			legacy.Attribution = attribution
		}
	}

	for _, child := range doc.Items {
		item := V2Item{
			ID:    RewriteVersionPath(child.ID, Version2),
			Type:  legacyType(child.Type),
			Label: legacyLabel(child.Label),
		}
		switch child.Type {
		case TypeCollection:
			legacy.Collections = append(legacy.Collections, item)
		default:
			legacy.Manifests = append(legacy.Manifests, item)
		}
	}
	return legacy
}

func legacyType(t string) string {
	switch t {
	case TypeCollection:
		return LegacyTypeCollection
	case TypeManifest:
		return LegacyTypeManifest
	default:
		return t
	}
}

// legacyLabel passes the v3 mapping form through to v2 output, which the
// consumers of this system accept, but never emits an empty map.
func legacyLabel(lm LanguageMap) any {
	if len(lm) == 0 {
		return nil
	}
	return lm
}

// RewriteVersionPath swaps the API version path component inside an absolute
// resource URL. Ids already carrying the target version pass through
// unchanged, so repeated rewrites do not drift.
func RewriteVersionPath(id string, to Version) string {
	switch to {
	case Version2:
		return strings.ReplaceAll(id, "/iiif/3/", "/iiif/2/")
	case Version3:
		return strings.ReplaceAll(id, "/iiif/2/", "/iiif/3/")
	default:
		return id
	}
}
