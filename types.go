package iiif

const (
	ContextV2 string = "http://iiif.io/api/presentation/2/context.json"
	ContextV3 string = "http://iiif.io/api/presentation/3/context.json"

	AuthContextV1 string = "http://iiif.io/api/auth/1/context.json"
	AuthContextV2 string = "http://iiif.io/api/auth/2/context.json"
)

const (
	TypeCollection string = "Collection"
	TypeManifest   string = "Manifest"

	LegacyTypeCollection string = "sc:Collection"
	LegacyTypeManifest   string = "sc:Manifest"
)

// Version identifies which Presentation API a document is shaped for.
type Version int

const (
	VersionUnknown Version = iota
	Version2
	Version3
)

func (v Version) String() string {
	switch v {
	case Version2:
		return "2"
	case Version3:
		return "3"
	default:
		return "unknown"
	}
}

// MetadataEntry is a v3 label/value pair.
type MetadataEntry struct {
	Label LanguageMap `json:"label"`
	Value LanguageMap `json:"value"`
}

// ImageResource is a thumbnail or body image reference.
type ImageResource struct {
	ID     string `json:"id,omitempty"`
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`
}

// V3Document is the canonical in-memory shape for collections and manifests.
// Only the fields this server reads or rewrites are modeled; anything else a
// stored document carries is dropped on normalization.
type V3Document struct {
	Context           any             `json:"@context,omitempty"`
	ID                string          `json:"id"`
	Type              string          `json:"type"`
	Label             LanguageMap     `json:"label,omitempty"`
	Summary           LanguageMap     `json:"summary,omitempty"`
	Metadata          []MetadataEntry `json:"metadata,omitempty"`
	RequiredStatement *MetadataEntry  `json:"requiredStatement,omitempty"`
	Rights            string          `json:"rights,omitempty"`
	Thumbnail         []ImageResource `json:"thumbnail,omitempty"`
	Items             []V3Item        `json:"items,omitempty"`
}

// V3Item is a child reference inside a v3 collection.
type V3Item struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Label     LanguageMap     `json:"label,omitempty"`
	Thumbnail []ImageResource `json:"thumbnail,omitempty"`
}

// V2Document is the legacy Presentation 2 projection. Label keeps the v3
// mapping form where present; v2 consumers in this system tolerate it.
// Description and attribution are typed any because v2 allows a bare string,
// an @language/@value object, or an array of either; projections only ever
// write the string form.
type V2Document struct {
	Context     string            `json:"@context"`
	ID          string            `json:"@id"`
	Type        string            `json:"@type"`
	Label       any               `json:"label,omitempty"`
	Description any               `json:"description,omitempty"`
	Metadata    []V2MetadataEntry `json:"metadata,omitempty"`
	Attribution any               `json:"attribution,omitempty"`
	License     string            `json:"license,omitempty"`
	Manifests   []V2Item          `json:"manifests,omitempty"`
	Collections []V2Item          `json:"collections,omitempty"`
}

// V2MetadataEntry is a legacy metadata pair; values may be strings or
// @language/@value structures.
type V2MetadataEntry struct {
	Label any `json:"label"`
	Value any `json:"value"`
}

// V2Item is a child reference inside a legacy collection.
type V2Item struct {
	ID    string `json:"@id"`
	Type  string `json:"@type"`
	Label any    `json:"label,omitempty"`
}
