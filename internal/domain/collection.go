package domain

import (
	iiif "github.com/nakamura196/iiif-manifest-tool-sub001"
)

// CollectionRecord is a stored collection document with its access
// side-channel. Access never appears in rendered output.
type CollectionRecord struct {
	Access   ResourceAccess
	Document iiif.V3Document
}

// ItemRecord is a stored item (manifest) document.
type ItemRecord struct {
	ID       string
	Document iiif.V3Document
}

// ItemSummary is the listing row for a collection's items. ManifestURL is
// the underlying storage location; ID may be empty on records written before
// ids were recorded, in which case the id is recovered from ManifestURL.
type ItemSummary struct {
	ID          string
	ManifestURL string
	Label       iiif.LanguageMap
	Thumbnail   string
}
