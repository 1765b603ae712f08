package usecase

import (
	"context"
	"errors"
	"fmt"

	iiif "github.com/nakamura196/iiif-manifest-tool-sub001"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/domain"
)

// PresentationUsecase assembles collection and manifest documents for a
// requested Presentation API version, gating reads on the stored access
// record.
type PresentationUsecase struct {
	repo   CollectionRepository
	config domain.Config
}

func NewPresentationUsecase(repo CollectionRepository, config domain.Config) *PresentationUsecase {
	return &PresentationUsecase{
		repo:   repo,
		config: config,
	}
}

// GetCollection returns the rendered collection document for a 2-segment id.
// The access record is consulted and never rendered.
func (uc *PresentationUsecase) GetCollection(ctx context.Context, id iiif.ResourceID, version iiif.Version, subject, lang string) (any, error) {
	if id.HasItem() {
		return nil, iiif.MalformedIDError{Raw: id.String()}
	}

	rec, err := uc.repo.GetCollection(ctx, id.Owner, id.Collection)
	if err != nil {
		return nil, wrapStorageErr("GetCollection", err)
	}
	if err := checkRead(rec.Access, subject); err != nil {
		return nil, err
	}

	summaries, err := uc.repo.ListItems(ctx, id.Owner, id.Collection)
	if err != nil {
		return nil, wrapStorageErr("ListItems", err)
	}

	doc := rec.Document
	doc.Context = iiif.ContextV3
	doc.ID = uc.collectionURL(id)
	doc.Type = iiif.TypeCollection
	doc.Items = nil
	for _, s := range summaries {
		itemID := s.ID
		if itemID == "" {
			itemID = iiif.ItemIDFromManifestURL(s.ManifestURL)
		}
		if itemID == "" {
			continue
		}
		child := iiif.V3Item{
			ID:    uc.manifestURL(iiif.ResourceID{Owner: id.Owner, Collection: id.Collection, Item: itemID}),
			Type:  iiif.TypeManifest,
			Label: s.Label,
		}
		if s.Thumbnail != "" {
			child.Thumbnail = []iiif.ImageResource{{ID: s.Thumbnail, Type: "Image"}}
		}
		doc.Items = append(doc.Items, child)
	}

	return uc.render(&doc, version, lang)
}

// GetManifest returns the rendered manifest document for a 3-segment id.
// Items inherit their collection's access record.
func (uc *PresentationUsecase) GetManifest(ctx context.Context, id iiif.ResourceID, version iiif.Version, subject, lang string) (any, error) {
	if !id.HasItem() {
		return nil, iiif.MalformedIDError{Raw: id.String()}
	}

	rec, err := uc.repo.GetCollection(ctx, id.Owner, id.Collection)
	if err != nil {
		return nil, wrapStorageErr("GetCollection", err)
	}
	if err := checkRead(rec.Access, subject); err != nil {
		return nil, err
	}

	item, err := uc.repo.GetItem(ctx, id.Owner, id.Collection, id.Item)
	if err != nil {
		return nil, wrapStorageErr("GetItem", err)
	}

	doc := item.Document
	doc.Context = iiif.ContextV3
	doc.ID = uc.manifestURL(id)
	doc.Type = iiif.TypeManifest

	return uc.render(&doc, version, lang)
}

func (uc *PresentationUsecase) render(doc *iiif.V3Document, version iiif.Version, lang string) (any, error) {
	switch version {
	case iiif.Version3:
		return doc, nil
	case iiif.Version2:
		return iiif.ToLegacy(doc, lang), nil
	default:
		return nil, iiif.UnsupportedVersionError{Detail: version.String()}
	}
}

func (uc *PresentationUsecase) collectionURL(id iiif.ResourceID) string {
	return fmt.Sprintf("%s/iiif/3/collection/%s", uc.config.BaseURL, id.String())
}

func (uc *PresentationUsecase) manifestURL(id iiif.ResourceID) string {
	return fmt.Sprintf("%s/iiif/3/%s/manifest", uc.config.BaseURL, id.String())
}

func checkRead(access domain.ResourceAccess, subject string) error {
	if access.CanRead(subject) {
		return nil
	}
	if subject == "" {
		return domain.UnauthorizedError{Reason: "private resource"}
	}
	return domain.ForbiddenError{Subject: subject}
}

func wrapStorageErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return domain.UpstreamError{Op: op, Err: err}
}
