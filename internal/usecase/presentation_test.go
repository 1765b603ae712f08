package usecase

import (
	"context"
	"errors"
	"testing"

	iiif "github.com/nakamura196/iiif-manifest-tool-sub001"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/domain"
)

type mockCollectionRepo struct {
	collection *domain.CollectionRecord
	item       *domain.ItemRecord
	items      []domain.ItemSummary

	collectionCalls int
	listCalls       int
}

func (m *mockCollectionRepo) GetCollection(ctx context.Context, owner, collection string) (*domain.CollectionRecord, error) {
	m.collectionCalls++
	if m.collection == nil {
		return nil, domain.NotFoundError{Resource: "collection"}
	}
	return m.collection, nil
}

func (m *mockCollectionRepo) GetItem(ctx context.Context, owner, collection, item string) (*domain.ItemRecord, error) {
	if m.item == nil || m.item.ID != item {
		return nil, domain.NotFoundError{Resource: "item"}
	}
	return m.item, nil
}

func (m *mockCollectionRepo) ListItems(ctx context.Context, owner, collection string) ([]domain.ItemSummary, error) {
	m.listCalls++
	return m.items, nil
}

var testConfig = domain.Config{BaseURL: "https://example.org"}

func publicCollection() *domain.CollectionRecord {
	return &domain.CollectionRecord{
		Access: domain.ResourceAccess{Owner: "u1", IsPublic: true},
		Document: iiif.V3Document{
			Label:   iiif.LanguageMap{"ja": {"コレクション"}},
			Summary: iiif.LanguageMap{"en": {"a collection"}},
		},
	}
}

func TestGetCollectionAssemblesItems(t *testing.T) {
	repo := &mockCollectionRepo{
		collection: publicCollection(),
		items: []domain.ItemSummary{
			{ID: "i1", Label: iiif.LanguageMap{"none": {"one"}}},
			{ManifestURL: "https://storage.example.org/u1/c1/items/i2/manifest.json"},
		},
	}
	uc := NewPresentationUsecase(repo, testConfig)

	id := iiif.ResourceID{Owner: "u1", Collection: "c1"}
	out, err := uc.GetCollection(context.Background(), id, iiif.Version3, "", "")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	doc, ok := out.(*iiif.V3Document)
	if !ok {
		t.Fatalf("expected v3 document, got %T", out)
	}
	if doc.ID != "https://example.org/iiif/3/collection/u1_c1" {
		t.Fatalf("unexpected id: %s", doc.ID)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("expected 2 items got %d", len(doc.Items))
	}
	if doc.Items[0].ID != "https://example.org/iiif/3/u1_c1_i1/manifest" {
		t.Fatalf("unexpected item id: %s", doc.Items[0].ID)
	}
	// Second item has no stored id; it is recovered from the storage URL.
	if doc.Items[1].ID != "https://example.org/iiif/3/u1_c1_i2/manifest" {
		t.Fatalf("unexpected fallback item id: %s", doc.Items[1].ID)
	}
}

func TestGetCollectionLegacyVersion(t *testing.T) {
	repo := &mockCollectionRepo{
		collection: publicCollection(),
		items:      []domain.ItemSummary{{ID: "i1"}},
	}
	uc := NewPresentationUsecase(repo, testConfig)

	id := iiif.ResourceID{Owner: "u1", Collection: "c1"}
	out, err := uc.GetCollection(context.Background(), id, iiif.Version2, "", "")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	legacy, ok := out.(*iiif.V2Document)
	if !ok {
		t.Fatalf("expected v2 document, got %T", out)
	}
	if legacy.ID != "https://example.org/iiif/2/collection/u1_c1" {
		t.Fatalf("unexpected legacy id: %s", legacy.ID)
	}
	if legacy.Type != iiif.LegacyTypeCollection {
		t.Fatalf("unexpected legacy type: %s", legacy.Type)
	}
	if legacy.Description != "a collection" {
		t.Fatalf("unexpected description: %s", legacy.Description)
	}
	if len(legacy.Manifests) != 1 || legacy.Manifests[0].ID != "https://example.org/iiif/2/u1_c1_i1/manifest" {
		t.Fatalf("unexpected manifests: %+v", legacy.Manifests)
	}
}

func TestGetCollectionAccessGate(t *testing.T) {
	repo := &mockCollectionRepo{collection: &domain.CollectionRecord{
		Access: domain.ResourceAccess{Owner: "u1", IsPublic: false},
	}}
	uc := NewPresentationUsecase(repo, testConfig)
	id := iiif.ResourceID{Owner: "u1", Collection: "c1"}

	_, err := uc.GetCollection(context.Background(), id, iiif.Version3, "", "")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected UnauthorizedError got %v", err)
	}
	if repo.listCalls != 0 {
		t.Fatalf("items must not be listed when the gate denies")
	}

	_, err = uc.GetCollection(context.Background(), id, iiif.Version3, "u2", "")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ForbiddenError got %v", err)
	}

	if _, err := uc.GetCollection(context.Background(), id, iiif.Version3, "u1", ""); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
}

func TestGetCollectionNotFound(t *testing.T) {
	uc := NewPresentationUsecase(&mockCollectionRepo{}, testConfig)
	id := iiif.ResourceID{Owner: "u1", Collection: "c1"}
	_, err := uc.GetCollection(context.Background(), id, iiif.Version3, "", "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFoundError got %v", err)
	}
}

func TestGetManifestInheritsAccess(t *testing.T) {
	repo := &mockCollectionRepo{
		collection: &domain.CollectionRecord{
			Access: domain.ResourceAccess{Owner: "u1", IsPublic: false},
		},
		item: &domain.ItemRecord{ID: "i1", Document: iiif.V3Document{Label: iiif.LanguageMap{"none": {"item"}}}},
	}
	uc := NewPresentationUsecase(repo, testConfig)
	id := iiif.ResourceID{Owner: "u1", Collection: "c1", Item: "i1"}

	if _, err := uc.GetManifest(context.Background(), id, iiif.Version3, "", ""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected UnauthorizedError got %v", err)
	}

	out, err := uc.GetManifest(context.Background(), id, iiif.Version3, "u1", "")
	if err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	doc := out.(*iiif.V3Document)
	if doc.ID != "https://example.org/iiif/3/u1_c1_i1/manifest" {
		t.Fatalf("unexpected manifest id: %s", doc.ID)
	}
	if doc.Type != iiif.TypeManifest {
		t.Fatalf("unexpected type: %s", doc.Type)
	}
}

func TestSegmentCountValidation(t *testing.T) {
	uc := NewPresentationUsecase(&mockCollectionRepo{collection: publicCollection()}, testConfig)

	_, err := uc.GetManifest(context.Background(), iiif.ResourceID{Owner: "u1", Collection: "c1"}, iiif.Version3, "", "")
	if !errors.Is(err, iiif.ErrMalformedID) {
		t.Fatalf("expected MalformedIDError got %v", err)
	}

	_, err = uc.GetCollection(context.Background(), iiif.ResourceID{Owner: "u1", Collection: "c1", Item: "i1"}, iiif.Version3, "", "")
	if !errors.Is(err, iiif.ErrMalformedID) {
		t.Fatalf("expected MalformedIDError got %v", err)
	}
}
