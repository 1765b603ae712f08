package usecase

import (
	"context"

	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/domain"
)

// CollectionRepository defines the storage collaborator contracts for
// collection and item documents. Implementations return
// domain.NotFoundError for absent resources.
type CollectionRepository interface {
	GetCollection(ctx context.Context, owner, collection string) (*domain.CollectionRecord, error)
	GetItem(ctx context.Context, owner, collection, item string) (*domain.ItemRecord, error)
	ListItems(ctx context.Context, owner, collection string) ([]domain.ItemSummary, error)
}
