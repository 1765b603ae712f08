package repository

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	iiif "github.com/nakamura196/iiif-manifest-tool-sub001"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/domain"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/infra/database/models"
)

// CollectionRepository reads collection and item documents from postgres,
// with an optional read-through document cache in front. Documents are
// stored as canonical v3 JSON.
type CollectionRepository struct {
	db    *gorm.DB
	cache DocumentCache
}

// NewCollectionRepository constructs the repository. cache may be nil, in
// which case every read goes to the database.
func NewCollectionRepository(db *gorm.DB, cache DocumentCache) *CollectionRepository {
	return &CollectionRepository{db: db, cache: cache}
}

// cachedCollection is the cache representation of a collection row. The
// access columns ride along so a cache hit can still gate reads.
type cachedCollection struct {
	Owner    string          `json:"owner"`
	IsPublic bool            `json:"isPublic"`
	Document json.RawMessage `json:"document"`
}

func collectionCacheKey(owner, collection string) string {
	return "iiif:collection:" + owner + "_" + collection
}

func (r *CollectionRepository) GetCollection(ctx context.Context, owner, collection string) (*domain.CollectionRecord, error) {

	key := collectionCacheKey(owner, collection)
	if r.cache != nil {
		if raw, ok := r.cache.Get(ctx, key); ok {
			var cached cachedCollection
			if err := json.Unmarshal(raw, &cached); err == nil {
				return buildCollectionRecord(cached)
			}
			r.cache.Invalidate(ctx, key)
		}
	}

	var row models.Collection
	err := r.db.WithContext(ctx).
		Where("owner = ? AND collection_id = ?", owner, collection).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "collection"}
		}
		return nil, err
	}

	cached := cachedCollection{
		Owner:    row.Owner,
		IsPublic: row.IsPublic,
		Document: json.RawMessage(row.Document),
	}
	if r.cache != nil {
		if raw, err := json.Marshal(cached); err == nil {
			r.cache.Set(ctx, key, raw)
		}
	}

	return buildCollectionRecord(cached)
}

func buildCollectionRecord(cached cachedCollection) (*domain.CollectionRecord, error) {
	record := domain.CollectionRecord{
		Access: domain.ResourceAccess{
			Owner:    cached.Owner,
			IsPublic: cached.IsPublic,
		},
	}
	if len(cached.Document) > 0 {
		if err := json.Unmarshal(cached.Document, &record.Document); err != nil {
			return nil, errors.Wrap(err, "stored collection document is not valid JSON")
		}
	}
	return &record, nil
}

func (r *CollectionRepository) GetItem(ctx context.Context, owner, collection, item string) (*domain.ItemRecord, error) {

	var row models.Item
	err := r.db.WithContext(ctx).
		Where("owner = ? AND collection_id = ? AND item_id = ?", owner, collection, item).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "item"}
		}
		return nil, err
	}

	record := domain.ItemRecord{ID: row.ItemID}
	if row.Document != "" {
		if err := json.Unmarshal([]byte(row.Document), &record.Document); err != nil {
			return nil, errors.Wrap(err, "stored item document is not valid JSON")
		}
	}
	return &record, nil
}

func (r *CollectionRepository) ListItems(ctx context.Context, owner, collection string) ([]domain.ItemSummary, error) {

	var rows []models.Item
	err := r.db.WithContext(ctx).
		Where("owner = ? AND collection_id = ?", owner, collection).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.ItemSummary, 0, len(rows))
	for _, row := range rows {
		summary := domain.ItemSummary{
			ID:          row.ItemID,
			ManifestURL: row.ManifestURL,
			Thumbnail:   row.Thumbnail,
		}
		if row.Label != "" {
			// The label column holds arbitrary upstream JSON; normalization
			// happens inside LanguageMap decoding.
			var label iiif.LanguageMap
			if err := json.Unmarshal([]byte(row.Label), &label); err == nil {
				summary.Label = label
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
