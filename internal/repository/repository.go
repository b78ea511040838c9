package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/freelance-tracker-api/internal/models"
	"github.com/yukikurage/freelance-tracker-api/internal/store"
)

// ErrNotFound is returned when no record matches.
var ErrNotFound = errors.New("record not found")

// CollectionRepository implements list/get/create/update/delete over one
// named collection of the document store.
type CollectionRepository struct {
	store *store.Store
	name  string
}

// NewCollectionRepository creates a repository over the named collection.
func NewCollectionRepository(s *store.Store, name string) *CollectionRepository {
	return &CollectionRepository{store: s, name: name}
}

// Name returns the collection name.
func (r *CollectionRepository) Name() string {
	return r.name
}

// List returns every record of the collection in insertion order, or an empty
// slice when the collection is absent.
func (r *CollectionRepository) List(_ context.Context) []models.Record {
	var out []models.Record
	r.store.View(func(doc models.Document) {
		out = make([]models.Record, len(doc[r.name]))
		copy(out, doc[r.name])
	})
	return out
}

// FindByID returns the first record whose id equals id.
func (r *CollectionRepository) FindByID(ctx context.Context, id int64) (models.Record, error) {
	return r.FindOne(ctx, matchID(id))
}

// FindOne returns the first record satisfying match.
func (r *CollectionRepository) FindOne(_ context.Context, match func(models.Record) bool) (models.Record, error) {
	var found models.Record
	r.store.View(func(doc models.Document) {
		for _, rec := range doc[r.name] {
			if match(rec) {
				found = rec
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Create appends rec to the collection and persists the document.
func (r *CollectionRepository) Create(ctx context.Context, rec models.Record) (models.Record, error) {
	err := r.store.Update(ctx, func(doc models.Document) error {
		doc[r.name] = append(doc[r.name], rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Update shallow-merges patch over the record with the given id.
func (r *CollectionRepository) Update(ctx context.Context, id int64, patch models.Record) (models.Record, error) {
	return r.UpdateWhere(ctx, matchID(id), patch)
}

// UpdateWhere shallow-merges patch over the first record satisfying match.
func (r *CollectionRepository) UpdateWhere(ctx context.Context, match func(models.Record) bool, patch models.Record) (models.Record, error) {
	var updated models.Record
	err := r.store.Update(ctx, func(doc models.Document) error {
		records := doc[r.name]
		for i, rec := range records {
			if match(rec) {
				updated = rec.Merge(patch)
				records[i] = updated
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the record with the given id from the collection.
func (r *CollectionRepository) Delete(ctx context.Context, id int64) error {
	return r.store.Update(ctx, func(doc models.Document) error {
		records := doc[r.name]
		for i, rec := range records {
			if recID, ok := rec.ID(); ok && recID == id {
				remaining := make([]models.Record, 0, len(records)-1)
				remaining = append(remaining, records[:i]...)
				doc[r.name] = append(remaining, records[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

func matchID(id int64) func(models.Record) bool {
	return func(rec models.Record) bool {
		recID, ok := rec.ID()
		return ok && recID == id
	}
}
