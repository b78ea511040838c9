package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/yukikurage/freelance-tracker-api/internal/constants"
	"github.com/yukikurage/freelance-tracker-api/internal/models"
	"github.com/yukikurage/freelance-tracker-api/internal/repository"
	"github.com/yukikurage/freelance-tracker-api/internal/utils"
)

var ErrResourceNotFound = errors.New("resource not found")

// CreateHook adjusts a record being created after the payload has been copied
// in and before ownership is assigned.
type CreateHook func(id int64, owner models.Record, rec models.Record)

// ResourceService applies the uniform CRUD contract to one collection.
type ResourceService struct {
	repo     *repository.CollectionRepository
	ids      utils.IDGenerator
	onCreate CreateHook
}

// NewResourceService creates a ResourceService. onCreate may be nil.
func NewResourceService(repo *repository.CollectionRepository, ids utils.IDGenerator, onCreate CreateHook) *ResourceService {
	return &ResourceService{
		repo:     repo,
		ids:      ids,
		onCreate: onCreate,
	}
}

// NewClientService handles the clients collection.
func NewClientService(repo *repository.CollectionRepository, ids utils.IDGenerator) *ResourceService {
	return NewResourceService(repo, ids, nil)
}

// NewProjectService handles the projects collection. A missing, null, empty,
// false or zero status becomes the default project status.
func NewProjectService(repo *repository.CollectionRepository, ids utils.IDGenerator) *ResourceService {
	return NewResourceService(repo, ids, func(_ int64, _ models.Record, rec models.Record) {
		switch status := rec["status"].(type) {
		case nil:
			rec["status"] = constants.DefaultProjectStatus
		case string:
			if status == "" {
				rec["status"] = constants.DefaultProjectStatus
			}
		case bool:
			if !status {
				rec["status"] = constants.DefaultProjectStatus
			}
		case json.Number:
			if f, err := status.Float64(); err == nil && f == 0 {
				rec["status"] = constants.DefaultProjectStatus
			}
		case int:
			if status == 0 {
				rec["status"] = constants.DefaultProjectStatus
			}
		case int64:
			if status == 0 {
				rec["status"] = constants.DefaultProjectStatus
			}
		case float64:
			if status == 0 {
				rec["status"] = constants.DefaultProjectStatus
			}
		}
	})
}

// NewTimeEntryService handles the timeEntries collection. Durations are
// stored as supplied.
func NewTimeEntryService(repo *repository.CollectionRepository, ids utils.IDGenerator) *ResourceService {
	return NewResourceService(repo, ids, nil)
}

// NewInvoiceService handles the invoices collection. When the payload carries
// no number, one is built from the owner's invoice prefix and the invoice id.
func NewInvoiceService(repo *repository.CollectionRepository, ids utils.IDGenerator) *ResourceService {
	return NewResourceService(repo, ids, func(id int64, owner models.Record, rec models.Record) {
		if _, ok := rec["number"]; !ok {
			rec["number"] = models.InvoicePrefix(owner) + strconv.FormatInt(id, 10)
		}
	})
}

// List returns the full collection.
func (s *ResourceService) List(ctx context.Context) []models.Record {
	return s.repo.List(ctx)
}

// Get returns the record with the given id.
func (s *ResourceService) Get(ctx context.Context, id int64) (models.Record, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return rec, nil
}

// Create stores payload as a new record owned by owner. The id is always
// assigned here; an id in the payload is ignored.
func (s *ResourceService) Create(ctx context.Context, owner models.Record, payload models.Record) (models.Record, error) {
	id := s.ids.NextID()

	rec := payload.Without("id")
	rec["id"] = id
	if s.onCreate != nil {
		s.onCreate(id, owner, rec)
	}
	if ownerID, ok := owner.ID(); ok {
		rec["userId"] = ownerID
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s record: %w", s.repo.Name(), err)
	}
	return created, nil
}

// Update shallow-merges payload over the record with the given id.
func (s *ResourceService) Update(ctx context.Context, id int64, payload models.Record) (models.Record, error) {
	rec, err := s.repo.Update(ctx, id, payload.Without("id"))
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return rec, nil
}

// Delete removes the record with the given id.
func (s *ResourceService) Delete(ctx context.Context, id int64) error {
	return mapRepositoryError(s.repo.Delete(ctx, id))
}

func mapRepositoryError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrResourceNotFound
	}
	return err
}
