package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/freelance-tracker-api/internal/models"
	"github.com/yukikurage/freelance-tracker-api/internal/store"
)

// ErrEmailTaken is returned when a user with the same email already exists.
var ErrEmailTaken = errors.New("email already registered")

// UserRepository adds the credential lookups to the users collection.
type UserRepository struct {
	*CollectionRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{CollectionRepository: NewCollectionRepository(s, models.CollectionUsers)}
}

// FindByToken finds the user holding the session token
func (r *UserRepository) FindByToken(ctx context.Context, token string) (models.Record, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return r.FindOne(ctx, fieldEquals(models.UserFieldToken, token))
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.Record, error) {
	return r.FindOne(ctx, fieldEquals(models.UserFieldEmail, email))
}

// CreateIfEmailAbsent appends user unless a user with the same email exists.
// The lookup and the append happen under one writer lock, so concurrent
// registrations with one email store a single user.
func (r *UserRepository) CreateIfEmailAbsent(ctx context.Context, user models.Record) (models.Record, error) {
	email := user.String(models.UserFieldEmail)
	err := r.store.Update(ctx, func(doc models.Document) error {
		for _, rec := range doc[r.name] {
			if fieldEquals(models.UserFieldEmail, email)(rec) {
				return ErrEmailTaken
			}
		}
		doc[r.name] = append(doc[r.name], user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByCredentials finds the user whose email and password both match exactly
func (r *UserRepository) FindByCredentials(ctx context.Context, email, password string) (models.Record, error) {
	return r.FindOne(ctx, func(rec models.Record) bool {
		return fieldEquals(models.UserFieldEmail, email)(rec) &&
			fieldEquals(models.UserFieldPassword, password)(rec)
	})
}

// UpdateByToken shallow-merges patch over the user holding the session token
func (r *UserRepository) UpdateByToken(ctx context.Context, token string, patch models.Record) (models.Record, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return r.UpdateWhere(ctx, fieldEquals(models.UserFieldToken, token), patch)
}

func fieldEquals(key, value string) func(models.Record) bool {
	return func(rec models.Record) bool {
		s, ok := rec[key].(string)
		return ok && s == value
	}
}
