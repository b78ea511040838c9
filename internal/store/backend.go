package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yukikurage/freelance-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoDocument is returned by a backend holding no document yet.
var ErrNoDocument = errors.New("no document stored")

// Backend reads and writes the serialized document as a whole.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Name() string
}

// FileBackend keeps the document in a single JSON file.
type FileBackend struct {
	path string
}

// NewFileBackend creates a FileBackend for path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", b.path, err)
	}
	return data, nil
}

// Write overwrites the file with data.
func (b *FileBackend) Write(_ context.Context, data []byte) error {
	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", b.path, err)
	}
	return nil
}

func (b *FileBackend) Name() string {
	return "file"
}

// Path returns the backing file location.
func (b *FileBackend) Path() string {
	return b.path
}

// GormBackend keeps the document as the body of a single row of the
// documents table.
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend creates a GormBackend. The documents table must exist.
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func (b *GormBackend) Read(ctx context.Context) ([]byte, error) {
	var row models.DocumentRow
	err := b.db.WithContext(ctx).First(&row, models.DocumentRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("read document row: %w", err)
	}
	return []byte(row.Body), nil
}

// Write upserts the document row.
func (b *GormBackend) Write(ctx context.Context, data []byte) error {
	row := models.DocumentRow{
		ID:   models.DocumentRowID,
		Body: string(data),
	}
	err := b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("write document row: %w", err)
	}
	return nil
}

func (b *GormBackend) Name() string {
	return "sql"
}
