package models

import "time"

// DocumentRowID is the primary key of the single row holding the document.
const DocumentRowID = 1

// DocumentRow stores the serialized document in SQL backends.
type DocumentRow struct {
	ID        uint64    `gorm:"primarykey"`
	Body      string    `gorm:"not null"`
	UpdatedAt time.Time
}

func (DocumentRow) TableName() string {
	return "documents"
}
