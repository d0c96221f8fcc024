package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Genre is reference data shared by every aggregate kind. Rows are seeded by
// the migrate command and referenced by the per-aggregate genre collections.
type Genre struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"not null;uniqueIndex:udx_genre_name" json:"name"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Genre) TableName() string { return "genre" }
