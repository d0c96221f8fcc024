package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ArtistRelationship connects two artists and is visible from both ends:
// Position orders the relationship within the owning artist's view, and
// ReferencePosition orders it within the target artist's view. The two
// sequences are maintained independently; only the owning side drives
// create/update calls, the target-side sequence is assigned automatically.
type ArtistRelationship struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ArtistID uuid.UUID `gorm:"type:uuid;not null;index:udx_artist_relationship,unique,priority:1;index:udx_artist_relationship_position,unique,priority:1" json:"artist_id"`
	Artist   *Artist   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ArtistID;references:ID" json:"artist,omitempty"`

	TargetArtistID uuid.UUID `gorm:"column:target_artist_id;type:uuid;not null;index:udx_artist_relationship,unique,priority:2;index:udx_artist_relationship_reference,unique,priority:1" json:"target_artist_id"`
	TargetArtist   *Artist   `gorm:"constraint:OnDelete:CASCADE;foreignKey:TargetArtistID;references:ID" json:"target_artist,omitempty"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`

	Position          int `gorm:"not null;index:udx_artist_relationship_position,unique,priority:2" json:"position"`
	ReferencePosition int `gorm:"column:reference_position;not null;index:udx_artist_relationship_reference,unique,priority:2" json:"reference_position"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ArtistRelationship) TableName() string { return "artist_relationship" }

// ReleaseWorkRelationship is the cross-kind symmetric relationship: a release
// owns the relationship (Position scoped by release), while the referenced
// work carries its own independent ReferencePosition sequence.
type ReleaseWorkRelationship struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ReleaseID uuid.UUID `gorm:"type:uuid;not null;index:udx_release_work_relationship,unique,priority:1;index:udx_release_work_relationship_position,unique,priority:1" json:"release_id"`
	Release   *Release  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReleaseID;references:ID" json:"release,omitempty"`

	WorkID uuid.UUID `gorm:"type:uuid;not null;index:udx_release_work_relationship,unique,priority:2;index:udx_release_work_relationship_reference,unique,priority:1" json:"work_id"`
	Work   *Work     `gorm:"constraint:OnDelete:CASCADE;foreignKey:WorkID;references:ID" json:"work,omitempty"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`

	Position          int `gorm:"not null;index:udx_release_work_relationship_position,unique,priority:2" json:"position"`
	ReferencePosition int `gorm:"column:reference_position;not null;index:udx_release_work_relationship_reference,unique,priority:2" json:"reference_position"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ReleaseWorkRelationship) TableName() string { return "release_work_relationship" }
