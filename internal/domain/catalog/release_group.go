package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ReleaseGroup is an aggregate root grouping releases of the same work of art
// (album, single, EP).
type ReleaseGroup struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string    `gorm:"not null" json:"title"`
	Disambiguation string    `gorm:"column:disambiguation" json:"disambiguation"`
	PrimaryType    string    `gorm:"column:primary_type" json:"primary_type"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ReleaseGroup) TableName() string { return "release_group" }

// ReleaseGroupArtist is an ordered artist credit scoped to one release group.
type ReleaseGroupArtist struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ReleaseGroupID uuid.UUID     `gorm:"type:uuid;not null;index:udx_release_group_artist,unique,priority:1;index:udx_release_group_artist_position,unique,priority:1" json:"release_group_id"`
	ReleaseGroup   *ReleaseGroup `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReleaseGroupID;references:ID" json:"release_group,omitempty"`

	ArtistID uuid.UUID `gorm:"type:uuid;not null;index:udx_release_group_artist,unique,priority:2" json:"artist_id"`
	Artist   *Artist   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ArtistID;references:ID" json:"artist,omitempty"`

	CreditedAs string `gorm:"column:credited_as" json:"credited_as"`
	Position   int    `gorm:"not null;index:udx_release_group_artist_position,unique,priority:2" json:"position"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ReleaseGroupArtist) TableName() string { return "release_group_artist" }
