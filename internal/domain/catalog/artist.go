package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Artist is an aggregate root. UpdatedAt advances whenever the scalar row or
// any owned child collection row changes.
type Artist struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	SortName       string         `gorm:"column:sort_name" json:"sort_name"`
	Disambiguation string         `gorm:"column:disambiguation" json:"disambiguation"`
	Aliases        datatypes.JSON `gorm:"column:aliases;type:jsonb" json:"aliases"`
	Ended          bool           `gorm:"not null;default:false" json:"ended"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Artist) TableName() string { return "artist" }

// ArtistGenre is an ordered genre association scoped to one artist.
// Position is unique per artist; (artist_id, genre_id) is the natural key.
type ArtistGenre struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ArtistID uuid.UUID `gorm:"type:uuid;not null;index:udx_artist_genre,unique,priority:1;index:udx_artist_genre_position,unique,priority:1" json:"artist_id"`
	Artist   *Artist   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ArtistID;references:ID" json:"artist,omitempty"`

	GenreID uuid.UUID `gorm:"type:uuid;not null;index:udx_artist_genre,unique,priority:2" json:"genre_id"`
	Genre   *Genre    `gorm:"constraint:OnDelete:CASCADE;foreignKey:GenreID;references:ID" json:"genre,omitempty"`

	Position int `gorm:"not null;index:udx_artist_genre_position,unique,priority:2" json:"position"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ArtistGenre) TableName() string { return "artist_genre" }
