package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Work is an aggregate root for the underlying composition a track records.
type Work struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string    `gorm:"not null" json:"title"`
	Disambiguation string    `gorm:"column:disambiguation" json:"disambiguation"`
	LyricsLanguage string    `gorm:"column:lyrics_language" json:"lyrics_language"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Work) TableName() string { return "work" }

// WorkArtist is an ordered artist association scoped to one work. Role is part
// of the natural key so the same artist can appear as both composer and
// lyricist.
type WorkArtist struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	WorkID uuid.UUID `gorm:"type:uuid;not null;index:udx_work_artist,unique,priority:1;index:udx_work_artist_position,unique,priority:1" json:"work_id"`
	Work   *Work     `gorm:"constraint:OnDelete:CASCADE;foreignKey:WorkID;references:ID" json:"work,omitempty"`

	ArtistID uuid.UUID `gorm:"type:uuid;not null;index:udx_work_artist,unique,priority:2" json:"artist_id"`
	Artist   *Artist   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ArtistID;references:ID" json:"artist,omitempty"`

	Role     string `gorm:"not null;index:udx_work_artist,unique,priority:3" json:"role"`
	Position int    `gorm:"not null;index:udx_work_artist_position,unique,priority:2" json:"position"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (WorkArtist) TableName() string { return "work_artist" }

// WorkGenre is an ordered genre association scoped to one work.
type WorkGenre struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	WorkID uuid.UUID `gorm:"type:uuid;not null;index:udx_work_genre,unique,priority:1;index:udx_work_genre_position,unique,priority:1" json:"work_id"`
	Work   *Work     `gorm:"constraint:OnDelete:CASCADE;foreignKey:WorkID;references:ID" json:"work,omitempty"`

	GenreID uuid.UUID `gorm:"type:uuid;not null;index:udx_work_genre,unique,priority:2" json:"genre_id"`
	Genre   *Genre    `gorm:"constraint:OnDelete:CASCADE;foreignKey:GenreID;references:ID" json:"genre,omitempty"`

	Position int `gorm:"not null;index:udx_work_genre_position,unique,priority:2" json:"position"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (WorkGenre) TableName() string { return "work_genre" }
