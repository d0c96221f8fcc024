package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Release is the largest aggregate root: artist credits, genres, media,
// tracks, per-track artist credits and work relationships all hang off it.
type Release struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ReleaseGroupID *uuid.UUID    `gorm:"type:uuid;index" json:"release_group_id,omitempty"`
	ReleaseGroup   *ReleaseGroup `gorm:"constraint:OnDelete:SET NULL;foreignKey:ReleaseGroupID;references:ID" json:"release_group,omitempty"`

	Title          string `gorm:"not null" json:"title"`
	Disambiguation string `gorm:"column:disambiguation" json:"disambiguation"`
	Status         string `gorm:"column:status" json:"status"`
	Barcode        string `gorm:"column:barcode" json:"barcode"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Release) TableName() string { return "release" }

// ReleaseArtist is an ordered artist credit scoped to one release.
type ReleaseArtist struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ReleaseID uuid.UUID `gorm:"type:uuid;not null;index:udx_release_artist,unique,priority:1;index:udx_release_artist_position,unique,priority:1" json:"release_id"`
	Release   *Release  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReleaseID;references:ID" json:"release,omitempty"`

	ArtistID uuid.UUID `gorm:"type:uuid;not null;index:udx_release_artist,unique,priority:2" json:"artist_id"`
	Artist   *Artist   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ArtistID;references:ID" json:"artist,omitempty"`

	CreditedAs string `gorm:"column:credited_as" json:"credited_as"`
	Position   int    `gorm:"not null;index:udx_release_artist_position,unique,priority:2" json:"position"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ReleaseArtist) TableName() string { return "release_artist" }

// ReleaseGenre is an ordered genre association scoped to one release.
type ReleaseGenre struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ReleaseID uuid.UUID `gorm:"type:uuid;not null;index:udx_release_genre,unique,priority:1;index:udx_release_genre_position,unique,priority:1" json:"release_id"`
	Release   *Release  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReleaseID;references:ID" json:"release,omitempty"`

	GenreID uuid.UUID `gorm:"type:uuid;not null;index:udx_release_genre,unique,priority:2" json:"genre_id"`
	Genre   *Genre    `gorm:"constraint:OnDelete:CASCADE;foreignKey:GenreID;references:ID" json:"genre,omitempty"`

	Position int `gorm:"not null;index:udx_release_genre_position,unique,priority:2" json:"position"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ReleaseGenre) TableName() string { return "release_genre" }

// Medium is a physical or digital carrier within a release (disc, cassette
// side, digital volume). Position doubles as the natural key within the
// release scope.
type Medium struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ReleaseID uuid.UUID `gorm:"type:uuid;not null;index:udx_medium_position,unique,priority:1" json:"release_id"`
	Release   *Release  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReleaseID;references:ID" json:"release,omitempty"`

	Position int    `gorm:"not null;index:udx_medium_position,unique,priority:2" json:"position"`
	Format   string `gorm:"column:format" json:"format"`
	Title    string `gorm:"column:title" json:"title"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Medium) TableName() string { return "medium" }

// Track lives in the composite scope (release_id, medium_position); its
// position is unique within that medium.
type Track struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ReleaseID uuid.UUID `gorm:"type:uuid;not null;index:udx_track_position,unique,priority:1" json:"release_id"`
	Release   *Release  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReleaseID;references:ID" json:"release,omitempty"`

	MediumPosition int `gorm:"column:medium_position;not null;index:udx_track_position,unique,priority:2" json:"medium_position"`
	Position       int `gorm:"not null;index:udx_track_position,unique,priority:3" json:"position"`

	Title    string `gorm:"not null" json:"title"`
	LengthMS int    `gorm:"column:length_ms" json:"length_ms"`

	WorkID *uuid.UUID `gorm:"type:uuid;index" json:"work_id,omitempty"`
	Work   *Work      `gorm:"constraint:OnDelete:SET NULL;foreignKey:WorkID;references:ID" json:"work,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Track) TableName() string { return "track" }

// TrackArtist is an ordered artist credit scoped to one track, addressed by
// the composite (release_id, medium_position, track_position) key.
type TrackArtist struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ReleaseID uuid.UUID `gorm:"type:uuid;not null;index:udx_track_artist,unique,priority:1;index:udx_track_artist_position,unique,priority:1" json:"release_id"`
	Release   *Release  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReleaseID;references:ID" json:"release,omitempty"`

	MediumPosition int `gorm:"column:medium_position;not null;index:udx_track_artist,unique,priority:2;index:udx_track_artist_position,unique,priority:2" json:"medium_position"`
	TrackPosition  int `gorm:"column:track_position;not null;index:udx_track_artist,unique,priority:3;index:udx_track_artist_position,unique,priority:3" json:"track_position"`

	ArtistID uuid.UUID `gorm:"type:uuid;not null;index:udx_track_artist,unique,priority:4" json:"artist_id"`
	Artist   *Artist   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ArtistID;references:ID" json:"artist,omitempty"`

	CreditedAs string `gorm:"column:credited_as" json:"credited_as"`
	Position   int    `gorm:"not null;index:udx_track_artist_position,unique,priority:4" json:"position"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (TrackArtist) TableName() string { return "track_artist" }
