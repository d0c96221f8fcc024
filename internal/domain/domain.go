package domain

import (
	"github.com/tonearc/catalog-backend/internal/domain/catalog"
)

// Catalog schema types re-exported under the flat domain namespace so callers
// can keep using the conventional `types` import alias.

type Genre = catalog.Genre

type Artist = catalog.Artist
type ArtistGenre = catalog.ArtistGenre
type ArtistRelationship = catalog.ArtistRelationship

type ReleaseGroup = catalog.ReleaseGroup
type ReleaseGroupArtist = catalog.ReleaseGroupArtist

type Release = catalog.Release
type ReleaseArtist = catalog.ReleaseArtist
type ReleaseGenre = catalog.ReleaseGenre
type Medium = catalog.Medium
type Track = catalog.Track
type TrackArtist = catalog.TrackArtist
type ReleaseWorkRelationship = catalog.ReleaseWorkRelationship

type Work = catalog.Work
type WorkArtist = catalog.WorkArtist
type WorkGenre = catalog.WorkGenre

type Product = catalog.Product
type ProductRelease = catalog.ProductRelease
