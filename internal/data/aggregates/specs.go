package aggregates

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	types "github.com/tonearc/catalog-backend/internal/domain"
	domainagg "github.com/tonearc/catalog-backend/internal/domain/aggregates"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Collection specs for every reconciled child table. Each spec pins the
// parent scope, the natural key, the order semantics and the touch targets;
// the builders next to them convert desired inputs into model rows for that
// scope.

func aliasJSON(aliases []string) datatypes.JSON {
	if aliases == nil {
		aliases = []string{}
	}
	b, _ := json.Marshal(aliases)
	return datatypes.JSON(b)
}

func attributesJSON(attrs map[string]any) datatypes.JSON {
	if attrs == nil {
		attrs = map[string]any{}
	}
	b, _ := json.Marshal(attrs)
	return datatypes.JSON(b)
}

func stamp(id *uuid.UUID, created, updated *time.Time, now time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	*created = now
	*updated = now
}

func artistGenreSpec(artistID uuid.UUID) CollectionSpec[types.ArtistGenre] {
	return CollectionSpec[types.ArtistGenre]{
		Table:    "artist_genre",
		Scope:    func(tx *gorm.DB) *gorm.DB { return tx.Where("artist_id = ?", artistID) },
		InScope:  func(r types.ArtistGenre) bool { return r.ArtistID == artistID },
		Key:      func(r types.ArtistGenre) string { return r.GenreID.String() },
		Position: func(r types.ArtistGenre) int { return r.Position },
		RowID:    func(r types.ArtistGenre) uuid.UUID { return r.ID },
		Changed: func(e, d types.ArtistGenre) bool {
			return e.Position != d.Position
		},
		UpdateValues: func(d types.ArtistGenre, now time.Time) map[string]any {
			return map[string]any{"position": d.Position, "updated_at": now}
		},
		PrepareInsert: func(r *types.ArtistGenre, now time.Time) {
			stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt, now)
		},
		Touches: func(r types.ArtistGenre) []TouchRef {
			return []TouchRef{{Table: "artist", ID: r.ArtistID}}
		},
	}
}

func buildArtistGenres(artistID uuid.UUID, in []domainagg.GenreInput) []types.ArtistGenre {
	rows := make([]types.ArtistGenre, 0, len(in))
	for _, g := range in {
		rows = append(rows, types.ArtistGenre{
			ArtistID: artistID,
			GenreID:  g.GenreID,
			Position: g.Position,
		})
	}
	return rows
}

func artistRelationshipSpec(artistID uuid.UUID) SymmetricSpec[types.ArtistRelationship] {
	return SymmetricSpec[types.ArtistRelationship]{
		Collection: CollectionSpec[types.ArtistRelationship]{
			Table:    "artist_relationship",
			Scope:    func(tx *gorm.DB) *gorm.DB { return tx.Where("artist_id = ?", artistID) },
			InScope:  func(r types.ArtistRelationship) bool { return r.ArtistID == artistID },
			Key:      func(r types.ArtistRelationship) string { return r.TargetArtistID.String() },
			Position: func(r types.ArtistRelationship) int { return r.Position },
			RowID:    func(r types.ArtistRelationship) uuid.UUID { return r.ID },
			Changed: func(e, d types.ArtistRelationship) bool {
				return e.Position != d.Position || e.Name != d.Name || e.Description != d.Description
			},
			UpdateValues: func(d types.ArtistRelationship, now time.Time) map[string]any {
				return map[string]any{
					"position":    d.Position,
					"name":        d.Name,
					"description": d.Description,
					"updated_at":  now,
				}
			},
			PrepareInsert: func(r *types.ArtistRelationship, now time.Time) {
				stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt, now)
			},
			Touches: func(r types.ArtistRelationship) []TouchRef {
				return []TouchRef{
					{Table: "artist", ID: r.ArtistID},
					{Table: "artist", ID: r.TargetArtistID},
				}
			},
		},
		TargetColumn:      "target_artist_id",
		TargetID:          func(r types.ArtistRelationship) uuid.UUID { return r.TargetArtistID },
		ReferencePosition: func(r types.ArtistRelationship) int { return r.ReferencePosition },
		SetReferencePosition: func(r *types.ArtistRelationship, pos int) {
			r.ReferencePosition = pos
		},
	}
}

func buildArtistRelationships(artistID uuid.UUID, in []domainagg.RelationshipInput) []types.ArtistRelationship {
	rows := make([]types.ArtistRelationship, 0, len(in))
	for _, rel := range in {
		rows = append(rows, types.ArtistRelationship{
			ArtistID:       artistID,
			TargetArtistID: rel.TargetID,
			Name:           rel.Name,
			Description:    rel.Description,
			Position:       rel.Position,
		})
	}
	return rows
}

func artistRelationshipReassignSpec() ReassignSpec[types.ArtistRelationship] {
	return ReassignSpec[types.ArtistRelationship]{
		Table:        "artist_relationship",
		OwnerColumn:  "artist_id",
		TargetColumn: "target_artist_id",
		OwnerTable:   "artist",
		TargetTable:  "artist",
		RowID:        func(r types.ArtistRelationship) uuid.UUID { return r.ID },
	}
}

func releaseGroupArtistSpec(groupID uuid.UUID) CollectionSpec[types.ReleaseGroupArtist] {
	return CollectionSpec[types.ReleaseGroupArtist]{
		Table:    "release_group_artist",
		Scope:    func(tx *gorm.DB) *gorm.DB { return tx.Where("release_group_id = ?", groupID) },
		InScope:  func(r types.ReleaseGroupArtist) bool { return r.ReleaseGroupID == groupID },
		Key:      func(r types.ReleaseGroupArtist) string { return r.ArtistID.String() },
		Position: func(r types.ReleaseGroupArtist) int { return r.Position },
		RowID:    func(r types.ReleaseGroupArtist) uuid.UUID { return r.ID },
		Changed: func(e, d types.ReleaseGroupArtist) bool {
			return e.Position != d.Position || e.CreditedAs != d.CreditedAs
		},
		UpdateValues: func(d types.ReleaseGroupArtist, now time.Time) map[string]any {
			return map[string]any{
				"position":    d.Position,
				"credited_as": d.CreditedAs,
				"updated_at":  now,
			}
		},
		PrepareInsert: func(r *types.ReleaseGroupArtist, now time.Time) {
			stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt, now)
		},
		Touches: func(r types.ReleaseGroupArtist) []TouchRef {
			return []TouchRef{{Table: "release_group", ID: r.ReleaseGroupID}}
		},
	}
}

func buildReleaseGroupArtists(groupID uuid.UUID, in []domainagg.ArtistCreditInput) []types.ReleaseGroupArtist {
	rows := make([]types.ReleaseGroupArtist, 0, len(in))
	for _, credit := range in {
		rows = append(rows, types.ReleaseGroupArtist{
			ReleaseGroupID: groupID,
			ArtistID:       credit.ArtistID,
			CreditedAs:     credit.CreditedAs,
			Position:       credit.Position,
		})
	}
	return rows
}

func releaseArtistSpec(releaseID uuid.UUID) CollectionSpec[types.ReleaseArtist] {
	return CollectionSpec[types.ReleaseArtist]{
		Table:    "release_artist",
		Scope:    func(tx *gorm.DB) *gorm.DB { return tx.Where("release_id = ?", releaseID) },
		InScope:  func(r types.ReleaseArtist) bool { return r.ReleaseID == releaseID },
		Key:      func(r types.ReleaseArtist) string { return r.ArtistID.String() },
		Position: func(r types.ReleaseArtist) int { return r.Position },
		RowID:    func(r types.ReleaseArtist) uuid.UUID { return r.ID },
		Changed: func(e, d types.ReleaseArtist) bool {
			return e.Position != d.Position || e.CreditedAs != d.CreditedAs
		},
		UpdateValues: func(d types.ReleaseArtist, now time.Time) map[string]any {
			return map[string]any{
				"position":    d.Position,
				"credited_as": d.CreditedAs,
				"updated_at":  now,
			}
		},
		PrepareInsert: func(r *types.ReleaseArtist, now time.Time) {
			stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt, now)
		},
		Touches: func(r types.ReleaseArtist) []TouchRef {
			return []TouchRef{{Table: "release", ID: r.ReleaseID}}
		},
	}
}

func buildReleaseArtists(releaseID uuid.UUID, in []domainagg.ArtistCreditInput) []types.ReleaseArtist {
	rows := make([]types.ReleaseArtist, 0, len(in))
	for _, credit := range in {
		rows = append(rows, types.ReleaseArtist{
			ReleaseID:  releaseID,
			ArtistID:   credit.ArtistID,
			CreditedAs: credit.CreditedAs,
			Position:   credit.Position,
		})
	}
	return rows
}

func releaseGenreSpec(releaseID uuid.UUID) CollectionSpec[types.ReleaseGenre] {
	return CollectionSpec[types.ReleaseGenre]{
		Table:    "release_genre",
		Scope:    func(tx *gorm.DB) *gorm.DB { return tx.Where("release_id = ?", releaseID) },
		InScope:  func(r types.ReleaseGenre) bool { return r.ReleaseID == releaseID },
		Key:      func(r types.ReleaseGenre) string { return r.GenreID.String() },
		Position: func(r types.ReleaseGenre) int { return r.Position },
		RowID:    func(r types.ReleaseGenre) uuid.UUID { return r.ID },
		Changed: func(e, d types.ReleaseGenre) bool {
			return e.Position != d.Position
		},
		UpdateValues: func(d types.ReleaseGenre, now time.Time) map[string]any {
			return map[string]any{"position": d.Position, "updated_at": now}
		},
		PrepareInsert: func(r *types.ReleaseGenre, now time.Time) {
			stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt, now)
		},
		Touches: func(r types.ReleaseGenre) []TouchRef {
			return []TouchRef{{Table: "release", ID: r.ReleaseID}}
		},
	}
}

func buildReleaseGenres(releaseID uuid.UUID, in []domainagg.GenreInput) []types.ReleaseGenre {
	rows := make([]types.ReleaseGenre, 0, len(in))
	for _, g := range in {
		rows = append(rows, types.ReleaseGenre{
			ReleaseID: releaseID,
			GenreID:   g.GenreID,
			Position:  g.Position,
		})
	}
	return rows
}

// mediumSpec: position doubles as the natural key, so reordering media is a
// delete/insert of the moved slots rather than an in-place move.
func mediumSpec(releaseID uuid.UUID) CollectionSpec[types.Medium] {
	return CollectionSpec[types.Medium]{
		Table:    "medium",
		Scope:    func(tx *gorm.DB) *gorm.DB { return tx.Where("release_id = ?", releaseID) },
		InScope:  func(r types.Medium) bool { return r.ReleaseID == releaseID },
		Key:      func(r types.Medium) string { return strconv.Itoa(r.Position) },
		Position: func(r types.Medium) int { return r.Position },
		RowID:    func(r types.Medium) uuid.UUID { return r.ID },
		Changed: func(e, d types.Medium) bool {
			return e.Format != d.Format || e.Title != d.Title
		},
		UpdateValues: func(d types.Medium, now time.Time) map[string]any {
			return map[string]any{
				"format":     d.Format,
				"title":      d.Title,
				"updated_at": now,
			}
		},
		PrepareInsert: func(r *types.Medium, now time.Time) {
			stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt, now)
		},
		Touches: func(r types.Medium) []TouchRef {
			return []TouchRef{{Table: "release", ID: r.ReleaseID}}
		},
	}
}

func buildMedia(releaseID uuid.UUID, in []domainagg.MediumInput) []types.Medium {
	rows := make([]types.Medium, 0, len(in))
	for _, m := range in {
		rows = append(rows, types.Medium{
			ReleaseID: releaseID,
			Position:  m.Position,
			Format:    m.Format,
			Title:     m.Title,
		})
	}
	return rows
}

func trackSpec(releaseID uuid.UUID) CollectionSpec[types.Track] {
	return CollectionSpec[types.Track]{
		Table:      "track",
		Scope:      func(tx *gorm.DB) *gorm.DB { return tx.Where("release_id = ?", releaseID) },
		InScope:    func(r types.Track) bool { return r.ReleaseID == releaseID },
		Key:        func(r types.Track) string { return fmt.Sprintf("%d|%d", r.MediumPosition, r.Position) },
		OrderScope: func(r types.Track) string { return strconv.Itoa(r.MediumPosition) },
		Position:   func(r types.Track) int { return r.Position },
		RowID:      func(r types.Track) uuid.UUID { return r.ID },
		Changed: func(e, d types.Track) bool {
			return e.Title != d.Title || e.LengthMS != d.LengthMS || !uuidPtrEqual(e.WorkID, d.WorkID)
		},
		UpdateValues: func(d types.Track, now time.Time) map[string]any {
			return map[string]any{
				"title":      d.Title,
				"length_ms":  d.LengthMS,
				"work_id":    d.WorkID,
				"updated_at": now,
			}
		},
		PrepareInsert: func(r *types.Track, now time.Time) {
			stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt, now)
		},
		Touches: func(r types.Track) []TouchRef {
			return []TouchRef{{Table: "release", ID: r.ReleaseID}}
		},
	}
}

func buildTracks(releaseID uuid.UUID, in []domainagg.TrackInput) []types.Track {
	rows := make([]types.Track, 0, len(in))
	for _, t := range in {
		rows = append(rows, types.Track{
			ReleaseID:      releaseID,
			MediumPosition: t.MediumPosition,
			Position:       t.Position,
			Title:          t.Title,
			LengthMS:       t.LengthMS,
			WorkID:         t.WorkID,
		})
	}
	return rows
}

func trackArtistSpec(releaseID uuid.UUID) CollectionSpec[types.TrackArtist] {
	return CollectionSpec[types.TrackArtist]{
		Table:   "track_artist",
		Scope:   func(tx *gorm.DB) *gorm.DB { return tx.Where("release_id = ?", releaseID) },
		InScope: func(r types.TrackArtist) bool { return r.ReleaseID == releaseID },
		Key: func(r types.TrackArtist) string {
			return fmt.Sprintf("%d|%d|%s", r.MediumPosition, r.TrackPosition, r.ArtistID)
		},
		OrderScope: func(r types.TrackArtist) string {
			return fmt.Sprintf("%d|%d", r.MediumPosition, r.TrackPosition)
		},
		Position: func(r types.TrackArtist) int { return r.Position },
		RowID:    func(r types.TrackArtist) uuid.UUID { return r.ID },
		Changed: func(e, d types.TrackArtist) bool {
			return e.Position != d.Position || e.CreditedAs != d.CreditedAs
		},
		UpdateValues: func(d types.TrackArtist, now time.Time) map[string]any {
			return map[string]any{
				"position":    d.Position,
				"credited_as": d.CreditedAs,
				"updated_at":  now,
			}
		},
		PrepareInsert: func(r *types.TrackArtist, now time.Time) {
			stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt, now)
		},
		Touches: func(r types.TrackArtist) []TouchRef {
			return []TouchRef{{Table: "release", ID: r.ReleaseID}}
		},
	}
}

func buildTrackArtists(releaseID uuid.UUID, in []domainagg.TrackArtistInput) []types.TrackArtist {
	rows := make([]types.TrackArtist, 0, len(in))
	for _, credit := range in {
		rows = append(rows, types.TrackArtist{
			ReleaseID:      releaseID,
			MediumPosition: credit.MediumPosition,
			TrackPosition:  credit.TrackPosition,
			ArtistID:       credit.ArtistID,
			CreditedAs:     credit.CreditedAs,
			Position:       credit.Position,
		})
	}
	return rows
}

func releaseWorkRelationshipSpec(releaseID uuid.UUID) SymmetricSpec[types.ReleaseWorkRelationship] {
	return SymmetricSpec[types.ReleaseWorkRelationship]{
		Collection: CollectionSpec[types.ReleaseWorkRelationship]{
			Table:    "release_work_relationship",
			Scope:    func(tx *gorm.DB) *gorm.DB { return tx.Where("release_id = ?", releaseID) },
			InScope:  func(r types.ReleaseWorkRelationship) bool { return r.ReleaseID == releaseID },
			Key:      func(r types.ReleaseWorkRelationship) string { return r.WorkID.String() },
			Position: func(r types.ReleaseWorkRelationship) int { return r.Position },
			RowID:    func(r types.ReleaseWorkRelationship) uuid.UUID { return r.ID },
			Changed: func(e, d types.ReleaseWorkRelationship) bool {
				return e.Position != d.Position || e.Name != d.Name || e.Description != d.Description
			},
			UpdateValues: func(d types.ReleaseWorkRelationship, now time.Time) map[string]any {
				return map[string]any{
					"position":    d.Position,
					"name":        d.Name,
					"description": d.Description,
					"updated_at":  now,
				}
			},
			PrepareInsert: func(r *types.ReleaseWorkRelationship, now time.Time) {
				stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt, now)
			},
			Touches: func(r types.ReleaseWorkRelationship) []TouchRef {
				return []TouchRef{
					{Table: "release", ID: r.ReleaseID},
					{Table: "work", ID: r.WorkID},
				}
			},
		},
		TargetColumn:      "work_id",
		TargetID:          func(r types.ReleaseWorkRelationship) uuid.UUID { return r.WorkID },
		ReferencePosition: func(r types.ReleaseWorkRelationship) int { return r.ReferencePosition },
		SetReferencePosition: func(r *types.ReleaseWorkRelationship, pos int) {
			r.ReferencePosition = pos
		},
	}
}

func buildReleaseWorkRelationships(releaseID uuid.UUID, in []domainagg.RelationshipInput) []types.ReleaseWorkRelationship {
	rows := make([]types.ReleaseWorkRelationship, 0, len(in))
	for _, rel := range in {
		rows = append(rows, types.ReleaseWorkRelationship{
			ReleaseID:   releaseID,
			WorkID:      rel.TargetID,
			Name:        rel.Name,
			Description: rel.Description,
			Position:    rel.Position,
		})
	}
	return rows
}

func releaseWorkReassignSpec() ReassignSpec[types.ReleaseWorkRelationship] {
	return ReassignSpec[types.ReleaseWorkRelationship]{
		Table:        "release_work_relationship",
		OwnerColumn:  "release_id",
		TargetColumn: "work_id",
		OwnerTable:   "release",
		TargetTable:  "work",
		RowID:        func(r types.ReleaseWorkRelationship) uuid.UUID { return r.ID },
	}
}

func workArtistSpec(workID uuid.UUID) CollectionSpec[types.WorkArtist] {
	return CollectionSpec[types.WorkArtist]{
		Table:   "work_artist",
		Scope:   func(tx *gorm.DB) *gorm.DB { return tx.Where("work_id = ?", workID) },
		InScope: func(r types.WorkArtist) bool { return r.WorkID == workID },
		Key: func(r types.WorkArtist) string {
			return r.ArtistID.String() + "|" + r.Role
		},
		Position: func(r types.WorkArtist) int { return r.Position },
		RowID:    func(r types.WorkArtist) uuid.UUID { return r.ID },
		Changed: func(e, d types.WorkArtist) bool {
			return e.Position != d.Position
		},
		UpdateValues: func(d types.WorkArtist, now time.Time) map[string]any {
			return map[string]any{"position": d.Position, "updated_at": now}
		},
		PrepareInsert: func(r *types.WorkArtist, now time.Time) {
			stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt, now)
		},
		Touches: func(r types.WorkArtist) []TouchRef {
			return []TouchRef{{Table: "work", ID: r.WorkID}}
		},
	}
}

func buildWorkArtists(workID uuid.UUID, in []domainagg.WorkArtistInput) []types.WorkArtist {
	rows := make([]types.WorkArtist, 0, len(in))
	for _, credit := range in {
		rows = append(rows, types.WorkArtist{
			WorkID:   workID,
			ArtistID: credit.ArtistID,
			Role:     credit.Role,
			Position: credit.Position,
		})
	}
	return rows
}

func workGenreSpec(workID uuid.UUID) CollectionSpec[types.WorkGenre] {
	return CollectionSpec[types.WorkGenre]{
		Table:    "work_genre",
		Scope:    func(tx *gorm.DB) *gorm.DB { return tx.Where("work_id = ?", workID) },
		InScope:  func(r types.WorkGenre) bool { return r.WorkID == workID },
		Key:      func(r types.WorkGenre) string { return r.GenreID.String() },
		Position: func(r types.WorkGenre) int { return r.Position },
		RowID:    func(r types.WorkGenre) uuid.UUID { return r.ID },
		Changed: func(e, d types.WorkGenre) bool {
			return e.Position != d.Position
		},
		UpdateValues: func(d types.WorkGenre, now time.Time) map[string]any {
			return map[string]any{"position": d.Position, "updated_at": now}
		},
		PrepareInsert: func(r *types.WorkGenre, now time.Time) {
			stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt, now)
		},
		Touches: func(r types.WorkGenre) []TouchRef {
			return []TouchRef{{Table: "work", ID: r.WorkID}}
		},
	}
}

func buildWorkGenres(workID uuid.UUID, in []domainagg.GenreInput) []types.WorkGenre {
	rows := make([]types.WorkGenre, 0, len(in))
	for _, g := range in {
		rows = append(rows, types.WorkGenre{
			WorkID:   workID,
			GenreID:  g.GenreID,
			Position: g.Position,
		})
	}
	return rows
}

func productReleaseSpec(productID uuid.UUID) CollectionSpec[types.ProductRelease] {
	return CollectionSpec[types.ProductRelease]{
		Table:    "product_release",
		Scope:    func(tx *gorm.DB) *gorm.DB { return tx.Where("product_id = ?", productID) },
		InScope:  func(r types.ProductRelease) bool { return r.ProductID == productID },
		Key:      func(r types.ProductRelease) string { return r.ReleaseID.String() },
		Position: func(r types.ProductRelease) int { return r.Position },
		RowID:    func(r types.ProductRelease) uuid.UUID { return r.ID },
		Changed: func(e, d types.ProductRelease) bool {
			return e.Position != d.Position
		},
		UpdateValues: func(d types.ProductRelease, now time.Time) map[string]any {
			return map[string]any{"position": d.Position, "updated_at": now}
		},
		PrepareInsert: func(r *types.ProductRelease, now time.Time) {
			stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt, now)
		},
		Touches: func(r types.ProductRelease) []TouchRef {
			return []TouchRef{{Table: "product", ID: r.ProductID}}
		},
	}
}

func buildProductReleases(productID uuid.UUID, in []domainagg.ProductReleaseInput) []types.ProductRelease {
	rows := make([]types.ProductRelease, 0, len(in))
	for _, pr := range in {
		rows = append(rows, types.ProductRelease{
			ProductID: productID,
			ReleaseID: pr.ReleaseID,
			Position:  pr.Position,
		})
	}
	return rows
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
