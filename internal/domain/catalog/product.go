package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Product is an aggregate root for a sellable catalog item bundling one or
// more releases (box set, deluxe edition, merch bundle).
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"column:description" json:"description"`
	ProductCode string         `gorm:"column:product_code" json:"product_code"`
	Attributes  datatypes.JSON `gorm:"column:attributes;type:jsonb" json:"attributes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "product" }

// ProductRelease is an ordered release membership scoped to one product.
type ProductRelease struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ProductID uuid.UUID `gorm:"type:uuid;not null;index:udx_product_release,unique,priority:1;index:udx_product_release_position,unique,priority:1" json:"product_id"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProductID;references:ID" json:"product,omitempty"`

	ReleaseID uuid.UUID `gorm:"type:uuid;not null;index:udx_product_release,unique,priority:2" json:"release_id"`
	Release   *Release  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReleaseID;references:ID" json:"release,omitempty"`

	Position int `gorm:"not null;index:udx_product_release_position,unique,priority:2" json:"position"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ProductRelease) TableName() string { return "product_release" }
