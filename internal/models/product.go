package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	DistributorID uint        `gorm:"index;not null" json:"distributor_id"`
	Distributor   Distributor `gorm:"foreignKey:DistributorID" json:"-"`
	Name          string      `gorm:"size:150;not null" json:"name"`
	PackQuantity  int         `gorm:"default:1" json:"pack_quantity"`
	PackUnit      string      `gorm:"size:20" json:"pack_unit"`
	// Either the pack price is entered directly, or it is derived from a
	// per-sub-unit price times the sub-units in a pack.
	PricePerPack decimal.Decimal `gorm:"type:decimal(10,2)" json:"price_per_pack"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(10,4)" json:"price_per_unit"`
	UnitsPerPack int             `gorm:"default:0" json:"units_per_pack"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// EffectivePackPrice resolves the per-pack cost regardless of how the price
// was entered. A directly entered pack price wins; otherwise it is
// pricePerUnit x unitsPerPack, rounded to 2 places.
func (p *Product) EffectivePackPrice() decimal.Decimal {
	if p.PricePerPack.IsPositive() {
		return p.PricePerPack.Round(2)
	}
	if p.PricePerUnit.IsPositive() && p.UnitsPerPack > 0 {
		return p.PricePerUnit.Mul(decimal.NewFromInt(int64(p.UnitsPerPack))).Round(2)
	}
	return decimal.Zero
}

// HasDerivablePrice reports whether a per-pack cost can be computed at all.
func (p *Product) HasDerivablePrice() bool {
	return p.EffectivePackPrice().IsPositive()
}
