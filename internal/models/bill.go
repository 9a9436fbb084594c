package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BillStatusActive = "active"
	BillStatusVoid   = "void"
)

type Bill struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	BillNo        string          `gorm:"size:50;unique;not null" json:"bill_no"`
	OrderID       uint            `gorm:"index;not null" json:"order_id"`
	DistributorID uint            `gorm:"index;not null" json:"distributor_id"`
	Distributor   Distributor     `gorm:"foreignKey:DistributorID" json:"distributor"`
	BillDate      time.Time       `gorm:"not null" json:"bill_date"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Locked        bool            `gorm:"default:false" json:"locked"`
	Status        string          `gorm:"size:10;default:'active'" json:"status"`
	Items         []BillItem      `gorm:"foreignKey:BillID" json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type BillItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	BillID      uint            `gorm:"index" json:"bill_id"`
	ProductName string          `gorm:"size:150;not null" json:"product_name"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Unit        string          `gorm:"size:20" json:"unit"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
}

// ComputeBillItems derives bill lines from an order's items and its damage
// records. For each line the billable quantity is the ordered quantity minus
// any damage reported for that product, clamped at zero. Line totals are
// rounded to 2 places; the grand total sums the rounded lines at full
// precision.
//
// Order items must carry their Product so the per-pack price can be resolved.
func ComputeBillItems(items []OrderItem, damaged []DamagedProduct) ([]BillItem, decimal.Decimal) {
	damageByProduct := make(map[string]decimal.Decimal, len(damaged))
	for _, d := range damaged {
		damageByProduct[d.ProductName] = damageByProduct[d.ProductName].Add(d.DamagedQuantity)
	}

	billItems := make([]BillItem, 0, len(items))
	total := decimal.Zero

	for _, item := range items {
		price := item.Product.EffectivePackPrice()
		billable := item.Quantity.Sub(damageByProduct[item.Product.Name])
		if billable.IsNegative() {
			billable = decimal.Zero
		}
		lineTotal := price.Mul(billable).Round(2)

		billItems = append(billItems, BillItem{
			ProductName: item.Product.Name,
			Quantity:    billable,
			Unit:        item.Unit,
			Price:       price,
			LineTotal:   lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return billItems, total
}
