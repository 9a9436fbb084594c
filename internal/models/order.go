package models

import (
	"time"

	"github.com/chandragiri4649/milksync-sub000/internal/apperr"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusDelivered = "delivered"
)

// AllowedUnits is the fixed vocabulary an order line may be expressed in.
var AllowedUnits = map[string]bool{
	"pack":   true,
	"bucket": true,
	"kg":     true,
	"liter":  true,
	"box":    true,
	"packet": true,
	"gram":   true,
}

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	DistributorID uint        `gorm:"index;not null" json:"distributor_id"`
	Distributor   Distributor `gorm:"foreignKey:DistributorID" json:"distributor"`
	OrderDate     time.Time   `gorm:"not null" json:"order_date"`
	DeliveryDate  *time.Time  `json:"delivery_date"`
	Status        string      `gorm:"size:20;default:'pending'" json:"status"`
	Locked        bool        `gorm:"default:false" json:"locked"`
	OrderedByID   uint        `json:"ordered_by_id"`
	OrderedBy     User        `gorm:"foreignKey:OrderedByID" json:"ordered_by"`
	// Audit of the last mutation.
	UpdatedByRole   string           `gorm:"size:20" json:"updated_by_role"`
	UpdatedByID     uint             `json:"updated_by_id"`
	UpdatedByName   string           `gorm:"size:50" json:"updated_by_name"`
	Items           []OrderItem      `gorm:"foreignKey:OrderID" json:"items"`
	DamagedProducts []DamagedProduct `gorm:"foreignKey:OrderID" json:"damaged_products"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"index" json:"order_id"`
	ProductID uint            `json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Unit      string          `gorm:"size:20;not null" json:"unit"`
}

// DamagedProduct records shrinkage discovered at delivery. It reduces the
// billable quantity for the matching product line when the bill is generated.
type DamagedProduct struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderID         uint            `gorm:"index" json:"order_id"`
	ProductName     string          `gorm:"size:150;not null" json:"product_name"`
	DamagedQuantity decimal.Decimal `gorm:"type:decimal(10,2)" json:"damaged_quantity"`
	Notes           string          `gorm:"type:text" json:"notes"`
}

// CanEdit reports whether the order's items and date may still change.
// Delivered or locked orders are immutable.
func (o *Order) CanEdit() error {
	if o.Locked {
		return apperr.NewConflictError("order is locked")
	}
	if o.Status != OrderStatusPending {
		return apperr.NewConflictError("order already delivered")
	}
	return nil
}

// MarkDelivered transitions pending -> delivered exactly once. The order is
// locked against edits from that point on. Re-invocation is rejected.
func (o *Order) MarkDelivered(deliveredAt time.Time) error {
	if o.Status == OrderStatusDelivered {
		return apperr.NewConflictError("order already delivered")
	}
	if o.Status != OrderStatusPending {
		return apperr.NewConflictError("order is not in a deliverable state")
	}
	o.Status = OrderStatusDelivered
	o.Locked = true
	if o.DeliveryDate == nil {
		o.DeliveryDate = &deliveredAt
	}
	return nil
}

// ValidateOrderDate enforces the "no past dates" policy. The comparison is
// by calendar day, not instant, so an order for later today is valid.
func ValidateOrderDate(orderDate, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(orderDate.Year(), orderDate.Month(), orderDate.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return apperr.NewValidationError("order date cannot be in the past")
	}
	return nil
}

// ValidateDamagedProducts checks delivery damage records against the order's
// lines: quantities must not be negative and every product name must match
// an ordered product, so a typo surfaces as an error instead of a full-price
// bill. Items must carry their Product.
func ValidateDamagedProducts(items []OrderItem, damaged []DamagedProduct) error {
	ordered := make(map[string]bool, len(items))
	for _, item := range items {
		ordered[item.Product.Name] = true
	}

	for _, d := range damaged {
		if d.DamagedQuantity.IsNegative() {
			return apperr.NewValidationError("damaged quantity cannot be negative")
		}
		if !ordered[d.ProductName] {
			return apperr.NewValidationError("damaged product '" + d.ProductName + "' is not on this order")
		}
	}
	return nil
}

// ValidateOrderItem checks a single order line against the item invariants:
// positive quantity and a unit from the fixed vocabulary.
func ValidateOrderItem(quantity decimal.Decimal, unit string) error {
	if !quantity.IsPositive() {
		return apperr.NewValidationError("item quantity must be greater than zero")
	}
	if !AllowedUnits[unit] {
		return apperr.NewValidationError("unit '" + unit + "' is not allowed")
	}
	return nil
}
