package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentStatusActive = "active"
	PaymentStatusVoid   = "void"
)

// AllowedPaymentMethods is the fixed vocabulary for how a payment was made.
var AllowedPaymentMethods = map[string]bool{
	"Cash":         true,
	"PhonePe":      true,
	"GooglePay":    true,
	"NetBanking":   true,
	"BankTransfer": true,
}

// Payment is an account-level credit against a distributor. It is never tied
// to a single bill; payments net against the aggregate balance.
type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	DistributorID uint            `gorm:"index;not null" json:"distributor_id"`
	Distributor   Distributor     `gorm:"foreignKey:DistributorID" json:"distributor"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate   time.Time       `gorm:"not null" json:"payment_date"`
	PaymentMethod string          `gorm:"size:20;not null" json:"payment_method"`
	ReceiptRef    string          `gorm:"size:100" json:"receipt_ref"`
	Status        string          `gorm:"size:10;default:'active'" json:"status"`
	CreatedByID   uint            `json:"created_by_id"`
	CreatedBy     User            `gorm:"foreignKey:CreatedByID" json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
