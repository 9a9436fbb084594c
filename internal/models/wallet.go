package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet ledger entry types. BILL debits the distributor, PAYMENT credits
// them, and the VOID types reverse a previously recorded entry.
const (
	WalletEntryBill        = "BILL"
	WalletEntryBillVoid    = "BILL_VOID"
	WalletEntryPayment     = "PAYMENT"
	WalletEntryPaymentVoid = "PAYMENT_VOID"
)

// WalletEntry is one row of the append-only per-distributor ledger. Entries
// are never updated or deleted; corrections append a reversing entry. The
// balance is a fold over the entries.
type WalletEntry struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	DistributorID uint            `gorm:"index;not null" json:"distributor_id"`
	EntryType     string          `gorm:"size:20;not null" json:"entry_type"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	ReferenceType string          `gorm:"size:20" json:"reference_type"` // 'bill' or 'payment'
	ReferenceID   uint            `json:"reference_id"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// BalanceFromEntries folds the ledger into a net balance: bills add, payments
// subtract, voids reverse. A negative result means the distributor has been
// overpaid and is owed credit.
func BalanceFromEntries(entries []WalletEntry) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		switch e.EntryType {
		case WalletEntryBill:
			balance = balance.Add(e.Amount)
		case WalletEntryBillVoid:
			balance = balance.Sub(e.Amount)
		case WalletEntryPayment:
			balance = balance.Sub(e.Amount)
		case WalletEntryPaymentVoid:
			balance = balance.Add(e.Amount)
		}
	}
	return balance
}
