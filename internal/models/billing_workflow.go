package models

import (
	"fmt"
	"time"

	"github.com/chandragiri4649/milksync-sub000/internal/apperr"

	"gorm.io/gorm"
)

// NextBillNo generates a bill number: MS-YYYYMMDD-SEQ.
func NextBillNo(tx *gorm.DB) string {
	dateStr := time.Now().Format("20060102")

	var lastBill Bill
	tx.Order("id desc").First(&lastBill)

	newID := lastBill.ID + 1 // Simple increment strategy for now
	return fmt.Sprintf("MS-%s-%05d", dateStr, newID)
}

// UpsertBillFromOrder derives the bill for a delivered order inside tx. An
// existing unlocked bill is replaced (its ledger entry reversed first); a
// locked bill rejects the operation. The matching BILL wallet entry is
// appended in the same transaction so the ledger never drifts from the bill.
//
// The order must carry Items (with Product) and DamagedProducts.
func UpsertBillFromOrder(tx *gorm.DB, order *Order) (*Bill, error) {
	if order.Status != OrderStatusDelivered {
		return nil, apperr.NewConflictError("order is not delivered")
	}

	billItems, total := ComputeBillItems(order.Items, order.DamagedProducts)

	var existing Bill
	err := tx.Where("order_id = ? AND status = ?", order.ID, BillStatusActive).First(&existing).Error
	switch {
	case err == nil:
		if existing.Locked {
			return nil, apperr.NewConflictError("bill is locked")
		}

		// Reverse the old ledger entry before the amounts change.
		if err := tx.Create(&WalletEntry{
			DistributorID: existing.DistributorID,
			EntryType:     WalletEntryBillVoid,
			Amount:        existing.TotalAmount,
			ReferenceType: "bill",
			ReferenceID:   existing.ID,
		}).Error; err != nil {
			return nil, err
		}

		if err := tx.Where("bill_id = ?", existing.ID).Delete(&BillItem{}).Error; err != nil {
			return nil, err
		}

		existing.BillDate = time.Now()
		existing.TotalAmount = total
		existing.Items = billItems
		if err := tx.Save(&existing).Error; err != nil {
			return nil, err
		}

		if err := tx.Create(&WalletEntry{
			DistributorID: existing.DistributorID,
			EntryType:     WalletEntryBill,
			Amount:        total,
			ReferenceType: "bill",
			ReferenceID:   existing.ID,
		}).Error; err != nil {
			return nil, err
		}
		return &existing, nil

	case err == gorm.ErrRecordNotFound:
		bill := Bill{
			BillNo:        NextBillNo(tx),
			OrderID:       order.ID,
			DistributorID: order.DistributorID,
			BillDate:      time.Now(),
			TotalAmount:   total,
			Locked:        false,
			Status:        BillStatusActive,
			Items:         billItems,
		}
		if err := tx.Create(&bill).Error; err != nil {
			return nil, err
		}

		if err := tx.Create(&WalletEntry{
			DistributorID: bill.DistributorID,
			EntryType:     WalletEntryBill,
			Amount:        total,
			ReferenceType: "bill",
			ReferenceID:   bill.ID,
		}).Error; err != nil {
			return nil, err
		}
		return &bill, nil

	default:
		return nil, err
	}
}

// VoidBill tombstones a bill instead of deleting it. Locked bills must be
// unlocked first. Appends the reversing ledger entry.
func VoidBill(tx *gorm.DB, bill *Bill) error {
	if bill.Locked {
		return apperr.NewConflictError("bill is locked; unlock before voiding")
	}
	if bill.Status == BillStatusVoid {
		return apperr.NewConflictError("bill is already void")
	}

	bill.Status = BillStatusVoid
	if err := tx.Model(bill).Update("status", BillStatusVoid).Error; err != nil {
		return err
	}

	return tx.Create(&WalletEntry{
		DistributorID: bill.DistributorID,
		EntryType:     WalletEntryBillVoid,
		Amount:        bill.TotalAmount,
		ReferenceType: "bill",
		ReferenceID:   bill.ID,
	}).Error
}

// VoidPayment tombstones a payment and appends the reversing ledger entry,
// raising the distributor's balance by the payment amount on the next read.
func VoidPayment(tx *gorm.DB, payment *Payment) error {
	if payment.Status == PaymentStatusVoid {
		return apperr.NewConflictError("payment is already void")
	}

	payment.Status = PaymentStatusVoid
	if err := tx.Model(payment).Update("status", PaymentStatusVoid).Error; err != nil {
		return err
	}

	return tx.Create(&WalletEntry{
		DistributorID: payment.DistributorID,
		EntryType:     WalletEntryPaymentVoid,
		Amount:        payment.Amount,
		ReferenceType: "payment",
		ReferenceID:   payment.ID,
	}).Error
}
