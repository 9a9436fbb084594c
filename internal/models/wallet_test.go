package models_test

import (
	"testing"

	"github.com/chandragiri4649/milksync-sub000/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBalanceFromEntries_Empty(t *testing.T) {
	assert.True(t, models.BalanceFromEntries(nil).IsZero())
}

func TestBalanceFromEntries_BillsMinusPayments(t *testing.T) {
	entries := []models.WalletEntry{
		{EntryType: models.WalletEntryBill, Amount: decimal.NewFromInt(900)},
		{EntryType: models.WalletEntryBill, Amount: decimal.NewFromInt(600)},
		{EntryType: models.WalletEntryPayment, Amount: decimal.NewFromInt(1000)},
	}
	assert.True(t, models.BalanceFromEntries(entries).Equal(decimal.NewFromInt(500)))
}

func TestBalanceFromEntries_OverpaymentGoesNegative(t *testing.T) {
	// Bills of 1500 against payments of 1800: the distributor is owed 300.
	entries := []models.WalletEntry{
		{EntryType: models.WalletEntryBill, Amount: decimal.NewFromInt(1500)},
		{EntryType: models.WalletEntryPayment, Amount: decimal.NewFromInt(1800)},
	}
	assert.True(t, models.BalanceFromEntries(entries).Equal(decimal.NewFromInt(-300)))
}

func TestBalanceFromEntries_VoidsReverse(t *testing.T) {
	entries := []models.WalletEntry{
		{EntryType: models.WalletEntryBill, Amount: decimal.NewFromInt(700)},
		{EntryType: models.WalletEntryPayment, Amount: decimal.NewFromInt(200)},
	}
	before := models.BalanceFromEntries(entries)

	// Voiding the payment of 200 raises the balance by 200.
	entries = append(entries, models.WalletEntry{
		EntryType: models.WalletEntryPaymentVoid,
		Amount:    decimal.NewFromInt(200),
	})
	after := models.BalanceFromEntries(entries)
	assert.True(t, after.Sub(before).Equal(decimal.NewFromInt(200)))

	// Voiding the bill cancels it entirely.
	entries = append(entries, models.WalletEntry{
		EntryType: models.WalletEntryBillVoid,
		Amount:    decimal.NewFromInt(700),
	})
	assert.True(t, models.BalanceFromEntries(entries).IsZero())
}
