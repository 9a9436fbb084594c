package models_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/chandragiri4649/milksync-sub000/config"
	"github.com/chandragiri4649/milksync-sub000/internal/apperr"
	"github.com/chandragiri4649/milksync-sub000/internal/models"
	"github.com/chandragiri4649/milksync-sub000/pkg/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// End-to-end billing workflow against a real database. Gated because it
// needs a reachable MySQL configured through the usual DB_* env vars.
func TestBillingWorkflow_DeliverThenBill(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 and DB_* env vars to run integration tests")
	}

	config.LoadConfig()
	database.Connect()
	require.NoError(t, database.DB.AutoMigrate(
		&models.Distributor{}, &models.Product{}, &models.Order{}, &models.OrderItem{},
		&models.DamagedProduct{}, &models.Bill{}, &models.BillItem{}, &models.Payment{},
		&models.WalletEntry{},
	))

	distributor := models.Distributor{CompanyName: "Integration Dairy"}
	require.NoError(t, database.DB.Create(&distributor).Error)

	milk := models.Product{DistributorID: distributor.ID, Name: "Toned Milk 500ml", PricePerPack: decimal.NewFromInt(50)}
	curd := models.Product{DistributorID: distributor.ID, Name: "Curd 1kg", PricePerPack: decimal.NewFromInt(20)}
	require.NoError(t, database.DB.Create(&milk).Error)
	require.NoError(t, database.DB.Create(&curd).Error)

	order := models.Order{
		DistributorID: distributor.ID,
		OrderDate:     time.Now(),
		Status:        models.OrderStatusPending,
		Items: []models.OrderItem{
			{ProductID: milk.ID, Quantity: decimal.NewFromInt(10), Unit: "pack"},
			{ProductID: curd.ID, Quantity: decimal.NewFromInt(5), Unit: "pack"},
		},
	}
	require.NoError(t, database.DB.Create(&order).Error)

	require.NoError(t, order.MarkDelivered(time.Now()))
	order.DamagedProducts = []models.DamagedProduct{
		{OrderID: order.ID, ProductName: milk.Name, DamagedQuantity: decimal.NewFromInt(2)},
	}
	require.NoError(t, database.DB.Create(&order.DamagedProducts).Error)
	require.NoError(t, database.DB.Model(&models.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{"status": order.Status, "locked": order.Locked, "delivery_date": order.DeliveryDate}).Error)

	require.NoError(t, database.DB.Preload("Items").Preload("Items.Product").Preload("DamagedProducts").
		Where("id = ?", order.ID).First(&order).Error)

	var bill *models.Bill
	require.NoError(t, database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		bill, err = models.UpsertBillFromOrder(tx, &order)
		return err
	}))

	// (10-2)*50 + 5*20 = 500
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(500)), bill.TotalAmount.String())
	assert.Len(t, bill.Items, 2)

	// The ledger carries the bill.
	var entries []models.WalletEntry
	require.NoError(t, database.DB.Where("distributor_id = ?", distributor.ID).Order("id asc").Find(&entries).Error)
	assert.True(t, models.BalanceFromEntries(entries).Equal(decimal.NewFromInt(500)))

	// Locking blocks regeneration.
	require.NoError(t, database.DB.Model(bill).Update("locked", true).Error)
	require.NoError(t, database.DB.Where("id = ?", bill.ID).First(bill).Error)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		_, txErr := models.UpsertBillFromOrder(tx, &order)
		return txErr
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// Payment nets against the balance.
	payment := models.Payment{
		DistributorID: distributor.ID,
		Amount:        decimal.NewFromInt(800),
		PaymentDate:   time.Now(),
		PaymentMethod: "Cash",
		Status:        models.PaymentStatusActive,
	}
	require.NoError(t, database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return tx.Create(&models.WalletEntry{
			DistributorID: payment.DistributorID,
			EntryType:     models.WalletEntryPayment,
			Amount:        payment.Amount,
			ReferenceType: "payment",
			ReferenceID:   payment.ID,
		}).Error
	}))

	require.NoError(t, database.DB.Where("distributor_id = ?", distributor.ID).Order("id asc").Find(&entries).Error)
	assert.True(t, models.BalanceFromEntries(entries).Equal(decimal.NewFromInt(-300)))

	// Voiding the payment restores the balance.
	require.NoError(t, database.DB.Transaction(func(tx *gorm.DB) error {
		return models.VoidPayment(tx, &payment)
	}))
	require.NoError(t, database.DB.Where("distributor_id = ?", distributor.ID).Order("id asc").Find(&entries).Error)
	assert.True(t, models.BalanceFromEntries(entries).Equal(decimal.NewFromInt(500)))
}
