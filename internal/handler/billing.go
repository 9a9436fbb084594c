package handler

import (
	"net/http"

	"github.com/chandragiri4649/milksync-sub000/config"
	"github.com/chandragiri4649/milksync-sub000/internal/apperr"
	"github.com/chandragiri4649/milksync-sub000/internal/models"
	"github.com/chandragiri4649/milksync-sub000/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type BillingHandler struct{}

func (h *BillingHandler) ListBills(c *gin.Context) {
	query := database.DB.Preload("Distributor").Preload("Items").Order("bill_date desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status = ?", models.BillStatusActive)
	}
	if distributorID := c.Query("distributor_id"); distributorID != "" {
		query = query.Where("distributor_id = ?", distributorID)
	}

	var bills []models.Bill
	if err := query.Find(&bills).Error; err != nil {
		respondError(c, "billing", "ListBills", err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (h *BillingHandler) ListMyBills(c *gin.Context) {
	distributorID, err := callerDistributorID(c)
	if err != nil {
		respondError(c, "billing", "ListMyBills", err)
		return
	}

	var bills []models.Bill
	if err := database.DB.Preload("Items").
		Where("distributor_id = ? AND status = ?", distributorID, models.BillStatusActive).
		Order("bill_date desc").Find(&bills).Error; err != nil {
		respondError(c, "billing", "ListMyBills", err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

// UpsertBillFromOrder regenerates the bill for a delivered order, e.g. after
// a damage correction. Locked bills reject the regeneration.
func (h *BillingHandler) UpsertBillFromOrder(c *gin.Context) {
	id := c.Param("id")

	var order models.Order
	if err := database.DB.Preload("Items").Preload("Items.Product").Preload("DamagedProducts").
		Where("id = ?", id).First(&order).Error; err != nil {
		respondError(c, "billing", "UpsertBillFromOrder", apperr.NewNotFoundError("order", id))
		return
	}

	var bill *models.Bill
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		bill, txErr = models.UpsertBillFromOrder(tx, &order)
		return txErr
	})
	if err != nil {
		respondError(c, "billing", "UpsertBillFromOrder", err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

func (h *BillingHandler) LockBill(c *gin.Context) {
	id := c.Param("id")

	var bill models.Bill
	if err := database.DB.Where("id = ?", id).First(&bill).Error; err != nil {
		respondError(c, "billing", "LockBill", apperr.NewNotFoundError("bill", id))
		return
	}
	if bill.Status == models.BillStatusVoid {
		respondError(c, "billing", "LockBill", apperr.NewConflictError("cannot lock a void bill"))
		return
	}

	if err := database.DB.Model(&bill).Update("locked", true).Error; err != nil {
		respondError(c, "billing", "LockBill", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bill locked successfully"})
}

// UnlockBill is the explicit admin step required before a finalized bill can
// change or be voided.
func (h *BillingHandler) UnlockBill(c *gin.Context) {
	id := c.Param("id")

	var bill models.Bill
	if err := database.DB.Where("id = ?", id).First(&bill).Error; err != nil {
		respondError(c, "billing", "UnlockBill", apperr.NewNotFoundError("bill", id))
		return
	}

	if err := database.DB.Model(&bill).Update("locked", false).Error; err != nil {
		respondError(c, "billing", "UnlockBill", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bill unlocked successfully"})
}

// DeleteBill voids the bill rather than removing the row, so finalized
// financial records never silently disappear.
func (h *BillingHandler) DeleteBill(c *gin.Context) {
	id := c.Param("id")

	var bill models.Bill
	if err := database.DB.Where("id = ?", id).First(&bill).Error; err != nil {
		respondError(c, "billing", "DeleteBill", apperr.NewNotFoundError("bill", id))
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return models.VoidBill(tx, &bill)
	})
	if err != nil {
		respondError(c, "billing", "DeleteBill", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bill voided successfully"})
}

// GetBalance folds the wallet ledger for a distributor and cross-checks it
// against the bill/payment aggregates; divergence is logged for
// reconciliation but the ledger value is authoritative.
func (h *BillingHandler) GetBalance(c *gin.Context) {
	distributorID := c.Param("distributorId")

	// Distributor-role callers may only read their own wallet.
	if c.GetString("role") == models.RoleDistributor {
		own, err := callerDistributorID(c)
		if err != nil {
			respondError(c, "billing", "GetBalance", err)
			return
		}
		if distributorID != "" && distributorID != toParam(own) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
	}

	var distributor models.Distributor
	if err := database.DB.Where("id = ?", distributorID).First(&distributor).Error; err != nil {
		respondError(c, "billing", "GetBalance", apperr.NewNotFoundError("distributor", distributorID))
		return
	}

	var entries []models.WalletEntry
	if err := database.DB.Where("distributor_id = ?", distributor.ID).Order("id asc").Find(&entries).Error; err != nil {
		respondError(c, "billing", "GetBalance", err)
		return
	}
	balance := models.BalanceFromEntries(entries)

	var totalBilled, totalPaid decimal.Decimal
	database.DB.Model(&models.Bill{}).
		Where("distributor_id = ? AND status = ?", distributor.ID, models.BillStatusActive).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&totalBilled)
	database.DB.Model(&models.Payment{}).
		Where("distributor_id = ? AND status = ?", distributor.ID, models.PaymentStatusActive).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalPaid)

	aggregate := totalBilled.Sub(totalPaid)
	if !balance.Equal(aggregate) {
		config.GetLogger().WithFields(logrus.Fields{
			"module":         "billing",
			"funcName":       "GetBalance",
			"distributor_id": distributor.ID,
			"ledger":         balance.String(),
			"aggregate":      aggregate.String(),
		}).Warn("wallet ledger diverges from bill/payment aggregate")
	}

	c.JSON(http.StatusOK, gin.H{
		"distributor_id": distributor.ID,
		"balance":        balance,
		"total_billed":   totalBilled,
		"total_paid":     totalPaid,
	})
}
