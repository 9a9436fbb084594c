package handler

import (
	"net/http"
	"time"

	"github.com/chandragiri4649/milksync-sub000/internal/apperr"
	"github.com/chandragiri4649/milksync-sub000/internal/models"
	"github.com/chandragiri4649/milksync-sub000/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentHandler struct{}

type CreatePaymentRequest struct {
	DistributorID uint            `json:"distributor_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate   time.Time       `json:"payment_date" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	ReceiptRef    string          `json:"receipt_ref"`
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Amount.IsPositive() {
		respondError(c, "payment", "CreatePayment", apperr.NewValidationError("payment amount must be greater than zero"))
		return
	}
	if !models.AllowedPaymentMethods[req.PaymentMethod] {
		respondError(c, "payment", "CreatePayment", apperr.NewValidationError("payment method '"+req.PaymentMethod+"' is not allowed"))
		return
	}

	var distributor models.Distributor
	if err := database.DB.Where("id = ?", req.DistributorID).First(&distributor).Error; err != nil {
		respondError(c, "payment", "CreatePayment", apperr.NewNotFoundError("distributor", req.DistributorID))
		return
	}

	receiptRef := req.ReceiptRef
	if receiptRef == "" {
		receiptRef = uuid.NewString()
	}

	payment := models.Payment{
		DistributorID: req.DistributorID,
		Amount:        req.Amount.Round(2),
		PaymentDate:   req.PaymentDate,
		PaymentMethod: req.PaymentMethod,
		ReceiptRef:    receiptRef,
		Status:        models.PaymentStatusActive,
		CreatedByID:   c.GetUint("userID"),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
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
	})
	if err != nil {
		respondError(c, "payment", "CreatePayment", err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	query := database.DB.Preload("Distributor").Preload("CreatedBy").Order("payment_date desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status = ?", models.PaymentStatusActive)
	}
	if distributorID := c.Query("distributor_id"); distributorID != "" {
		query = query.Where("distributor_id = ?", distributorID)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		respondError(c, "payment", "ListPayments", err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) ListMyPayments(c *gin.Context) {
	distributorID, err := callerDistributorID(c)
	if err != nil {
		respondError(c, "payment", "ListMyPayments", err)
		return
	}

	var payments []models.Payment
	if err := database.DB.Where("distributor_id = ? AND status = ?", distributorID, models.PaymentStatusActive).
		Order("payment_date desc").Find(&payments).Error; err != nil {
		respondError(c, "payment", "ListMyPayments", err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// DeletePayment voids the payment; the distributor's balance rises by the
// voided amount on the next read.
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id := c.Param("id")

	var payment models.Payment
	if err := database.DB.Where("id = ?", id).First(&payment).Error; err != nil {
		respondError(c, "payment", "DeletePayment", apperr.NewNotFoundError("payment", id))
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return models.VoidPayment(tx, &payment)
	})
	if err != nil {
		respondError(c, "payment", "DeletePayment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment voided successfully"})
}
