package handler

import (
	"net/http"
	"time"

	"github.com/chandragiri4649/milksync-sub000/internal/apperr"
	"github.com/chandragiri4649/milksync-sub000/internal/models"
	"github.com/chandragiri4649/milksync-sub000/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderHandler struct{}

type OrderItemRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Unit      string          `json:"unit" binding:"required"`
}

type CreateOrderRequest struct {
	DistributorID uint               `json:"distributor_id" binding:"required"`
	OrderDate     time.Time          `json:"order_date" binding:"required"`
	Items         []OrderItemRequest `json:"items" binding:"required"`
}

// validateOrderItems checks every line against the item invariants and
// confirms each product belongs to the ordered-from distributor.
func validateOrderItems(distributorID uint, items []OrderItemRequest) ([]models.OrderItem, error) {
	if len(items) == 0 {
		return nil, apperr.NewValidationError("order must contain at least one item")
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if err := models.ValidateOrderItem(item.Quantity, item.Unit); err != nil {
			return nil, err
		}

		var product models.Product
		if err := database.DB.Where("id = ?", item.ProductID).First(&product).Error; err != nil {
			return nil, apperr.NewNotFoundError("product", item.ProductID)
		}
		if product.DistributorID != distributorID {
			return nil, apperr.NewValidationError("product does not belong to this distributor")
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
		})
	}
	return orderItems, nil
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := currentUser(c)
	if err != nil {
		respondError(c, "order", "CreateOrder", err)
		return
	}

	var distributor models.Distributor
	if err := database.DB.Where("id = ?", req.DistributorID).First(&distributor).Error; err != nil {
		respondError(c, "order", "CreateOrder", apperr.NewNotFoundError("distributor", req.DistributorID))
		return
	}

	if err := models.ValidateOrderDate(req.OrderDate, time.Now()); err != nil {
		respondError(c, "order", "CreateOrder", err)
		return
	}

	items, err := validateOrderItems(req.DistributorID, req.Items)
	if err != nil {
		respondError(c, "order", "CreateOrder", err)
		return
	}

	order := models.Order{
		DistributorID: req.DistributorID,
		OrderDate:     req.OrderDate,
		Status:        models.OrderStatusPending,
		OrderedByID:   user.ID,
		UpdatedByRole: user.Role.Name,
		UpdatedByID:   user.ID,
		UpdatedByName: user.Username,
		Items:         items,
	}

	if err := database.DB.Create(&order).Error; err != nil {
		respondError(c, "order", "CreateOrder", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order_id": order.ID})
}

func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID := c.GetUint("userID")
	var orders []models.Order
	if err := database.DB.Preload("Distributor").Preload("Items").Preload("Items.Product").
		Where("ordered_by_id = ?", userID).Order("order_date desc").Find(&orders).Error; err != nil {
		respondError(c, "order", "ListMyOrders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	query := database.DB.Preload("Distributor").Preload("OrderedBy").Preload("Items").Preload("Items.Product").
		Preload("DamagedProducts").Order("order_date desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if distributorID := c.Query("distributor_id"); distributorID != "" {
		query = query.Where("distributor_id = ?", distributorID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		respondError(c, "order", "ListOrders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	var order models.Order
	if err := database.DB.Preload("Distributor").Preload("OrderedBy").Preload("Items").Preload("Items.Product").
		Preload("DamagedProducts").Where("id = ?", id).First(&order).Error; err != nil {
		respondError(c, "order", "GetOrder", apperr.NewNotFoundError("order", id))
		return
	}
	c.JSON(http.StatusOK, order)
}

// Orders to be delivered tomorrow, still pending.
func (h *OrderHandler) ListPendingForTomorrow(c *gin.Context) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	end := start.AddDate(0, 0, 1)

	var orders []models.Order
	if err := database.DB.Preload("Distributor").Preload("Items").Preload("Items.Product").
		Where("status = ? AND order_date >= ? AND order_date < ?", models.OrderStatusPending, start, end).
		Order("order_date asc").Find(&orders).Error; err != nil {
		respondError(c, "order", "ListPendingForTomorrow", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

type UpdateOrderRequest struct {
	OrderDate time.Time          `json:"order_date" binding:"required"`
	Items     []OrderItemRequest `json:"items" binding:"required"`
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id := c.Param("id")
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := currentUser(c)
	if err != nil {
		respondError(c, "order", "UpdateOrder", err)
		return
	}

	var order models.Order
	if err := database.DB.Where("id = ?", id).First(&order).Error; err != nil {
		respondError(c, "order", "UpdateOrder", apperr.NewNotFoundError("order", id))
		return
	}

	if err := order.CanEdit(); err != nil {
		respondError(c, "order", "UpdateOrder", err)
		return
	}

	if err := models.ValidateOrderDate(req.OrderDate, time.Now()); err != nil {
		respondError(c, "order", "UpdateOrder", err)
		return
	}

	items, err := validateOrderItems(order.DistributorID, req.Items)
	if err != nil {
		respondError(c, "order", "UpdateOrder", err)
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		return tx.Model(&order).Updates(map[string]interface{}{
			"order_date":      req.OrderDate,
			"updated_by_role": user.Role.Name,
			"updated_by_id":   user.ID,
			"updated_by_name": user.Username,
		}).Error
	})
	if err != nil {
		respondError(c, "order", "UpdateOrder", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order updated successfully"})
}

// deleteOrderByID enforces the delete guard: only pending, unbilled orders
// may go away. Shared by single and bulk delete.
func deleteOrderByID(id uint) error {
	var order models.Order
	if err := database.DB.Where("id = ?", id).First(&order).Error; err != nil {
		return apperr.NewNotFoundError("order", id)
	}

	if order.Status != models.OrderStatusPending {
		return apperr.NewConflictError("delivered orders cannot be deleted")
	}

	var billCount int64
	database.DB.Model(&models.Bill{}).Where("order_id = ? AND status = ?", order.ID, models.BillStatusActive).Count(&billCount)
	if billCount > 0 {
		return apperr.NewConflictError("order has an active bill; void the bill first")
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.DamagedProduct{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	var uri struct {
		ID uint `uri:"id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := deleteOrderByID(uri.ID); err != nil {
		respondError(c, "order", "DeleteOrder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

type BulkDeleteRequest struct {
	OrderIDs []uint `json:"order_ids" binding:"required"`
}

type BulkItemResult struct {
	OrderID uint   `json:"order_id"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

// BulkDeleteOrders executes each delete independently and reports a
// structured per-item outcome so callers can reconcile partial failures.
func (h *OrderHandler) BulkDeleteOrders(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := make([]BulkItemResult, 0, len(req.OrderIDs))
	succeeded := 0
	for _, id := range req.OrderIDs {
		if err := deleteOrderByID(id); err != nil {
			results = append(results, BulkItemResult{OrderID: id, OK: false, Error: err.Error()})
			continue
		}
		results = append(results, BulkItemResult{OrderID: id, OK: true})
		succeeded++
	}

	c.JSON(http.StatusOK, gin.H{
		"succeeded": succeeded,
		"failed":    len(req.OrderIDs) - succeeded,
		"results":   results,
	})
}

type DamagedProductRequest struct {
	ProductName     string          `json:"product_name" binding:"required"`
	DamagedQuantity decimal.Decimal `json:"damaged_quantity" binding:"required"`
	Notes           string          `json:"notes"`
}

type DeliverOrderRequest struct {
	DamagedProducts []DamagedProductRequest `json:"damaged_products"`
}

// DeliverOrder transitions pending -> delivered and generates the bill in the
// same transaction, so a crash cannot leave a delivered order unbilled.
func (h *OrderHandler) DeliverOrder(c *gin.Context) {
	id := c.Param("id")
	var req DeliverOrderRequest
	// Damage payload is optional; an empty body means a clean delivery.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	user, err := currentUser(c)
	if err != nil {
		respondError(c, "order", "DeliverOrder", err)
		return
	}

	var order models.Order
	if err := database.DB.Preload("Items").Preload("Items.Product").Preload("DamagedProducts").
		Where("id = ?", id).First(&order).Error; err != nil {
		respondError(c, "order", "DeliverOrder", apperr.NewNotFoundError("order", id))
		return
	}

	damaged := make([]models.DamagedProduct, 0, len(req.DamagedProducts))
	for _, d := range req.DamagedProducts {
		damaged = append(damaged, models.DamagedProduct{
			OrderID:         order.ID,
			ProductName:     d.ProductName,
			DamagedQuantity: d.DamagedQuantity,
			Notes:           d.Notes,
		})
	}
	if err := models.ValidateDamagedProducts(order.Items, damaged); err != nil {
		respondError(c, "order", "DeliverOrder", err)
		return
	}

	if err := order.MarkDelivered(time.Now()); err != nil {
		respondError(c, "order", "DeliverOrder", err)
		return
	}

	var bill *models.Bill
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if len(damaged) > 0 {
			if err := tx.Create(&damaged).Error; err != nil {
				return err
			}
		}
		order.DamagedProducts = damaged

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"status":          order.Status,
			"locked":          order.Locked,
			"delivery_date":   order.DeliveryDate,
			"updated_by_role": user.Role.Name,
			"updated_by_id":   user.ID,
			"updated_by_name": user.Username,
		}).Error; err != nil {
			return err
		}

		var txErr error
		bill, txErr = models.UpsertBillFromOrder(tx, &order)
		return txErr
	})
	if err != nil {
		respondError(c, "order", "DeliverOrder", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order delivered successfully",
		"bill_id": bill.ID,
		"bill_no": bill.BillNo,
	})
}
