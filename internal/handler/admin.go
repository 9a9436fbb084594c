package handler

import (
	"net/http"

	"github.com/chandragiri4649/milksync-sub000/internal/apperr"
	"github.com/chandragiri4649/milksync-sub000/internal/models"
	"github.com/chandragiri4649/milksync-sub000/internal/utils"
	"github.com/chandragiri4649/milksync-sub000/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AdminHandler struct{}

type CreateDistributorRequest struct {
	CompanyName   string `json:"company_name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Mobile        string `json:"mobile"`
	Address       string `json:"address"`
}

func (h *AdminHandler) CreateDistributor(c *gin.Context) {
	var req CreateDistributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	distributor := models.Distributor{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Mobile:        req.Mobile,
		Address:       req.Address,
	}

	if err := database.DB.Create(&distributor).Error; err != nil {
		respondError(c, "admin", "CreateDistributor", err)
		return
	}

	c.JSON(http.StatusCreated, distributor)
}

func (h *AdminHandler) ListDistributors(c *gin.Context) {
	var distributors []models.Distributor
	if err := database.DB.Find(&distributors).Error; err != nil {
		respondError(c, "admin", "ListDistributors", err)
		return
	}
	c.JSON(http.StatusOK, distributors)
}

func (h *AdminHandler) GetDistributor(c *gin.Context) {
	id := c.Param("id")
	var distributor models.Distributor
	if err := database.DB.Preload("Products").Where("id = ?", id).First(&distributor).Error; err != nil {
		respondError(c, "admin", "GetDistributor", apperr.NewNotFoundError("distributor", id))
		return
	}
	c.JSON(http.StatusOK, distributor)
}

func (h *AdminHandler) UpdateDistributor(c *gin.Context) {
	id := c.Param("id")
	var req CreateDistributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := database.DB.Model(&models.Distributor{}).Where("id = ?", id).Updates(map[string]interface{}{
		"company_name":   req.CompanyName,
		"contact_person": req.ContactPerson,
		"mobile":         req.Mobile,
		"address":        req.Address,
	})
	if result.Error != nil {
		respondError(c, "admin", "UpdateDistributor", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, "admin", "UpdateDistributor", apperr.NewNotFoundError("distributor", id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Distributor updated successfully"})
}

func (h *AdminHandler) DeleteDistributor(c *gin.Context) {
	id := c.Param("id")
	if err := database.DB.Delete(&models.Distributor{}, "id = ?", id).Error; err != nil {
		respondError(c, "admin", "DeleteDistributor", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Distributor deleted successfully"})
}

type CreateUserRequest struct {
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required"`
	Role          string `json:"role" binding:"required"`
	Mobile        string `json:"mobile"`
	DistributorID *uint  `json:"distributor_id"`
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var role models.Role
	if err := database.DB.Where("name = ?", req.Role).First(&role).Error; err != nil {
		respondError(c, "admin", "CreateUser", apperr.NewValidationError("unknown role '"+req.Role+"'"))
		return
	}

	// Distributor logins must point at the distributor they act for.
	if req.Role == models.RoleDistributor {
		if req.DistributorID == nil {
			respondError(c, "admin", "CreateUser", apperr.NewValidationError("distributor_id is required for distributor users"))
			return
		}
		var distributor models.Distributor
		if err := database.DB.Where("id = ?", *req.DistributorID).First(&distributor).Error; err != nil {
			respondError(c, "admin", "CreateUser", apperr.NewNotFoundError("distributor", *req.DistributorID))
			return
		}
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, "admin", "CreateUser", err)
		return
	}

	user := models.User{
		Username:      req.Username,
		PasswordHash:  hashedPassword,
		RoleID:        role.ID,
		Mobile:        req.Mobile,
		DistributorID: req.DistributorID,
		IsActive:      true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user (username might be duplicate)"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user_id": user.ID})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Preload("Role").Preload("Distributor").Find(&users).Error; err != nil {
		respondError(c, "admin", "ListUsers", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		IsActive       bool   `json:"is_active"`
		InactiveReason string `json:"inactive_reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":       req.IsActive,
		"inactive_reason": req.InactiveReason,
	}).Error; err != nil {
		respondError(c, "admin", "UpdateUserStatus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

func (h *AdminHandler) ResetUserPassword(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, _ := utils.HashPassword(req.Password)
	if err := database.DB.Model(&models.User{}).Where("id = ?", id).Update("password_hash", hashedPassword).Error; err != nil {
		respondError(c, "admin", "ResetUserPassword", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

func (h *AdminHandler) GetLoginHistory(c *gin.Context) {
	var history []models.LoginHistory
	if err := database.DB.Preload("User").Preload("User.Role").Order("login_time desc").Limit(100).Find(&history).Error; err != nil {
		respondError(c, "admin", "GetLoginHistory", err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// dashboardSummary assembles the stats payload. Money stays in decimal end
// to end so the outstanding figure is exact.
func dashboardSummary(totalDistributors, pendingOrders, deliveredOrders, activeBills int64, totalBilled, totalPaid decimal.Decimal) gin.H {
	return gin.H{
		"total_distributors": totalDistributors,
		"pending_orders":     pendingOrders,
		"delivered_orders":   deliveredOrders,
		"active_bills":       activeBills,
		"total_billed":       totalBilled,
		"total_paid":         totalPaid,
		"outstanding":        totalBilled.Sub(totalPaid),
	}
}

func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	var totalDistributors int64
	var pendingOrders int64
	var deliveredOrders int64
	var activeBills int64

	database.DB.Model(&models.Distributor{}).Count(&totalDistributors)
	database.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&pendingOrders)
	database.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusDelivered).Count(&deliveredOrders)
	database.DB.Model(&models.Bill{}).Where("status = ?", models.BillStatusActive).Count(&activeBills)

	var totalBilled, totalPaid decimal.Decimal
	database.DB.Model(&models.Bill{}).Where("status = ?", models.BillStatusActive).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&totalBilled)
	database.DB.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusActive).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalPaid)

	c.JSON(http.StatusOK, dashboardSummary(totalDistributors, pendingOrders, deliveredOrders, activeBills, totalBilled, totalPaid))
}
