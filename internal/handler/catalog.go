package handler

import (
	"net/http"

	"github.com/chandragiri4649/milksync-sub000/internal/apperr"
	"github.com/chandragiri4649/milksync-sub000/internal/models"
	"github.com/chandragiri4649/milksync-sub000/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct{}

// catalogOwnershipDenied reports whether the caller may not manage the given
// distributor's catalog. Distributor-role users are confined to their own;
// other roles pass through to the route-level gate.
func catalogOwnershipDenied(c *gin.Context, distributorID uint) bool {
	if c.GetString("role") != models.RoleDistributor {
		return false
	}
	own, err := callerDistributorID(c)
	return err != nil || own != distributorID
}

func (h *CatalogHandler) ListProductsByDistributor(c *gin.Context) {
	distributorID := c.Param("id")
	var products []models.Product
	if err := database.DB.Where("distributor_id = ?", distributorID).Find(&products).Error; err != nil {
		respondError(c, "catalog", "ListProductsByDistributor", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

type CreateProductRequest struct {
	DistributorID uint            `json:"distributor_id" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	PackQuantity  int             `json:"pack_quantity"`
	PackUnit      string          `json:"pack_unit"`
	PricePerPack  decimal.Decimal `json:"price_per_pack"`
	PricePerUnit  decimal.Decimal `json:"price_per_unit"`
	UnitsPerPack  int             `json:"units_per_pack"`
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if catalogOwnershipDenied(c, req.DistributorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var distributor models.Distributor
	if err := database.DB.Where("id = ?", req.DistributorID).First(&distributor).Error; err != nil {
		respondError(c, "catalog", "CreateProduct", apperr.NewNotFoundError("distributor", req.DistributorID))
		return
	}

	product := models.Product{
		DistributorID: req.DistributorID,
		Name:          req.Name,
		PackQuantity:  req.PackQuantity,
		PackUnit:      req.PackUnit,
		PricePerPack:  req.PricePerPack,
		PricePerUnit:  req.PricePerUnit,
		UnitsPerPack:  req.UnitsPerPack,
	}

	// Price must resolve to a per-pack cost one way or the other.
	if !product.HasDerivablePrice() {
		respondError(c, "catalog", "CreateProduct",
			apperr.NewValidationError("product price must be given per pack, or per unit with units_per_pack"))
		return
	}

	if err := database.DB.Create(&product).Error; err != nil {
		respondError(c, "catalog", "CreateProduct", err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

type UpdateProductRequest struct {
	Name         string          `json:"name" binding:"required"`
	PackQuantity int             `json:"pack_quantity"`
	PackUnit     string          `json:"pack_unit"`
	PricePerPack decimal.Decimal `json:"price_per_pack"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	UnitsPerPack int             `json:"units_per_pack"`
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := database.DB.Where("id = ?", id).First(&product).Error; err != nil {
		respondError(c, "catalog", "UpdateProduct", apperr.NewNotFoundError("product", id))
		return
	}

	if catalogOwnershipDenied(c, product.DistributorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	product.Name = req.Name
	product.PackQuantity = req.PackQuantity
	product.PackUnit = req.PackUnit
	product.PricePerPack = req.PricePerPack
	product.PricePerUnit = req.PricePerUnit
	product.UnitsPerPack = req.UnitsPerPack

	if !product.HasDerivablePrice() {
		respondError(c, "catalog", "UpdateProduct",
			apperr.NewValidationError("product price must be given per pack, or per unit with units_per_pack"))
		return
	}

	if err := database.DB.Save(&product).Error; err != nil {
		respondError(c, "catalog", "UpdateProduct", err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := database.DB.Where("id = ?", id).First(&product).Error; err != nil {
		respondError(c, "catalog", "DeleteProduct", apperr.NewNotFoundError("product", id))
		return
	}

	if catalogOwnershipDenied(c, product.DistributorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	// Soft delete: bills already generated keep the product name they captured.
	if err := database.DB.Delete(&product).Error; err != nil {
		respondError(c, "catalog", "DeleteProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
