package handlers

import (
	"errors"
	"net/http"

	"pharmacy_pos_backend/internal/services"
	"pharmacy_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler serves the owner dashboard and the single-item shortcut
// routes.
type InventoryHandler struct {
	inventoryService services.InventoryService
	authService      services.AuthService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService, as services.AuthService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is, authService: as}
}

// dashboardView assembles the dashboard payload: shop identity plus the full
// unfiltered inventory.
func (h *InventoryHandler) dashboardView(c *gin.Context, shopID string) {
	shop, err := h.authService.GetShop(shopID)
	if err != nil {
		utils.LogError(err, "dashboardView: Error from authService.GetShop")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load shop.", "Internal error"))
		return
	}
	items, err := h.inventoryService.ListItems(shopID)
	if err != nil {
		utils.LogError(err, "dashboardView: Error from inventoryService.ListItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load inventory.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop_name": shop.Name, "shop_id": shop.ShopID, "stocks": items})
}

// Dashboard renders the owner's inventory.
func (h *InventoryHandler) Dashboard(c *gin.Context) {
	shopID, ok := currentShopID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	h.dashboardView(c, shopID)
}

// DashboardForm accepts the dashboard's three mutation forms. The form_type
// field selects the action: add, update_stock or update_price.
func (h *InventoryHandler) DashboardForm(c *gin.Context) {
	shopID, ok := currentShopID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	formType := c.PostForm("form_type")
	medName := c.PostForm("med_name")

	var err error
	switch formType {
	case "add":
		var stock int
		var price float64
		stock, err = utils.ParseStockCount(c.PostForm("stock"))
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Stock must be an integer.", err.Error()))
			return
		}
		price, err = utils.ParsePrice(c.PostForm("price"))
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Price must be a number.", err.Error()))
			return
		}
		_, err = h.inventoryService.AddItem(shopID, medName, stock, price)

	case "update_stock":
		var stock int
		stock, err = utils.ParseStockCount(c.PostForm("stock"))
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Stock must be an integer.", err.Error()))
			return
		}
		err = h.inventoryService.SetStock(shopID, medName, stock)

	case "update_price":
		var price float64
		price, err = utils.ParsePrice(c.PostForm("price"))
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Price must be a number.", err.Error()))
			return
		}
		err = h.inventoryService.SetPrice(shopID, medName, price)

	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Unknown form_type.", formType))
		return
	}

	if err != nil {
		if errors.Is(err, services.ErrEmptyMedName) || errors.Is(err, services.ErrNegativeValue) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
			return
		}
		utils.LogError(err, "DashboardForm: inventory mutation failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update inventory.", "Internal error"))
		return
	}

	h.dashboardView(c, shopID)
}

// InventoryList is the read-only rendered list of the owner's inventory.
func (h *InventoryHandler) InventoryList(c *gin.Context) {
	shopID, ok := currentShopID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	shop, err := h.authService.GetShop(shopID)
	if err != nil {
		utils.LogError(err, "InventoryList: Error from authService.GetShop")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load shop.", "Internal error"))
		return
	}
	items, err := h.inventoryService.ListItems(shopID)
	if err != nil {
		utils.LogError(err, "InventoryList: Error from inventoryService.ListItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load inventory.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": gin.H{"name": shop.Name, "shop_id": shop.ShopID}, "items": items})
}

// singleItemAction runs one shortcut mutation and bounces back to the
// dashboard, matching the browser flow these GET routes were built for.
func (h *InventoryHandler) singleItemAction(c *gin.Context, action func(shopID, medName string) error, logContext string) {
	shopID, ok := currentShopID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if err := action(shopID, c.Param("med_name")); err != nil {
		if errors.Is(err, services.ErrEmptyMedName) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
			return
		}
		utils.LogError(err, logContext)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update inventory.", "Internal error"))
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// IncreaseStockOne is the +1 stock shortcut.
func (h *InventoryHandler) IncreaseStockOne(c *gin.Context) {
	h.singleItemAction(c, h.inventoryService.IncrementStock, "IncreaseStockOne: increment failed")
}

// DecreaseStockOne is the -1 stock shortcut, floored at zero.
func (h *InventoryHandler) DecreaseStockOne(c *gin.Context) {
	h.singleItemAction(c, h.inventoryService.DecrementStock, "DecreaseStockOne: decrement failed")
}

// DeleteMedicine removes one medicine from the owner's inventory.
func (h *InventoryHandler) DeleteMedicine(c *gin.Context) {
	h.singleItemAction(c, h.inventoryService.DeleteItem, "DeleteMedicine: delete failed")
}
