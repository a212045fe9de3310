package handlers

import (
	"net/http"

	"pharmacy_pos_backend/internal/services"
	"pharmacy_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// BillingHandler serves the billing form.
type BillingHandler struct {
	billingService services.BillingService
	authService    services.AuthService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(bs services.BillingService, as services.AuthService) *BillingHandler {
	return &BillingHandler{billingService: bs, authService: as}
}

// ShowBilling lists the shop's in-stock items with prices, for constructing
// a bill.
func (h *BillingHandler) ShowBilling(c *gin.Context) {
	shopID, ok := currentShopID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	shop, err := h.authService.GetShop(shopID)
	if err != nil {
		utils.LogError(err, "ShowBilling: Error from authService.GetShop")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load shop.", "Internal error"))
		return
	}
	items, err := h.billingService.AvailableItems(shopID)
	if err != nil {
		utils.LogError(err, "ShowBilling: Error from billingService.AvailableItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load available items.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop_name": shop.Name, "shop_id": shop.ShopID, "available_items": items})
}

// ApplyBilling accepts the billing form's parallel med_name[]/quantity[]
// lists, pairs them positionally and applies the decrements. Pairs with an
// empty name or quantity are skipped, as the form allows blank rows.
func (h *BillingHandler) ApplyBilling(c *gin.Context) {
	shopID, ok := currentShopID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	medNames := c.PostFormArray("med_name[]")
	quantities := c.PostFormArray("quantity[]")

	n := len(medNames)
	if len(quantities) < n {
		n = len(quantities)
	}

	lines := make([]services.BillLine, 0, n)
	for i := 0; i < n; i++ {
		if medNames[i] == "" || quantities[i] == "" {
			continue
		}
		qty, err := utils.ParseStockCount(quantities[i])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Quantity must be an integer.", err.Error()))
			return
		}
		lines = append(lines, services.BillLine{MedName: medNames[i], Quantity: qty})
	}

	if err := h.billingService.ApplyBill(shopID, lines); err != nil {
		utils.LogError(err, "ApplyBilling: Error from billingService.ApplyBill")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to apply bill.", "Internal error"))
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}
