package handlers

import (
	"errors"
	"net/http"

	"pharmacy_pos_backend/internal/middleware"
	"pharmacy_pos_backend/internal/services"
	"pharmacy_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// currentShopID returns the authenticated shop id injected by the session
// middleware. Owner handlers trust only this value, never client input.
func currentShopID(c *gin.Context) (string, bool) {
	raw, exists := c.Get(middleware.ShopIDKey)
	if !exists {
		return "", false
	}
	shopID, ok := raw.(string)
	return shopID, ok && shopID != ""
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookieName, token, int(utils.SessionTTL().Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
}

// ShowLogin describes the login form for clients that GET the route.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": []string{"shop_id", "password"}, "submit": "POST /login"})
}

// Login authenticates a shop and establishes the session binding. Unknown
// shop id and wrong password answer identically.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid login payload.", err.Error()))
		return
	}

	authResp, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid shop id or password.", ""))
			return
		}
		utils.LogError(err, "Login: Error from authService.Login")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to login.", "Internal error"))
		return
	}

	setSessionCookie(c, authResp.SessionToken)
	c.JSON(http.StatusOK, authResp)
}

// ShowRegister describes the registration form for clients that GET the route.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": []string{"shop_id", "name", "location", "password"}, "submit": "POST /register"})
}

// Register creates a new shop account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterShopRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid registration payload.", err.Error()))
		return
	}

	shop, err := h.authService.RegisterShop(req)
	if err != nil {
		if errors.Is(err, services.ErrShopIDExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "This Shop ID is already taken.", ""))
			return
		}
		utils.LogError(err, "Register: Error from authService.RegisterShop")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register shop.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, shop)
}

// Logout clears the session binding.
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

// DeleteShopRecord deletes the authenticated shop together with all of its
// inventory and clears the session. Answers 401, not a redirect, when no
// session is present (enforced by the strict middleware variant on this
// route).
func (h *AuthHandler) DeleteShopRecord(c *gin.Context) {
	shopID, ok := currentShopID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.authService.DeleteShop(shopID); err != nil {
		if errors.Is(err, services.ErrShopNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shop not found.", ""))
			return
		}
		utils.LogError(err, "DeleteShopRecord: Error from authService.DeleteShop")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete shop.", "Internal error"))
		return
	}

	clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/")
}
