package services

import (
	"database/sql"
	"errors"
	"fmt"

	"pharmacy_pos_backend/internal/models"
	"pharmacy_pos_backend/internal/repositories"
	"pharmacy_pos_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrShopNotFound       = errors.New("shop not found")
	ErrInvalidCredentials = errors.New("invalid shop id or password")
	ErrShopIDExists       = errors.New("shop id already taken")
	ErrTokenGeneration    = errors.New("failed to generate session token")
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest carries the login form fields.
type LoginRequest struct {
	ShopID   string `form:"shop_id" json:"shop_id" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// RegisterShopRequest carries the registration form fields.
type RegisterShopRequest struct {
	ShopID   string `form:"shop_id" json:"shop_id" binding:"required"`
	Name     string `form:"name" json:"name" binding:"required"`
	Location string `form:"location" json:"location"`
	Password string `form:"password" json:"password" binding:"required"`
}

// AuthResponse is returned on successful login.
type AuthResponse struct {
	Shop         *models.Shop `json:"shop"`
	SessionToken string       `json:"session_token"`
}

// --- AuthService Interface ---
type AuthService interface {
	RegisterShop(req RegisterShopRequest) (*models.Shop, error)
	Login(req LoginRequest) (*AuthResponse, error)
	GetShop(shopID string) (*models.Shop, error)
	DeleteShop(shopID string) error
}

type authService struct {
	shopRepo      repositories.ShopRepository
	inventoryRepo repositories.InventoryRepository
	db            *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(shopRepo repositories.ShopRepository, inventoryRepo repositories.InventoryRepository, db *sql.DB) AuthService {
	return &authService{
		shopRepo:      shopRepo,
		inventoryRepo: inventoryRepo,
		db:            db,
	}
}

// RegisterShop creates a new shop account. A shop_id that is already taken
// fails with ErrShopIDExists and leaves the existing shop untouched.
func (s *authService) RegisterShop(req RegisterShopRequest) (*models.Shop, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	shop := models.Shop{
		ShopID:   req.ShopID,
		Name:     req.Name,
		Location: req.Location,
	}
	if err := s.shopRepo.CreateShop(s.db, &shop, string(hashedPasswordBytes)); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrShopIDExists
		}
		return nil, fmt.Errorf("failed to register shop: %w", err)
	}
	return &shop, nil
}

// Login checks the shop's credentials and issues a session token bound to
// the shop id. Unknown shop and wrong password are indistinguishable to the
// caller: both come back as ErrInvalidCredentials.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	shop, storedHash, err := s.shopRepo.FindShopByID(req.ShopID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateSessionToken(shop.ShopID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &AuthResponse{
		Shop:         shop,
		SessionToken: token,
	}, nil
}

// GetShop retrieves a shop's profile by id.
func (s *authService) GetShop(shopID string) (*models.Shop, error) {
	shop, _, err := s.shopRepo.FindShopByID(shopID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, fmt.Errorf("failed to retrieve shop: %w", err)
	}
	return shop, nil
}

// DeleteShop removes a shop and everything it owns. There is no FK cascade
// and each statement commits independently, so inventory rows must go first:
// a failure between the two deletes strands no orphaned inventory.
// Subsequent logins with the same credentials fail.
func (s *authService) DeleteShop(shopID string) error {
	if err := s.inventoryRepo.DeleteAllForShop(s.db, shopID); err != nil {
		return fmt.Errorf("failed to delete inventory for shop %s: %w", shopID, err)
	}
	if err := s.shopRepo.DeleteShop(s.db, shopID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrShopNotFound
		}
		return fmt.Errorf("failed to delete shop %s: %w", shopID, err)
	}
	return nil
}
