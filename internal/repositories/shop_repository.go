package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pharmacy_pos_backend/internal/models"

	"github.com/lib/pq"
)

// ShopRepository defines the interface for shop-related database operations.
type ShopRepository interface {
	CreateShop(executor SQLExecutor, shop *models.Shop, passwordHash string) error
	FindShopByID(shopID string) (*models.Shop, string, error) // Returns Shop, PasswordHash, Error
	DeleteShop(executor SQLExecutor, shopID string) error
}

type shopRepository struct {
	db *sql.DB
}

// NewShopRepository creates a new instance of ShopRepository.
func NewShopRepository(db *sql.DB) ShopRepository {
	return &shopRepository{db: db}
}

// CreateShop inserts a new shop row. Registration with a shop_id that is
// already taken surfaces as ErrDuplicateKey and leaves the original row
// untouched.
func (r *shopRepository) CreateShop(executor SQLExecutor, shop *models.Shop, passwordHash string) error {
	query := `INSERT INTO shops (shop_id, name, location, password_hash, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	currentTime := time.Now()

	_, err := executor.Exec(query, shop.ShopID, shop.Name, shop.Location, passwordHash, currentTime, currentTime)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: shop id '%s' already exists (constraint: %s)", ErrDuplicateKey, shop.ShopID, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating shop %s: %v", ErrDatabaseError, shop.ShopID, err)
	}
	shop.CreatedAt = currentTime
	shop.UpdatedAt = currentTime
	return nil
}

// FindShopByID retrieves a shop by its id.
// It returns the shop model, its stored password hash, and an error if any.
func (r *shopRepository) FindShopByID(shopID string) (*models.Shop, string, error) {
	shop := &models.Shop{}
	var passwordHash string
	query := `SELECT shop_id, name, location, password_hash, created_at, updated_at
	          FROM shops WHERE shop_id = $1`

	err := r.db.QueryRow(query, shopID).Scan(
		&shop.ShopID, &shop.Name, &shop.Location, &passwordHash, &shop.CreatedAt, &shop.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: finding shop by id %s: %v", ErrDatabaseError, shopID, err)
	}
	return shop, passwordHash, nil
}

// DeleteShop removes the shop row only. There is no FK cascade; the caller
// must delete the shop's inventory rows first.
func (r *shopRepository) DeleteShop(executor SQLExecutor, shopID string) error {
	query := `DELETE FROM shops WHERE shop_id = $1`
	result, err := executor.Exec(query, shopID)
	if err != nil {
		return fmt.Errorf("%w: deleting shop %s: %v", ErrDatabaseError, shopID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
