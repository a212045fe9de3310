package services

import (
	"database/sql"
	"errors"
	"fmt"

	"pharmacy_pos_backend/internal/models"
	"pharmacy_pos_backend/internal/repositories"
	"pharmacy_pos_backend/pkg/utils"
)

var (
	ErrEmptyMedName  = errors.New("medicine name must not be empty")
	ErrNegativeValue = errors.New("stock and price must not be negative")
)

// InventoryService owns all owner-scoped inventory mutations. The shop id
// always comes from the authenticated session, never from client input, so
// one shop can never touch another's rows.
//
// Medicine names are normalized to lowercase here, before every repository
// call; rows at rest are always lowercase.
type InventoryService interface {
	AddItem(shopID, medName string, stockCount int, price float64) (*models.InventoryItem, error)
	SetStock(shopID, medName string, newCount int) error
	SetPrice(shopID, medName string, newPrice float64) error
	IncrementStock(shopID, medName string) error
	DecrementStock(shopID, medName string) error
	DeleteItem(shopID, medName string) error
	ListItems(shopID string) ([]models.InventoryItem, error)
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	db            *sql.DB
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(inventoryRepo repositories.InventoryRepository, db *sql.DB) InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo, db: db}
}

// AddItem upserts a medicine row. Re-adding an existing name fully replaces
// the prior stock and price rather than merging with them.
func (s *inventoryService) AddItem(shopID, medName string, stockCount int, price float64) (*models.InventoryItem, error) {
	med := utils.NormalizeMedName(medName)
	if med == "" {
		return nil, ErrEmptyMedName
	}
	if stockCount < 0 || price < 0 {
		return nil, ErrNegativeValue
	}

	item := models.InventoryItem{
		ShopID:     shopID,
		MedName:    med,
		StockCount: stockCount,
		Price:      price,
	}
	if err := s.inventoryRepo.UpsertItem(s.db, &item); err != nil {
		return nil, fmt.Errorf("failed to add inventory item: %w", err)
	}
	return &item, nil
}

// SetStock sets an absolute stock count. A name with no row for this shop
// affects nothing.
func (s *inventoryService) SetStock(shopID, medName string, newCount int) error {
	med := utils.NormalizeMedName(medName)
	if med == "" {
		return ErrEmptyMedName
	}
	if newCount < 0 {
		return ErrNegativeValue
	}
	if err := s.inventoryRepo.SetStock(s.db, shopID, med, newCount); err != nil {
		return fmt.Errorf("failed to set stock: %w", err)
	}
	return nil
}

// SetPrice sets an absolute price.
func (s *inventoryService) SetPrice(shopID, medName string, newPrice float64) error {
	med := utils.NormalizeMedName(medName)
	if med == "" {
		return ErrEmptyMedName
	}
	if newPrice < 0 {
		return ErrNegativeValue
	}
	if err := s.inventoryRepo.SetPrice(s.db, shopID, med, newPrice); err != nil {
		return fmt.Errorf("failed to set price: %w", err)
	}
	return nil
}

// IncrementStock raises a medicine's stock by one unit.
func (s *inventoryService) IncrementStock(shopID, medName string) error {
	med := utils.NormalizeMedName(medName)
	if med == "" {
		return ErrEmptyMedName
	}
	if err := s.inventoryRepo.AdjustStock(s.db, shopID, med, 1); err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	return nil
}

// DecrementStock lowers a medicine's stock by one unit, floored at zero.
func (s *inventoryService) DecrementStock(shopID, medName string) error {
	med := utils.NormalizeMedName(medName)
	if med == "" {
		return ErrEmptyMedName
	}
	if err := s.inventoryRepo.AdjustStock(s.db, shopID, med, -1); err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	return nil
}

// DeleteItem removes one medicine row for the shop.
func (s *inventoryService) DeleteItem(shopID, medName string) error {
	med := utils.NormalizeMedName(medName)
	if med == "" {
		return ErrEmptyMedName
	}
	if err := s.inventoryRepo.DeleteItem(s.db, shopID, med); err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}

// ListItems returns the shop's full inventory, unfiltered.
func (s *inventoryService) ListItems(shopID string) ([]models.InventoryItem, error) {
	items, err := s.inventoryRepo.ListForShop(shopID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}
