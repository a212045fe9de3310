package services

import (
	"database/sql"
	"fmt"

	"pharmacy_pos_backend/internal/models"
	"pharmacy_pos_backend/internal/repositories"
	"pharmacy_pos_backend/pkg/utils"
)

// BillLine is one (medicine, quantity) pair from the billing form. The form
// submits the two lists positionally; the handler zips them before they get
// here.
type BillLine struct {
	MedName  string
	Quantity int
}

// BillingService applies bulk stock decrements for a completed sale.
// Billing only mutates stock: no total, receipt, or sale record is persisted.
type BillingService interface {
	AvailableItems(shopID string) ([]models.InventoryItem, error)
	ApplyBill(shopID string, lines []BillLine) error
}

type billingService struct {
	inventoryRepo repositories.InventoryRepository
	db            *sql.DB
}

// NewBillingService creates a new instance of BillingService.
func NewBillingService(inventoryRepo repositories.InventoryRepository, db *sql.DB) BillingService {
	return &billingService{inventoryRepo: inventoryRepo, db: db}
}

// AvailableItems lists the shop's medicines with stock on hand, for
// constructing a bill. Out-of-stock rows are excluded here and only here.
func (s *billingService) AvailableItems(shopID string) ([]models.InventoryItem, error) {
	items, err := s.inventoryRepo.ListForShop(shopID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list available items: %w", err)
	}
	return items, nil
}

// ApplyBill decrements stock for each line, floored at zero by a single
// atomic update per line. Lines are applied independently, best-effort: a
// name with no row for the shop is a silent no-op, and a failure does not
// roll back lines already applied.
func (s *billingService) ApplyBill(shopID string, lines []BillLine) error {
	for _, line := range lines {
		med := utils.NormalizeMedName(line.MedName)
		if med == "" || line.Quantity <= 0 {
			continue
		}
		if err := s.inventoryRepo.AdjustStock(s.db, shopID, med, -line.Quantity); err != nil {
			return fmt.Errorf("failed to apply bill line for %q: %w", med, err)
		}
	}
	return nil
}
