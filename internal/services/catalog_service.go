package services

import (
	"fmt"

	"pharmacy_pos_backend/internal/models"
	"pharmacy_pos_backend/internal/repositories"
	"pharmacy_pos_backend/pkg/utils"
)

// SearchResult is the public search view: matching rows across all shops
// plus the full distinct medicine name list for search suggestions.
type SearchResult struct {
	Results []models.CatalogEntry `json:"results"`
	AllMeds []string              `json:"all_meds"`
}

// CatalogService is the public, unauthenticated side of the system.
type CatalogService interface {
	Search(query string) (*SearchResult, error)
}

type catalogService struct {
	inventoryRepo repositories.InventoryRepository
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(inventoryRepo repositories.InventoryRepository) CatalogService {
	return &catalogService{inventoryRepo: inventoryRepo}
}

// Search matches medicine names case-insensitively by substring across every
// shop's inventory. An empty query returns no result rows but still carries
// the suggestion list; zero-stock rows are never filtered out.
func (s *catalogService) Search(query string) (*SearchResult, error) {
	allMeds, err := s.inventoryRepo.ListDistinctMedicineNames()
	if err != nil {
		return nil, fmt.Errorf("failed to list medicine names: %w", err)
	}

	result := &SearchResult{
		Results: []models.CatalogEntry{},
		AllMeds: allMeds,
	}

	q := utils.NormalizeMedName(query)
	if q == "" {
		return result, nil
	}

	entries, err := s.inventoryRepo.SearchByNameSubstring(q)
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	result.Results = entries
	return result, nil
}
