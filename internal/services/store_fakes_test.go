package services

import (
	"fmt"
	"sort"
	"strings"

	"pharmacy_pos_backend/internal/models"
	"pharmacy_pos_backend/internal/repositories"
)

// memStore is an in-memory stand-in for both repositories, mirroring the
// SQL semantics the real ones rely on: upsert replaces wholesale, adjust
// clamps at zero, and updates against missing rows affect nothing.
type memStore struct {
	shops  map[string]*models.Shop
	hashes map[string]string
	items  map[string]map[string]*models.InventoryItem // shopID -> medName -> item
}

func newMemStore() *memStore {
	return &memStore{
		shops:  make(map[string]*models.Shop),
		hashes: make(map[string]string),
		items:  make(map[string]map[string]*models.InventoryItem),
	}
}

var _ repositories.ShopRepository = (*memStore)(nil)
var _ repositories.InventoryRepository = (*memStore)(nil)

func (m *memStore) CreateShop(_ repositories.SQLExecutor, shop *models.Shop, passwordHash string) error {
	if _, exists := m.shops[shop.ShopID]; exists {
		return fmt.Errorf("%w: shop id '%s' already exists", repositories.ErrDuplicateKey, shop.ShopID)
	}
	copied := *shop
	m.shops[shop.ShopID] = &copied
	m.hashes[shop.ShopID] = passwordHash
	return nil
}

func (m *memStore) FindShopByID(shopID string) (*models.Shop, string, error) {
	shop, exists := m.shops[shopID]
	if !exists {
		return nil, "", repositories.ErrNotFound
	}
	copied := *shop
	return &copied, m.hashes[shopID], nil
}

func (m *memStore) DeleteShop(_ repositories.SQLExecutor, shopID string) error {
	if _, exists := m.shops[shopID]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.shops, shopID)
	delete(m.hashes, shopID)
	return nil
}

func (m *memStore) shopItems(shopID string) map[string]*models.InventoryItem {
	if m.items[shopID] == nil {
		m.items[shopID] = make(map[string]*models.InventoryItem)
	}
	return m.items[shopID]
}

func (m *memStore) UpsertItem(_ repositories.SQLExecutor, item *models.InventoryItem) error {
	copied := *item
	m.shopItems(item.ShopID)[item.MedName] = &copied
	return nil
}

func (m *memStore) SetStock(_ repositories.SQLExecutor, shopID, medName string, newCount int) error {
	if item, ok := m.shopItems(shopID)[medName]; ok {
		item.StockCount = newCount
	}
	return nil
}

func (m *memStore) AdjustStock(_ repositories.SQLExecutor, shopID, medName string, delta int) error {
	if item, ok := m.shopItems(shopID)[medName]; ok {
		item.StockCount += delta
		if item.StockCount < 0 {
			item.StockCount = 0
		}
	}
	return nil
}

func (m *memStore) SetPrice(_ repositories.SQLExecutor, shopID, medName string, newPrice float64) error {
	if item, ok := m.shopItems(shopID)[medName]; ok {
		item.Price = newPrice
	}
	return nil
}

func (m *memStore) DeleteItem(_ repositories.SQLExecutor, shopID, medName string) error {
	delete(m.shopItems(shopID), medName)
	return nil
}

func (m *memStore) DeleteAllForShop(_ repositories.SQLExecutor, shopID string) error {
	delete(m.items, shopID)
	return nil
}

func (m *memStore) ListForShop(shopID string, inStockOnly bool) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	for _, item := range m.shopItems(shopID) {
		if inStockOnly && item.StockCount <= 0 {
			continue
		}
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].MedName < items[j].MedName })
	return items, nil
}

func (m *memStore) SearchByNameSubstring(query string) ([]models.CatalogEntry, error) {
	entries := []models.CatalogEntry{}
	q := strings.ToLower(query)
	for shopID, items := range m.items {
		shop, ok := m.shops[shopID]
		if !ok {
			continue
		}
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.MedName), q) {
				entries = append(entries, models.CatalogEntry{
					ShopName:   shop.Name,
					MedName:    item.MedName,
					StockCount: item.StockCount,
					Location:   shop.Location,
					Price:      item.Price,
				})
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].MedName != entries[j].MedName {
			return entries[i].MedName < entries[j].MedName
		}
		return entries[i].ShopName < entries[j].ShopName
	})
	return entries, nil
}

func (m *memStore) ListDistinctMedicineNames() ([]string, error) {
	seen := map[string]bool{}
	names := []string{}
	for _, items := range m.items {
		for name := range items {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}
