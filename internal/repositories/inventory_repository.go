package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"pharmacy_pos_backend/internal/models"
)

// InventoryRepository defines the interface for inventory-related database
// operations. All med_name arguments are expected to be lowercased already;
// normalization happens in the service layer before every call.
//
// Update and delete methods targeting a single (shop_id, med_name) row treat
// a missing row as a no-op rather than an error: the billing form submits
// free-text names, and a name with no matching row simply affects zero rows.
type InventoryRepository interface {
	UpsertItem(executor SQLExecutor, item *models.InventoryItem) error
	SetStock(executor SQLExecutor, shopID, medName string, newCount int) error
	AdjustStock(executor SQLExecutor, shopID, medName string, delta int) error
	SetPrice(executor SQLExecutor, shopID, medName string, newPrice float64) error
	DeleteItem(executor SQLExecutor, shopID, medName string) error
	DeleteAllForShop(executor SQLExecutor, shopID string) error
	ListForShop(shopID string, inStockOnly bool) ([]models.InventoryItem, error)
	SearchByNameSubstring(query string) ([]models.CatalogEntry, error)
	ListDistinctMedicineNames() ([]string, error)
}

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// UpsertItem inserts an inventory row, fully replacing stock and price of
// any existing row with the same (shop_id, med_name). Replacement is total,
// not additive: re-adding a medicine overwrites whatever was there.
func (r *inventoryRepository) UpsertItem(executor SQLExecutor, item *models.InventoryItem) error {
	query := `INSERT INTO inventory (shop_id, med_name, stock_count, price, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $5)
	          ON CONFLICT (shop_id, med_name)
	          DO UPDATE SET stock_count = EXCLUDED.stock_count, price = EXCLUDED.price, updated_at = EXCLUDED.updated_at`
	_, err := executor.Exec(query, item.ShopID, item.MedName, item.StockCount, item.Price, time.Now())
	if err != nil {
		return fmt.Errorf("%w: upserting inventory item %s/%s: %v", ErrDatabaseError, item.ShopID, item.MedName, err)
	}
	return nil
}

// SetStock sets an absolute stock count for a medicine.
func (r *inventoryRepository) SetStock(executor SQLExecutor, shopID, medName string, newCount int) error {
	query := `UPDATE inventory SET stock_count = $1, updated_at = $2 WHERE shop_id = $3 AND med_name = $4`
	_, err := executor.Exec(query, newCount, time.Now(), shopID, medName)
	if err != nil {
		return fmt.Errorf("%w: setting stock for %s/%s: %v", ErrDatabaseError, shopID, medName, err)
	}
	return nil
}

// AdjustStock applies a signed delta to a medicine's stock count in a single
// atomic update expression, clamped so the stored value never drops below
// zero. A delta larger than the current stock floors the row at 0.
func (r *inventoryRepository) AdjustStock(executor SQLExecutor, shopID, medName string, delta int) error {
	query := `UPDATE inventory SET stock_count = GREATEST(0, stock_count + $1), updated_at = $2
	          WHERE shop_id = $3 AND med_name = $4`
	_, err := executor.Exec(query, delta, time.Now(), shopID, medName)
	if err != nil {
		return fmt.Errorf("%w: adjusting stock for %s/%s by %d: %v", ErrDatabaseError, shopID, medName, delta, err)
	}
	return nil
}

// SetPrice sets an absolute price for a medicine.
func (r *inventoryRepository) SetPrice(executor SQLExecutor, shopID, medName string, newPrice float64) error {
	query := `UPDATE inventory SET price = $1, updated_at = $2 WHERE shop_id = $3 AND med_name = $4`
	_, err := executor.Exec(query, newPrice, time.Now(), shopID, medName)
	if err != nil {
		return fmt.Errorf("%w: setting price for %s/%s: %v", ErrDatabaseError, shopID, medName, err)
	}
	return nil
}

// DeleteItem removes one (shop_id, med_name) row.
func (r *inventoryRepository) DeleteItem(executor SQLExecutor, shopID, medName string) error {
	query := `DELETE FROM inventory WHERE shop_id = $1 AND med_name = $2`
	_, err := executor.Exec(query, shopID, medName)
	if err != nil {
		return fmt.Errorf("%w: deleting inventory item %s/%s: %v", ErrDatabaseError, shopID, medName, err)
	}
	return nil
}

// DeleteAllForShop removes every inventory row owned by a shop. Run before
// deleting the shop row itself.
func (r *inventoryRepository) DeleteAllForShop(executor SQLExecutor, shopID string) error {
	query := `DELETE FROM inventory WHERE shop_id = $1`
	_, err := executor.Exec(query, shopID)
	if err != nil {
		return fmt.Errorf("%w: deleting inventory for shop %s: %v", ErrDatabaseError, shopID, err)
	}
	return nil
}

// ListForShop returns all inventory rows for a shop. With inStockOnly set,
// only rows with stock_count > 0 are returned (the billing view).
func (r *inventoryRepository) ListForShop(shopID string, inStockOnly bool) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	query := `SELECT shop_id, med_name, stock_count, price, created_at, updated_at
	          FROM inventory WHERE shop_id = $1`
	if inStockOnly {
		query += ` AND stock_count > 0`
	}
	query += ` ORDER BY med_name`

	rows, err := r.db.Query(query, shopID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing inventory for shop %s: %v", ErrDatabaseError, shopID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(&item.ShopID, &item.MedName, &item.StockCount, &item.Price, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning inventory item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inventory for shop %s: %v", ErrDatabaseError, shopID, err)
	}
	return items, nil
}

// SearchByNameSubstring performs the public catalog search: a
// case-insensitive substring match on med_name across every shop's
// inventory, joined with the owning shop's name and location. Rows with zero
// stock are included; availability is the reader's call.
func (r *inventoryRepository) SearchByNameSubstring(query string) ([]models.CatalogEntry, error) {
	entries := []models.CatalogEntry{}
	sqlQuery := `SELECT s.name, i.med_name, i.stock_count, s.location, i.price
	             FROM inventory i
	             JOIN shops s ON i.shop_id = s.shop_id
	             WHERE i.med_name ILIKE '%' || $1 || '%'
	             ORDER BY i.med_name, s.name`

	rows, err := r.db.Query(sqlQuery, query)
	if err != nil {
		return nil, fmt.Errorf("%w: searching inventory for %q: %v", ErrDatabaseError, query, err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.CatalogEntry
		if err := rows.Scan(&entry.ShopName, &entry.MedName, &entry.StockCount, &entry.Location, &entry.Price); err != nil {
			return nil, fmt.Errorf("%w: scanning catalog entry: %v", ErrDatabaseError, err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating catalog search results: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

// ListDistinctMedicineNames returns every distinct medicine name across all
// shops, used by the search view for suggestions.
func (r *inventoryRepository) ListDistinctMedicineNames() ([]string, error) {
	names := []string{}
	rows, err := r.db.Query(`SELECT DISTINCT med_name FROM inventory ORDER BY med_name`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing distinct medicine names: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: scanning medicine name: %v", ErrDatabaseError, err)
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating medicine names: %v", ErrDatabaseError, err)
	}
	return names, nil
}
