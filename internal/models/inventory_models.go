package models

import "time"

// InventoryItem is one medicine's stock and price record, scoped to exactly
// one shop. Identity is the (shop_id, med_name) pair; med_name is always
// stored lowercase so two casings of the same name never produce two rows.
type InventoryItem struct {
	ShopID     string    `json:"shop_id" db:"shop_id"`
	MedName    string    `json:"med_name" db:"med_name"`
	StockCount int       `json:"stock_count" db:"stock_count"` // never negative; all decrement paths clamp at zero
	Price      float64   `json:"price" db:"price"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CatalogEntry is one row of the public cross-shop search result, an
// inventory row joined with the owning shop's identity and location.
type CatalogEntry struct {
	ShopName   string  `json:"shop_name"`
	MedName    string  `json:"med_name"`
	StockCount int     `json:"stock_count"`
	Location   string  `json:"location"`
	Price      float64 `json:"price"`
}
