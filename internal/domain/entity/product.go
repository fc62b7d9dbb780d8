package entity

// ProductRow one data row of the product sheet, coerced to canonical fields
type ProductRow struct {
	Row         int // zero-based data row index (sheet row - header depth - 1)
	ProductCode string
	Name        string
	Description string
	Price       float64
	QtyInitial  int
	Category    string
}

// SalesAggregate sold quantity per product code
type SalesAggregate map[string]int

// Get sold quantity for code; absent codes resolve to 0
func (s SalesAggregate) Get(code string) int {
	if s == nil {
		return 0
	}
	return s[code]
}

// ReconciledRow product row with sales and remaining inventory
type ReconciledRow struct {
	ProductRow
	VentasTotal int
	// Inventory is QtyInitial - VentasTotal. Negative means oversold.
	Inventory int
}

// CatalogEntry one record of catalogo.json
type CatalogEntry struct {
	ProductCode string  `json:"productCode"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	QtyInitial  int     `json:"qty_initial"`
	Ventas      int     `json:"ventas"`
	Inventory   int     `json:"inventory"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

// InventorySnapshotEntry one record of inventario_actual.json
type InventorySnapshotEntry struct {
	ProductCode string `json:"productCode"`
	Inventory   int    `json:"inventory"`
}

// Snapshot catalog entry projection for the inventory file
func (e CatalogEntry) Snapshot() InventorySnapshotEntry {
	return InventorySnapshotEntry{ProductCode: e.ProductCode, Inventory: e.Inventory}
}

// Catalog the result of one build
type Catalog struct {
	RunID   string
	Entries []CatalogEntry
	Source  string // product workbook path
}
