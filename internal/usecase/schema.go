package usecase

import (
	"github.com/yourusername/catalogo-json/internal/domain/entity"
)

// Column names of the vendor workbooks
const (
	ColProductCode = "ProductCode"
	ColProductName = "Product Name"
	ColQty         = "Qty"
	ColCategory    = "Category"
)

var (
	// RequiredProductColumns absence of any of these aborts the run
	RequiredProductColumns = []string{ColProductCode, ColProductName, ColQty}

	// Candidate lists are tried in order, first header present wins
	priceColumns       = []string{"Price", "Precio"}
	descriptionColumns = []string{"Description", "Descripcion", "Descripción"}
	salesQtyColumns    = []string{"Quantity", "Cantidad"}
)

// ProductSchema product sheet columns resolved once at load time
type ProductSchema struct {
	Price       string // "" when the sheet has no price column
	Description string
	Category    string
}

// ResolveProductSchema pick optional columns from the header row
func ResolveProductSchema(table *entity.Table) ProductSchema {
	var schema ProductSchema
	schema.Price, _ = table.ResolveColumn(priceColumns...)
	schema.Description, _ = table.ResolveColumn(descriptionColumns...)
	schema.Category, _ = table.ResolveColumn(ColCategory)
	return schema
}

// ToProductRows coerce every data row. Blank rows are kept so that row
// indexes stay aligned with sheet positions.
func (s ProductSchema) ToProductRows(table *entity.Table) []entity.ProductRow {
	rows := make([]entity.ProductRow, 0, table.Len())
	for i, rec := range table.Rows {
		rows = append(rows, s.toProductRow(i, rec))
	}
	return rows
}

func (s ProductSchema) toProductRow(idx int, rec entity.Record) entity.ProductRow {
	row := entity.ProductRow{
		Row:         idx,
		ProductCode: rec.Get(ColProductCode),
		Name:        rec.Get(ColProductName),
		QtyInitial:  ParseIntOrDefault(rec.Get(ColQty)),
	}

	if s.Price != "" {
		row.Price = ParsePriceOrDefault(rec.Get(s.Price))
	}

	// Description -> Product Name -> ""
	if s.Description != "" {
		row.Description = rec.Get(s.Description)
	}
	if row.Description == "" {
		row.Description = row.Name
	}

	// Absent column and empty cell both give "".
	if s.Category != "" {
		row.Category = rec.Get(s.Category)
	}

	return row
}

// ValidateProductTable every missing required column is reported in one SchemaError
func ValidateProductTable(table *entity.Table) error {
	var missing []string
	for _, col := range RequiredProductColumns {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &entity.SchemaError{Path: table.Path, Sheet: table.Sheet, Missing: missing}
	}
	return nil
}
