package usecase

import "github.com/yourusername/catalogo-json/internal/domain/entity"

// Reconcile joins sales onto product rows. Codes with no sales get 0;
// inventory is never clamped so oversold rows stay visible.
func Reconcile(rows []entity.ProductRow, sales entity.SalesAggregate) []entity.ReconciledRow {
	out := make([]entity.ReconciledRow, 0, len(rows))
	for _, row := range rows {
		ventas := sales.Get(row.ProductCode)
		out = append(out, entity.ReconciledRow{
			ProductRow:  row,
			VentasTotal: ventas,
			Inventory:   row.QtyInitial - ventas,
		})
	}
	return out
}
