package usecase

import (
	"github.com/sirupsen/logrus"
	"github.com/yourusername/catalogo-json/internal/domain/entity"
)

// SalesStatus how the sales aggregate was obtained
type SalesStatus int

const (
	SalesLoaded SalesStatus = iota
	SalesMissingFile
	SalesUnreadable
	SalesMissingColumns
)

func (s SalesStatus) String() string {
	switch s {
	case SalesLoaded:
		return "loaded"
	case SalesMissingFile:
		return "missing file"
	case SalesUnreadable:
		return "unreadable"
	case SalesMissingColumns:
		return "missing columns"
	default:
		return "unknown"
	}
}

// AggregateSales sums the quantity column per ProductCode. A table without
// ProductCode or any quantity column yields an empty aggregate and
// SalesMissingColumns. Bad quantity cells contribute 0.
func AggregateSales(table *entity.Table, log logrus.FieldLogger) (entity.SalesAggregate, SalesStatus) {
	agg := entity.SalesAggregate{}
	if table == nil {
		return agg, SalesMissingFile
	}

	qtyCol, ok := table.ResolveColumn(salesQtyColumns...)
	if !ok || !table.HasColumn(ColProductCode) {
		log.WithFields(logrus.Fields{
			"path":    table.Path,
			"columns": table.Headers,
		}).Warn("⚠️ Sales sheet lacks ProductCode / Quantity columns, assuming 0 sales")
		return agg, SalesMissingColumns
	}

	sums := make(map[string]float64)
	for _, rec := range table.Rows {
		code := rec.Get(ColProductCode)
		if code == "" {
			continue
		}
		sums[code] += ParseFloatOrDefault(rec.Get(qtyCol))
	}

	// Truncate once per code, after summing
	for code, sum := range sums {
		agg[code] = int(sum)
	}

	log.WithFields(logrus.Fields{
		"column": qtyCol,
		"codes":  len(agg),
	}).Info("🧾 Sales aggregated")

	return agg, SalesLoaded
}
