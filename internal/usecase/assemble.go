package usecase

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/catalogo-json/internal/domain/entity"
)

// AssembleStats rows left out of the catalog
type AssembleStats struct {
	DuplicateCodes int
	BlankCodes     int
}

// FileExists reports whether path is an existing regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// AssembleCatalog builds one entry per product code in row order. The first
// row of a duplicated code wins. image is set only for files written this
// run that still exist; otherwise it is "".
func AssembleCatalog(rows []entity.ReconciledRow, images map[string]string, exists func(string) bool, log logrus.FieldLogger) ([]entity.CatalogEntry, AssembleStats) {
	if exists == nil {
		exists = FileExists
	}

	var stats AssembleStats
	entries := make([]entity.CatalogEntry, 0, len(rows))
	seen := make(map[string]int, len(rows))

	for _, row := range rows {
		if row.ProductCode == "" {
			stats.BlankCodes++
			if row.Name != "" {
				log.WithFields(logrus.Fields{"index": row.Row, "name": row.Name}).Warn("⚠️ Row without ProductCode, skipping")
			}
			continue
		}

		if first, dup := seen[row.ProductCode]; dup {
			stats.DuplicateCodes++
			log.WithFields(logrus.Fields{
				"productCode": row.ProductCode,
				"index":       row.Row,
				"kept":        first,
			}).Warn("⚠️ Duplicate ProductCode, keeping first occurrence")
			continue
		}
		seen[row.ProductCode] = row.Row

		imagePath := ""
		if path, ok := images[row.ProductCode]; ok && exists(path) {
			imagePath = path
		}

		entries = append(entries, entity.CatalogEntry{
			ProductCode: row.ProductCode,
			Name:        row.Name,
			Description: row.Description,
			Price:       row.Price,
			QtyInitial:  row.QtyInitial,
			Ventas:      row.VentasTotal,
			Inventory:   row.Inventory,
			Category:    row.Category,
			Image:       imagePath,
		})
	}

	return entries, stats
}
