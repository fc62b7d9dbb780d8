package parser

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/catalogo-json/internal/domain/entity"
)

// ExtractImages sheet dagi rasmlarni olish.
// Order: anchor cells as excelize lists them, then pictures within a cell in drawing order.
func (e *excelParser) ExtractImages(ctx context.Context, path, sheet string) ([]entity.ImageAsset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := openWorkbook(path, sheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName, err := resolveSheet(f, path, sheet)
	if err != nil {
		return nil, err
	}

	cells, err := f.GetPictureCells(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to list picture cells: %w", err)
	}

	var assets []entity.ImageAsset
	for _, cell := range cells {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pics, err := f.GetPictures(sheetName, cell)
		if err != nil {
			e.log.WithError(err).WithField("cell", cell).Warn("⚠️ Could not read pictures, skipping")
			continue
		}

		anchorRow := 0
		if _, row, err := excelize.CellNameToCoordinates(cell); err == nil {
			anchorRow = row
		} else {
			e.log.WithError(err).WithField("cell", cell).Warn("⚠️ Malformed picture anchor")
		}

		for _, pic := range pics {
			assets = append(assets, entity.ImageAsset{
				Ordinal:   len(assets),
				Cell:      cell,
				AnchorRow: anchorRow,
				Extension: pic.Extension,
				Data:      pic.File,
			})
		}
	}

	e.log.WithFields(logrus.Fields{"sheet": sheetName, "images": len(assets)}).Info("🖼️ Images detected in sheet")
	return assets, nil
}
