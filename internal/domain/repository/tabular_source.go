package repository

import (
	"context"

	"github.com/yourusername/catalogo-json/internal/domain/entity"
)

// TabularSource interface for reading a sheet as a table
type TabularSource interface {
	// ReadTable read sheet rows in source order. Empty sheet name means the first sheet.
	ReadTable(ctx context.Context, path, sheet string) (*entity.Table, error)
}

// ImageSource pictures embedded in a sheet
type ImageSource interface {
	// ExtractImages returns pictures in extraction order
	ExtractImages(ctx context.Context, path, sheet string) ([]entity.ImageAsset, error)
}
