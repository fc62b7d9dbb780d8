package repository

import (
	"context"

	"github.com/yourusername/catalogo-json/internal/domain/entity"
)

// CatalogRepository interface for working with the built catalog
type CatalogRepository interface {
	// UpdateCatalog replace the whole catalog
	UpdateCatalog(ctx context.Context, catalog entity.Catalog) error

	// GetCatalog get the last built catalog
	GetCatalog(ctx context.Context) (*entity.Catalog, error)

	// GetByCode entry by product code
	GetByCode(ctx context.Context, code string) (*entity.CatalogEntry, error)

	// GetAll all entries in source order
	GetAll(ctx context.Context) ([]entity.CatalogEntry, error)

	// Snapshot {productCode, inventory} projection
	Snapshot(ctx context.Context) ([]entity.InventorySnapshotEntry, error)

	// Oversold entries with inventory < 0
	Oversold(ctx context.Context) ([]entity.CatalogEntry, error)
}

// ArtifactWriter writes the JSON artifacts
type ArtifactWriter interface {
	// WriteCatalog write catalogo.json, returns its path
	WriteCatalog(ctx context.Context, entries []entity.CatalogEntry) (string, error)

	// WriteInventory write inventario_actual.json, returns its path
	WriteInventory(ctx context.Context, snapshot []entity.InventorySnapshotEntry) (string, error)
}

// Notifier publishes a build result
type Notifier interface {
	// NotifyBuild send the report and the artifacts
	NotifyBuild(ctx context.Context, report entity.BuildReport) error
}
