package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/yourusername/catalogo-json/internal/domain/entity"
	"github.com/yourusername/catalogo-json/internal/domain/repository"
)

type memoryCatalogRepository struct {
	mu      sync.RWMutex
	entries []entity.CatalogEntry
	byCode  map[string]int // key: product code, value: index in entries
	catalog *entity.Catalog
}

// NewMemoryCatalogRepository in-memory catalog repository yaratish
func NewMemoryCatalogRepository() repository.CatalogRepository {
	return &memoryCatalogRepository{
		byCode:  make(map[string]int),
		catalog: nil,
	}
}

// UpdateCatalog butun katalogni yangilash
func (m *memoryCatalogRepository) UpdateCatalog(ctx context.Context, catalog entity.Catalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Eski yozuvlarni o'chirish
	m.entries = make([]entity.CatalogEntry, 0, len(catalog.Entries))
	m.byCode = make(map[string]int, len(catalog.Entries))

	for _, entry := range catalog.Entries {
		if _, exists := m.byCode[entry.ProductCode]; exists {
			return fmt.Errorf("duplicate product code in catalog: %s", entry.ProductCode)
		}
		m.byCode[entry.ProductCode] = len(m.entries)
		m.entries = append(m.entries, entry)
	}

	stored := catalog
	stored.Entries = m.entries
	m.catalog = &stored
	return nil
}

// GetCatalog katalogni olish
func (m *memoryCatalogRepository) GetCatalog(ctx context.Context) (*entity.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.catalog == nil {
		return nil, fmt.Errorf("catalog not found")
	}

	catalog := *m.catalog
	catalog.Entries = m.copyEntries()
	return &catalog, nil
}

// GetByCode kod bo'yicha yozuvni olish
func (m *memoryCatalogRepository) GetByCode(ctx context.Context, code string) (*entity.CatalogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, exists := m.byCode[code]
	if !exists {
		return nil, fmt.Errorf("product not found: %s", code)
	}
	entry := m.entries[idx]
	return &entry, nil
}

// GetAll barcha yozuvlarni olish
func (m *memoryCatalogRepository) GetAll(ctx context.Context) ([]entity.CatalogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.copyEntries(), nil
}

// Snapshot inventory projection in catalog order
func (m *memoryCatalogRepository) Snapshot(ctx context.Context) ([]entity.InventorySnapshotEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make([]entity.InventorySnapshotEntry, 0, len(m.entries))
	for _, entry := range m.entries {
		snapshot = append(snapshot, entry.Snapshot())
	}
	return snapshot, nil
}

// Oversold manfiy inventory
func (m *memoryCatalogRepository) Oversold(ctx context.Context) ([]entity.CatalogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []entity.CatalogEntry
	for _, entry := range m.entries {
		if entry.Inventory < 0 {
			results = append(results, entry)
		}
	}
	return results, nil
}

func (m *memoryCatalogRepository) copyEntries() []entity.CatalogEntry {
	entries := make([]entity.CatalogEntry, len(m.entries))
	copy(entries, m.entries)
	return entries
}
