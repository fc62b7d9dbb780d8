package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourusername/catalogo-json/internal/domain/entity"
	"github.com/yourusername/catalogo-json/internal/domain/repository"
)

// Artifact file names expected by downstream tools
const (
	CatalogFileName   = "catalogo.json"
	InventoryFileName = "inventario_actual.json"
)

type jsonArtifactWriter struct {
	dir string
}

// NewJSONArtifactWriter writes the JSON artifacts into dir
func NewJSONArtifactWriter(dir string) repository.ArtifactWriter {
	return &jsonArtifactWriter{dir: dir}
}

// WriteCatalog catalogo.json yozish
func (w *jsonArtifactWriter) WriteCatalog(ctx context.Context, entries []entity.CatalogEntry) (string, error) {
	if entries == nil {
		entries = []entity.CatalogEntry{}
	}
	return w.write(ctx, CatalogFileName, entries)
}

// WriteInventory inventario_actual.json yozish
func (w *jsonArtifactWriter) WriteInventory(ctx context.Context, snapshot []entity.InventorySnapshotEntry) (string, error) {
	if snapshot == nil {
		snapshot = []entity.InventorySnapshotEntry{}
	}
	return w.write(ctx, InventoryFileName, snapshot)
}

func (w *jsonArtifactWriter) write(ctx context.Context, name string, v any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := encodeJSON(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	path := filepath.Join(w.dir, name)
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

// encodeJSON 2-space indent, UTF-8 as is, no HTML escaping
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
