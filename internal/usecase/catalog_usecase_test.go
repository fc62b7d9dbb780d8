package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/catalogo-json/internal/domain/entity"
	"github.com/yourusername/catalogo-json/internal/domain/repository"
	"github.com/yourusername/catalogo-json/internal/infrastructure/parser"
	"github.com/yourusername/catalogo-json/internal/infrastructure/storage"
)

// MockNotifier is a mock implementation of repository.Notifier
type MockNotifier struct {
	mock.Mock
}

var _ repository.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) NotifyBuild(ctx context.Context, report entity.BuildReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

type fixture struct {
	dir       string
	products  string
	sales     string
	imagesDir string
	outputDir string
}

func newFixture(t *testing.T) fixture {
	dir := t.TempDir()
	return fixture{
		dir:       dir,
		products:  filepath.Join(dir, "data", "productos.xlsx"),
		sales:     filepath.Join(dir, "data", "sales.xlsx"),
		imagesDir: filepath.Join(dir, "catalogo-img"),
		outputDir: filepath.Join(dir, "output"),
	}
}

func saveWorkbook(t *testing.T, path, sheet string, rows [][]any, pictures []picture) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	for _, p := range pictures {
		require.NoError(t, f.AddPictureFromBytes(sheet, p.cell, &excelize.Picture{
			Extension: ".png",
			File:      p.data,
			Format:    &excelize.GraphicOptions{ScaleX: 1, ScaleY: 1},
		}))
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, f.SaveAs(path))
}

type picture struct {
	cell string
	data []byte
}

func (fx fixture) writeProducts(t *testing.T, pictures ...picture) {
	saveWorkbook(t, fx.products, "PCODE", [][]any{
		{"ProductCode", "Product Name", "Qty", "Price", "Category"},
		{"A1", "Lámpara", 10, 12.5, "Iluminación"},
		{"B2", "Chair", "abc", "x"},
		{"C3", "Desk", 2, 99},
	}, pictures)
}

func (fx fixture) writeSales(t *testing.T, rows ...[]any) {
	saveWorkbook(t, fx.sales, "Sheet1", rows, nil)
}

func (fx fixture) useCase(notifier repository.Notifier) (CatalogUseCase, repository.CatalogRepository, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	excel := parser.NewExcelParser(log)
	repo := storage.NewMemoryCatalogRepository()
	uc := NewCatalogUseCase(
		excel,
		excel,
		repo,
		storage.NewJSONArtifactWriter(fx.outputDir),
		notifier,
		NewImageMatcher(fx.imagesDir, DefaultAnchorRowOffset, log),
		BuildOptions{
			ProductsPath:  fx.products,
			ProductsSheet: "PCODE",
			SalesPath:     fx.sales,
		},
		log,
	)
	return uc, repo, hook
}

func readCatalog(t *testing.T, path string) []entity.CatalogEntry {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []entity.CatalogEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	return entries
}

func TestBuild_EndToEnd(t *testing.T) {
	fx := newFixture(t)
	fx.writeProducts(t,
		picture{cell: "F1", data: pngBytes(t, red)},  // header logo
		picture{cell: "F3", data: pngBytes(t, blue)}, // B2
		picture{cell: "F50", data: pngBytes(t, red)}, // outside the data
	)
	fx.writeSales(t,
		[]any{"ProductCode", "Quantity"},
		[]any{"A1", 3},
		[]any{"A1", 2},
		[]any{"C3", 5},
		[]any{"ZZ", 1},
	)

	notifier := new(MockNotifier)
	notifier.On("NotifyBuild", mock.Anything, mock.MatchedBy(func(r entity.BuildReport) bool {
		return r.Entries == 3 && r.Oversold == 1
	})).Return(nil).Once()

	uc, repo, _ := fx.useCase(notifier)
	report, err := uc.Build(context.Background())
	require.NoError(t, err)
	notifier.AssertExpectations(t)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 3, report.ProductRows)
	assert.Equal(t, 3, report.Entries)
	assert.True(t, report.SalesLoaded)
	assert.Equal(t, 3, report.SalesCodes)
	assert.Equal(t, 3, report.ImagesFound)
	assert.Equal(t, 1, report.ImagesMatched)
	assert.Equal(t, 2, report.ImagesSkipped)
	assert.Equal(t, 1, report.Oversold)
	assert.Equal(t, 0, report.Warnings)

	imagePath := filepath.Join(fx.imagesDir, "B2.png")
	entries := readCatalog(t, report.CatalogPath)
	assert.Equal(t, []entity.CatalogEntry{
		{ProductCode: "A1", Name: "Lámpara", Description: "Lámpara", Price: 12.5, QtyInitial: 10, Ventas: 5, Inventory: 5, Category: "Iluminación"},
		{ProductCode: "B2", Name: "Chair", Description: "Chair", Price: 0, QtyInitial: 0, Ventas: 0, Inventory: 0, Image: imagePath},
		{ProductCode: "C3", Name: "Desk", Description: "Desk", Price: 99, QtyInitial: 2, Ventas: 5, Inventory: -3},
	}, entries)
	assert.FileExists(t, imagePath)
	assert.NoFileExists(t, filepath.Join(fx.imagesDir, "A1.png"))

	data, err := os.ReadFile(report.InventoryPath)
	require.NoError(t, err)
	var snapshot []entity.InventorySnapshotEntry
	require.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Equal(t, []entity.InventorySnapshotEntry{
		{ProductCode: "A1", Inventory: 5},
		{ProductCode: "B2", Inventory: 0},
		{ProductCode: "C3", Inventory: -3},
	}, snapshot)

	stored, err := repo.GetByCode(context.Background(), "C3")
	require.NoError(t, err)
	assert.Equal(t, -3, stored.Inventory)
}

func TestBuild_MissingRequiredColumnsWritesNothing(t *testing.T) {
	fx := newFixture(t)
	saveWorkbook(t, fx.products, "PCODE", [][]any{
		{"ProductCode", "Price"},
		{"A1", 10},
	}, []picture{{cell: "C2", data: pngBytes(t, red)}})

	uc, _, _ := fx.useCase(nil)
	_, err := uc.Build(context.Background())

	var schemaErr *entity.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"Product Name", "Qty"}, schemaErr.Missing)
	assert.NoDirExists(t, fx.outputDir)
	assert.NoDirExists(t, fx.imagesDir)
}

func TestBuild_MissingProductSource(t *testing.T) {
	fx := newFixture(t)

	uc, _, _ := fx.useCase(nil)
	_, err := uc.Build(context.Background())

	var missing *entity.MissingSourceError
	require.True(t, errors.As(err, &missing))
	assert.ErrorIs(t, err, entity.ErrSourceNotFound)
	assert.NoDirExists(t, fx.outputDir)
}

func TestBuild_MissingProductSheet(t *testing.T) {
	fx := newFixture(t)
	saveWorkbook(t, fx.products, "Hoja1", [][]any{{"ProductCode", "Product Name", "Qty"}}, nil)

	uc, _, _ := fx.useCase(nil)
	_, err := uc.Build(context.Background())

	var missing *entity.MissingSourceError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "PCODE", missing.Sheet)
}

func TestBuild_NoSalesFile(t *testing.T) {
	fx := newFixture(t)
	fx.writeProducts(t)

	uc, _, hook := fx.useCase(nil)
	report, err := uc.Build(context.Background())
	require.NoError(t, err)

	assert.False(t, report.SalesLoaded)
	assert.Equal(t, 0, report.Warnings)
	for _, e := range readCatalog(t, report.CatalogPath) {
		assert.Equal(t, 0, e.Ventas)
		assert.Equal(t, e.QtyInitial, e.Inventory)
	}

	var info bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.InfoLevel && e.Message == "Sales file not found, ventas = 0" {
			info = true
		}
	}
	assert.True(t, info)
}

func TestBuild_SalesWithoutExpectedColumns(t *testing.T) {
	fx := newFixture(t)
	fx.writeProducts(t)
	fx.writeSales(t, []any{"Code", "Units"}, []any{"A1", 3})

	uc, _, _ := fx.useCase(nil)
	report, err := uc.Build(context.Background())
	require.NoError(t, err)

	assert.False(t, report.SalesLoaded)
	assert.Equal(t, 1, report.Warnings)
	entries := readCatalog(t, report.CatalogPath)
	assert.Equal(t, 0, entries[0].Ventas)
}

func TestBuild_NotifierFailureIsNotFatal(t *testing.T) {
	fx := newFixture(t)
	fx.writeProducts(t)

	notifier := new(MockNotifier)
	notifier.On("NotifyBuild", mock.Anything, mock.Anything).Return(errors.New("telegram down")).Once()

	uc, _, _ := fx.useCase(notifier)
	_, err := uc.Build(context.Background())
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestBuild_Idempotent(t *testing.T) {
	fx := newFixture(t)
	fx.writeProducts(t, picture{cell: "F2", data: pngBytes(t, red)})
	fx.writeSales(t, []any{"ProductCode", "Cantidad"}, []any{"A1", 4})

	uc, _, _ := fx.useCase(nil)

	first, err := uc.Build(context.Background())
	require.NoError(t, err)
	catalog1, err := os.ReadFile(first.CatalogPath)
	require.NoError(t, err)
	inventory1, err := os.ReadFile(first.InventoryPath)
	require.NoError(t, err)
	image1, err := os.ReadFile(filepath.Join(fx.imagesDir, "A1.png"))
	require.NoError(t, err)

	second, err := uc.Build(context.Background())
	require.NoError(t, err)
	catalog2, err := os.ReadFile(second.CatalogPath)
	require.NoError(t, err)
	inventory2, err := os.ReadFile(second.InventoryPath)
	require.NoError(t, err)
	image2, err := os.ReadFile(filepath.Join(fx.imagesDir, "A1.png"))
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, string(catalog1), string(catalog2))
	assert.Equal(t, string(inventory1), string(inventory2))
	assert.Equal(t, image1, image2)
}

func TestBuild_CanceledContext(t *testing.T) {
	fx := newFixture(t)
	fx.writeProducts(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc, _, _ := fx.useCase(nil)
	_, err := uc.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoDirExists(t, fx.outputDir)
}
