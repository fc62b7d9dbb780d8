package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/catalogo-json/internal/domain/entity"
	"github.com/yourusername/catalogo-json/internal/domain/repository"
)

// CatalogUseCase catalog build business logic
type CatalogUseCase interface {
	// Build run the whole pipeline once and write the artifacts
	Build(ctx context.Context) (*entity.BuildReport, error)
}

// BuildOptions input locations
type BuildOptions struct {
	ProductsPath  string
	ProductsSheet string
	SalesPath     string
	SalesSheet    string
}

type catalogUseCase struct {
	tables      repository.TabularSource
	images      repository.ImageSource
	catalogRepo repository.CatalogRepository
	writer      repository.ArtifactWriter
	notifier    repository.Notifier
	matcher     *ImageMatcher
	opts        BuildOptions
	log         logrus.FieldLogger
}

// NewCatalogUseCase notifier may be nil
func NewCatalogUseCase(
	tables repository.TabularSource,
	images repository.ImageSource,
	catalogRepo repository.CatalogRepository,
	writer repository.ArtifactWriter,
	notifier repository.Notifier,
	matcher *ImageMatcher,
	opts BuildOptions,
	log logrus.FieldLogger,
) CatalogUseCase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &catalogUseCase{
		tables:      tables,
		images:      images,
		catalogRepo: catalogRepo,
		writer:      writer,
		notifier:    notifier,
		matcher:     matcher,
		opts:        opts,
		log:         log,
	}
}

// Build products are loaded and validated before anything is written, so a
// fatal source or schema error leaves no partial output behind.
func (u *catalogUseCase) Build(ctx context.Context) (*entity.BuildReport, error) {
	runID := uuid.New().String()
	log := u.log.WithField("run_id", runID)
	report := &entity.BuildReport{RunID: runID}

	// 1) Products
	table, err := u.tables.ReadTable(ctx, u.opts.ProductsPath, u.opts.ProductsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	if err := ValidateProductTable(table); err != nil {
		return nil, err
	}

	schema := ResolveProductSchema(table)
	rows := schema.ToProductRows(table)
	report.ProductRows = len(rows)
	log.WithFields(logrus.Fields{
		"rows":        len(rows),
		"price":       schema.Price,
		"description": schema.Description,
		"category":    schema.Category,
	}).Info("📦 Products loaded")

	// 2) Sales
	sales, status := u.loadSales(ctx, log)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report.SalesLoaded = status == SalesLoaded
	report.SalesCodes = len(sales)
	if status != SalesLoaded && status != SalesMissingFile {
		report.Warnings++
	}

	// 3) Inventory
	reconciled := Reconcile(rows, sales)

	// 4) Images
	match, err := u.matchImages(ctx, rows, log)
	if err != nil {
		return nil, err
	}
	report.ImagesFound = match.Found
	report.ImagesMatched = match.Matched
	report.ImagesSkipped = match.Skipped
	report.Warnings += match.Warnings

	// 5) Catalog
	entries, stats := AssembleCatalog(reconciled, match.Written, FileExists, log)
	report.DuplicateCodes = stats.DuplicateCodes
	report.BlankCodes = stats.BlankCodes
	report.Warnings += stats.DuplicateCodes

	if err := u.catalogRepo.UpdateCatalog(ctx, entity.Catalog{
		RunID:   runID,
		Entries: entries,
		Source:  u.opts.ProductsPath,
	}); err != nil {
		return nil, fmt.Errorf("failed to store catalog: %w", err)
	}

	if err := u.writeArtifacts(ctx, report); err != nil {
		return nil, err
	}

	oversold, err := u.catalogRepo.Oversold(ctx)
	if err != nil {
		return nil, err
	}
	report.Entries = len(entries)
	report.Oversold = len(oversold)
	if report.Oversold > 0 {
		log.WithField("products", report.Oversold).Warn("⚠️ Oversold products (negative inventory)")
	}

	log.WithFields(logrus.Fields{
		"entries":   report.Entries,
		"images":    report.ImagesMatched,
		"warnings":  report.Warnings,
		"catalog":   report.CatalogPath,
		"inventory": report.InventoryPath,
	}).Info("✅ JSON created: catalogo.json & inventario_actual.json")

	if u.notifier != nil {
		if err := u.notifier.NotifyBuild(ctx, *report); err != nil {
			log.WithError(err).Warn("⚠️ Failed to send build notification")
		}
	}

	return report, nil
}

// loadSales every failure here degrades to an all-zero aggregate
func (u *catalogUseCase) loadSales(ctx context.Context, log logrus.FieldLogger) (entity.SalesAggregate, SalesStatus) {
	if u.opts.SalesPath == "" {
		log.Info("Sales file not configured, ventas = 0")
		return entity.SalesAggregate{}, SalesMissingFile
	}

	if _, err := os.Stat(u.opts.SalesPath); errors.Is(err, os.ErrNotExist) {
		log.WithField("path", u.opts.SalesPath).Info("Sales file not found, ventas = 0")
		return entity.SalesAggregate{}, SalesMissingFile
	}

	table, err := u.tables.ReadTable(ctx, u.opts.SalesPath, u.opts.SalesSheet)
	if err != nil {
		log.WithError(err).Warn("⚠️ Sales file could not be read, assuming 0 sales")
		return entity.SalesAggregate{}, SalesUnreadable
	}

	return AggregateSales(table, log)
}

// matchImages extraction failures degrade to zero images; only
// cancellation stops the run
func (u *catalogUseCase) matchImages(ctx context.Context, rows []entity.ProductRow, log logrus.FieldLogger) (MatchResult, error) {
	empty := MatchResult{Written: map[string]string{}}
	if u.images == nil || u.matcher == nil {
		return empty, nil
	}

	assets, err := u.images.ExtractImages(ctx, u.opts.ProductsPath, u.opts.ProductsSheet)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return empty, ctxErr
		}
		log.WithError(err).Warn("⚠️ Could not extract images automatically")
		empty.Warnings++
		return empty, nil
	}

	match, err := u.matcher.Match(ctx, rows, assets)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return empty, ctxErr
		}
		log.WithError(err).Warn("⚠️ Image matching failed")
		match.Written = map[string]string{}
		match.Warnings++
	}
	return match, nil
}

func (u *catalogUseCase) writeArtifacts(ctx context.Context, report *entity.BuildReport) error {
	entries, err := u.catalogRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	snapshot, err := u.catalogRepo.Snapshot(ctx)
	if err != nil {
		return err
	}

	if report.CatalogPath, err = u.writer.WriteCatalog(ctx, entries); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if report.InventoryPath, err = u.writer.WriteInventory(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	return nil
}
