package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/catalogo-json/internal/domain/entity"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultAnchorRowOffset converts a 1-based anchor row into a zero-based
// data row index for a sheet with a single header row:
// index = anchorRow - DefaultAnchorRowOffset. Sheet row 2 is data row 0.
// Sheets with deeper headers need a larger offset.
const DefaultAnchorRowOffset = 2

// MatchResult outcome of image matching for one run
type MatchResult struct {
	// Written product code -> PNG path written during this run
	Written  map[string]string
	Found    int
	Matched  int
	Skipped  int
	Warnings int
}

// ImageMatcher assigns embedded images to product rows by anchor position
type ImageMatcher struct {
	Dir       string
	RowOffset int
	log       logrus.FieldLogger
}

// NewImageMatcher rowOffset <= 0 falls back to DefaultAnchorRowOffset
func NewImageMatcher(dir string, rowOffset int, log logrus.FieldLogger) *ImageMatcher {
	if rowOffset <= 0 {
		rowOffset = DefaultAnchorRowOffset
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ImageMatcher{Dir: dir, RowOffset: rowOffset, log: log}
}

type decodedImage struct {
	asset entity.ImageAsset
	code  string
	img   image.Image
}

// RowIndex data row index for a 1-based anchor row
func (m *ImageMatcher) RowIndex(anchorRow int) int {
	return anchorRow - m.RowOffset
}

// Match decodes and assigns every asset to a row, then writes one PNG per
// matched row. When several images resolve to the same row the one later
// in extraction order wins. Individual failures are logged and skipped.
func (m *ImageMatcher) Match(ctx context.Context, rows []entity.ProductRow, assets []entity.ImageAsset) (MatchResult, error) {
	result := MatchResult{Written: make(map[string]string), Found: len(assets)}
	byRow := make(map[int]decodedImage)

	for _, asset := range assets {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		log := m.log.WithFields(logrus.Fields{"image": asset.Ordinal, "cell": asset.Cell})

		if !asset.HasAnchor() {
			log.Warn("⚠️ Image has no usable anchor, skipping")
			result.Skipped++
			result.Warnings++
			continue
		}

		idx := m.RowIndex(asset.AnchorRow)
		if idx < 0 || idx >= len(rows) {
			log.WithFields(logrus.Fields{"row": asset.AnchorRow, "index": idx}).Info("Image outside data rows, skipping")
			result.Skipped++
			continue
		}

		code := rows[idx].ProductCode
		if code == "" {
			log.WithField("index", idx).Warn("⚠️ Image anchored to a row without ProductCode, skipping")
			result.Skipped++
			result.Warnings++
			continue
		}
		if !safeFileName(code) {
			log.WithField("productCode", code).Warn("⚠️ ProductCode is not a valid file name, skipping image")
			result.Skipped++
			result.Warnings++
			continue
		}

		img, format, err := image.Decode(bytes.NewReader(asset.Data))
		if err != nil {
			log.WithError(err).WithField("productCode", code).Warn("⚠️ Image could not be decoded, skipping")
			result.Skipped++
			result.Warnings++
			continue
		}

		if prev, ok := byRow[idx]; ok {
			log.WithFields(logrus.Fields{
				"productCode": code,
				"replaced":    prev.asset.Ordinal,
			}).Warn("⚠️ Several images on one row, keeping the later one")
			result.Warnings++
		}
		log.WithFields(logrus.Fields{"productCode": code, "format": format}).Debug("Image matched")
		byRow[idx] = decodedImage{asset: asset, code: code, img: img}
	}

	if len(byRow) == 0 {
		return result, nil
	}

	if err := os.MkdirAll(m.Dir, 0o755); err != nil {
		return result, fmt.Errorf("failed to create image dir: %w", err)
	}

	indexes := make([]int, 0, len(byRow))
	for idx := range byRow {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	for _, idx := range indexes {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		d := byRow[idx]
		path := filepath.Join(m.Dir, d.code+".png")
		if err := writePNG(path, d.img); err != nil {
			m.log.WithError(err).WithField("productCode", d.code).Warn("⚠️ Error saving image")
			result.Skipped++
			result.Warnings++
			continue
		}

		result.Written[d.code] = path
		result.Matched++
		m.log.WithFields(logrus.Fields{"productCode": d.code, "path": path}).Info("💾 Image saved")
	}

	return result, nil
}

func writePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// safeFileName codes become file names and must stay inside the image dir
func safeFileName(code string) bool {
	if code == "." || code == ".." {
		return false
	}
	return !strings.ContainsAny(code, `/\`+"\x00")
}
