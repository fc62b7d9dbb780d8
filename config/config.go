package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/yourusername/catalogo-json/internal/usecase"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	ProductsPath    string
	ProductsSheet   string
	SalesPath       string
	SalesSheet      string
	ImagesDir       string
	OutputDir       string
	AnchorRowOffset int

	LogLevel  string
	LogFormat string

	// Optional notification; both must be set
	TelegramToken string
	AdminChatID   int64
}

// Default locations, relative to the working directory
const (
	DefaultProductsPath  = "data/NHMX511301944912-produdctos.xlsx"
	DefaultProductsSheet = "PCODE"
	DefaultSalesPath     = "data/sales.xlsx"
	DefaultImagesDir     = "catalogo-img"
	DefaultOutputDir     = "output"
)

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	config := &Config{
		ProductsPath:    getEnv("PRODUCTS_PATH", DefaultProductsPath),
		ProductsSheet:   getEnv("PRODUCTS_SHEET", DefaultProductsSheet),
		SalesPath:       getEnv("SALES_PATH", DefaultSalesPath),
		SalesSheet:      os.Getenv("SALES_SHEET"),
		ImagesDir:       getEnv("IMAGES_DIR", DefaultImagesDir),
		OutputDir:       getEnv("OUTPUT_DIR", DefaultOutputDir),
		AnchorRowOffset: usecase.DefaultAnchorRowOffset,
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "text")),
		TelegramToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if raw := os.Getenv("IMAGE_ANCHOR_ROW_OFFSET"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("IMAGE_ANCHOR_ROW_OFFSET noto'g'ri formatda: %v", err)
		}
		if parsed < 1 {
			return nil, fmt.Errorf("IMAGE_ANCHOR_ROW_OFFSET must be >= 1, got %d", parsed)
		}
		config.AnchorRowOffset = parsed
	}

	if rawGroupID := os.Getenv("GROUP_1_CHAT_ID"); rawGroupID != "" {
		if parsed, err := strconv.ParseInt(rawGroupID, 10, 64); err == nil {
			config.AdminChatID = parsed
		} else {
			return nil, fmt.Errorf("GROUP_1_CHAT_ID noto'g'ri formatda: %v", err)
		}
	}

	// Validatsiya
	if config.ProductsPath == "" {
		return nil, fmt.Errorf("PRODUCTS_PATH environment variable bo'sh")
	}
	switch config.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", config.LogFormat)
	}

	return config, nil
}

// NotificationsEnabled token va chat id ikkalasi ham bor
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != "" && c.AdminChatID != 0
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}
