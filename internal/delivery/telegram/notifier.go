package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/catalogo-json/internal/domain/entity"
	"github.com/yourusername/catalogo-json/internal/domain/repository"
)

// sender the part of *tgbotapi.BotAPI the notifier uses
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// BuildNotifier posts build summaries and artifacts to an admin group
type BuildNotifier struct {
	bot    sender
	chatID int64
	log    logrus.FieldLogger
}

var _ repository.Notifier = (*BuildNotifier)(nil)

// NewBuildNotifier yangi bot notifier yaratish
func NewBuildNotifier(token string, chatID int64, log logrus.FieldLogger) (*BuildNotifier, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat id is empty")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	log.WithField("bot", bot.Self.UserName).Info("🤖 Telegram notifications enabled")

	return newBuildNotifier(bot, chatID, log), nil
}

func newBuildNotifier(bot sender, chatID int64, log logrus.FieldLogger) *BuildNotifier {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BuildNotifier{bot: bot, chatID: chatID, log: log}
}

// NotifyBuild summary message first, then both JSON files as documents
func (n *BuildNotifier) NotifyBuild(ctx context.Context, report entity.BuildReport) error {
	msg := tgbotapi.NewMessage(n.chatID, FormatReport(report))
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send summary: %w", err)
	}

	for _, path := range []string{report.CatalogPath, report.InventoryPath} {
		if path == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		doc := tgbotapi.NewDocument(n.chatID, tgbotapi.FilePath(path))
		if _, err := n.bot.Send(doc); err != nil {
			return fmt.Errorf("failed to send %s: %w", path, err)
		}
		n.log.WithField("path", path).Debug("📎 Artifact sent")
	}

	return nil
}

// FormatReport build summary as chat text
func FormatReport(r entity.BuildReport) string {
	var sb strings.Builder
	sb.WriteString("📦 Catálogo generado\n\n")
	sb.WriteString(fmt.Sprintf("Productos: %d (filas: %d)\n", r.Entries, r.ProductRows))
	if r.SalesLoaded {
		sb.WriteString(fmt.Sprintf("Ventas: %d códigos\n", r.SalesCodes))
	} else {
		sb.WriteString("Ventas: sin datos, se asume 0\n")
	}
	sb.WriteString(fmt.Sprintf("Imágenes: %d de %d\n", r.ImagesMatched, r.ImagesFound))

	if r.Oversold > 0 {
		sb.WriteString(fmt.Sprintf("⚠️ Inventario negativo: %d\n", r.Oversold))
	}
	if r.DuplicateCodes > 0 {
		sb.WriteString(fmt.Sprintf("⚠️ Códigos duplicados: %d\n", r.DuplicateCodes))
	}
	if r.Warnings > 0 {
		sb.WriteString(fmt.Sprintf("Avisos: %d\n", r.Warnings))
	}

	sb.WriteString(fmt.Sprintf("\nrun: %s", r.RunID))
	return sb.String()
}
