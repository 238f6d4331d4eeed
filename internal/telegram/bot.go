// internal/telegram/bot.go
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"signup-bonus-tracker/internal/service"
	"signup-bonus-tracker/internal/storage"
	"signup-bonus-tracker/internal/valuation"
)

const topOffers = 5

// chatUserNamespace — пространство имён для UUID пользователей, ещё не связанных через /link
var chatUserNamespace = uuid.MustParse("3d2f6c1e-8b4a-4c1f-9e57-6a0b9d2c4e11")

type Service interface {
	ValueOffers(ctx context.Context, userID string) ([]service.OfferValuation, error)
	IssuerVerdicts(ctx context.Context, userID string, player int) (map[string]service.IssuerVerdict, error)
	Search(ctx context.Context, term string) (service.SearchResult, error)
}

type TokenParser interface {
	ParseToken(tokenStr string) (string, error)
}

// Sender — часть *tgbotapi.BotAPI, нужная для ответа
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot разбирает команды чата. Используется и вебхуком в cmd/api, и long polling в cmd/bot.
type Bot struct {
	svc    Service
	links  storage.TelegramStorage
	tokens TokenParser
}

func NewBot(svc Service, links storage.TelegramStorage, tokens TokenParser) *Bot {
	return &Bot{svc: svc, links: links, tokens: tokens}
}

// HandleUpdate отвечает на одно входящее сообщение.
func (b *Bot) HandleUpdate(ctx context.Context, sender Sender, update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	text := SanitizeInput(FixEncoding(update.Message.Text))
	slog.Info("📥 Получено сообщение", "telegram_id", telegramID, "text", text)

	reply, err := b.Reply(ctx, telegramID, text)
	if err != nil {
		slog.Error("Command failed", "telegram_id", telegramID, "text", text, "error", err)
		reply = "❌ Ошибка: не удалось выполнить команду"
	}

	msg := tgbotapi.NewMessage(chatID, reply)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := sender.Send(msg); err != nil {
		slog.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}

// Reply — текст ответа на команду. Ошибка означает сбой хранилища, а не плохой ввод.
func (b *Bot) Reply(ctx context.Context, telegramID int64, text string) (string, error) {
	cmd, arg := splitCommand(text)

	switch cmd {
	case "/start", "/help":
		return helpText, nil
	case "/link":
		return b.link(ctx, telegramID, arg)
	}

	userID, err := b.userID(ctx, telegramID)
	if err != nil {
		return "", err
	}

	switch cmd {
	case "/offers":
		offers, err := b.svc.ValueOffers(ctx, userID)
		if err != nil {
			return "", err
		}
		return FormatOffers(offers, topOffers), nil

	case "/eligible":
		player := 1
		if arg != "" {
			p, err := strconv.Atoi(arg)
			if err != nil || p < 1 {
				return "❌ Используй: /eligible 1 (номер игрока)", nil
			}
			player = p
		}
		verdicts, err := b.svc.IssuerVerdicts(ctx, userID, player)
		if err != nil {
			return "", err
		}
		return FormatVerdicts(player, verdicts), nil

	case "/search":
		if arg == "" {
			return "❌ Используй: /search amex", nil
		}
		result, err := b.svc.Search(ctx, arg)
		if err != nil {
			return "", err
		}
		return FormatSearch(arg, result), nil
	}

	return "Неизвестная команда. Напиши /help", nil
}

func (b *Bot) link(ctx context.Context, telegramID int64, token string) (string, error) {
	if token == "" {
		return "❌ Используй: /link <токен из /api/v1/login>", nil
	}
	userID, err := b.tokens.ParseToken(token)
	if err != nil {
		return "❌ Токен недействителен или истёк", nil
	}
	if err := b.links.LinkTelegramChat(ctx, telegramID, userID); err != nil {
		return "", err
	}
	slog.Info("Telegram chat linked", "telegram_id", telegramID, "user_id", userID)
	return "✅ Чат привязан к аккаунту", nil
}

// userID: связанный через /link пользователь, иначе стабильный UUID от telegram id
func (b *Bot) userID(ctx context.Context, telegramID int64) (string, error) {
	id, err := b.links.FindUserByTelegramID(ctx, telegramID)
	if err == nil {
		return id, nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return ChatUserID(telegramID), nil
	}
	return "", fmt.Errorf("find telegram link: %w", err)
}

func ChatUserID(telegramID int64) string {
	return uuid.NewSHA1(chatUserNamespace, []byte(strconv.FormatInt(telegramID, 10))).String()
}

const helpText = "💳 *Трекер бонусов за открытие карт*\n\n" +
	"Команды:\n" +
	"`/offers` — лучшие офферы по доходности на траты\n" +
	"`/eligible 1` — какие эмитенты одобрят игрока 1\n" +
	"`/search amex` — поиск карт и валют (понимает сокращения)\n" +
	"`/link <токен>` — привязать чат к аккаунту API"

func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func FormatOffers(offers []service.OfferValuation, limit int) string {
	if len(offers) == 0 {
		return "📭 Активных офферов нет"
	}
	if limit > 0 && len(offers) > limit {
		offers = offers[:limit]
	}

	lines := []string{"🏆 *Лучшие офферы*"}
	for i, o := range offers {
		v := o.Valuation
		lines = append(lines, fmt.Sprintf("\n%d. *%s*", i+1, esc(o.Card.Name)))
		lines = append(lines, fmt.Sprintf("   бонус %s, траты %s, доходность %s",
			valuation.FormatDollars(v.BonusValueCents),
			valuation.FormatDollars(float64(v.SpendRequirementCents)),
			valuation.FormatPercent(v.ReturnOnSpendPercent)))
		for _, c := range o.Components {
			line := "   - " + esc(c.Label)
			if c.SpendRequirementCents > 0 {
				line += " (" + esc(c.SpendLabel) + ")"
			}
			if c.Currency != nil && c.Currency.IsSubstituted {
				line += " 🔁"
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func FormatVerdicts(player int, verdicts map[string]service.IssuerVerdict) string {
	issuers := make([]string, 0, len(verdicts))
	for issuer := range verdicts {
		issuers = append(issuers, issuer)
	}
	sort.Strings(issuers)

	lines := []string{fmt.Sprintf("🧾 *Игрок %d*", player)}
	for _, issuer := range issuers {
		v := verdicts[issuer]
		switch {
		case !v.Personal.Eligible:
			lines = append(lines, fmt.Sprintf("⛔ %s: %s", esc(issuer), esc(v.Personal.Reason)))
		case !v.Business.Eligible:
			lines = append(lines, fmt.Sprintf("⚠️ %s: бизнес-карты — %s", esc(issuer), esc(v.Business.Reason)))
		default:
			lines = append(lines, "✅ "+esc(issuer))
		}
	}
	return strings.Join(lines, "\n")
}

func FormatSearch(term string, result service.SearchResult) string {
	if len(result.Cards) == 0 && len(result.Currencies) == 0 {
		return fmt.Sprintf("📭 Ничего не найдено по *%s*", esc(term))
	}

	lines := []string{fmt.Sprintf("🔍 *Результаты по %s*", esc(term))}
	for _, c := range result.Cards {
		lines = append(lines, fmt.Sprintf("- %s (%s)", esc(c.Name), esc(c.IssuerName)))
	}
	for _, c := range result.Currencies {
		lines = append(lines, fmt.Sprintf("- 🪙 %s", esc(c.Name)))
	}
	return strings.Join(lines, "\n")
}
