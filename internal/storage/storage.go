// internal/storage/storage.go
package storage

import (
	"context"
	"errors"

	"signup-bonus-tracker/internal/domain"
)

var ErrNotFound = errors.New("not found")

type CurrencyStorage interface {
	ListCurrencies(ctx context.Context) ([]domain.RewardCurrency, error)
	ListUserOverrides(ctx context.Context, userID string) ([]domain.CurrencyValueOverride, error)
	UpsertUserOverride(ctx context.Context, override domain.CurrencyValueOverride) error
	DeleteUserOverride(ctx context.Context, userID, currencyID string) error
}

type TemplateStorage interface {
	ListTemplates(ctx context.Context) ([]domain.PointValueTemplate, error)
	// SelectedTemplateValues — значения шаблона пользователя, либо шаблона по умолчанию.
	// Если шаблонов нет совсем, возвращает пустой срез без ошибки.
	SelectedTemplateValues(ctx context.Context, userID string) ([]domain.TemplateCurrencyValue, error)
	SelectTemplate(ctx context.Context, userID, templateID string) error
}

type OfferStorage interface {
	ListActiveOffers(ctx context.Context) ([]domain.OfferWithCard, error)
	ListCards(ctx context.Context) ([]domain.Card, error)
	FindCard(ctx context.Context, cardID string) (*domain.Card, error)
	AddBonusTier(ctx context.Context, tier domain.BonusTier) (string, error)
}

type WalletStorage interface {
	ListWallet(ctx context.Context, userID string) ([]domain.WalletCardApproval, error)
	AddWalletCard(ctx context.Context, userID string, approval domain.WalletCardApproval) (string, error)
}

type TelegramStorage interface {
	LinkTelegramChat(ctx context.Context, telegramID int64, userID string) error
	FindUserByTelegramID(ctx context.Context, telegramID int64) (string, error)
}
