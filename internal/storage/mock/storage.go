package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"signup-bonus-tracker/internal/domain"
)

// Storage is a mock implementation of every storage interface
type Storage struct {
	mock.Mock
}

// ListCurrencies implements storage.CurrencyStorage
func (m *Storage) ListCurrencies(ctx context.Context) ([]domain.RewardCurrency, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RewardCurrency), args.Error(1)
}

// ListUserOverrides implements storage.CurrencyStorage
func (m *Storage) ListUserOverrides(ctx context.Context, userID string) ([]domain.CurrencyValueOverride, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.CurrencyValueOverride), args.Error(1)
}

// UpsertUserOverride implements storage.CurrencyStorage
func (m *Storage) UpsertUserOverride(ctx context.Context, override domain.CurrencyValueOverride) error {
	args := m.Called(ctx, override)
	return args.Error(0)
}

// DeleteUserOverride implements storage.CurrencyStorage
func (m *Storage) DeleteUserOverride(ctx context.Context, userID, currencyID string) error {
	args := m.Called(ctx, userID, currencyID)
	return args.Error(0)
}

// ListTemplates implements storage.TemplateStorage
func (m *Storage) ListTemplates(ctx context.Context) ([]domain.PointValueTemplate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PointValueTemplate), args.Error(1)
}

// SelectedTemplateValues implements storage.TemplateStorage
func (m *Storage) SelectedTemplateValues(ctx context.Context, userID string) ([]domain.TemplateCurrencyValue, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.TemplateCurrencyValue), args.Error(1)
}

// SelectTemplate implements storage.TemplateStorage
func (m *Storage) SelectTemplate(ctx context.Context, userID, templateID string) error {
	args := m.Called(ctx, userID, templateID)
	return args.Error(0)
}

// ListActiveOffers implements storage.OfferStorage
func (m *Storage) ListActiveOffers(ctx context.Context) ([]domain.OfferWithCard, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.OfferWithCard), args.Error(1)
}

// ListCards implements storage.OfferStorage
func (m *Storage) ListCards(ctx context.Context) ([]domain.Card, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Card), args.Error(1)
}

// FindCard implements storage.OfferStorage
func (m *Storage) FindCard(ctx context.Context, cardID string) (*domain.Card, error) {
	args := m.Called(ctx, cardID)
	card, _ := args.Get(0).(*domain.Card)
	return card, args.Error(1)
}

// AddBonusTier implements storage.OfferStorage
func (m *Storage) AddBonusTier(ctx context.Context, tier domain.BonusTier) (string, error) {
	args := m.Called(ctx, tier)
	return args.String(0), args.Error(1)
}

// ListWallet implements storage.WalletStorage
func (m *Storage) ListWallet(ctx context.Context, userID string) ([]domain.WalletCardApproval, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.WalletCardApproval), args.Error(1)
}

// AddWalletCard implements storage.WalletStorage
func (m *Storage) AddWalletCard(ctx context.Context, userID string, approval domain.WalletCardApproval) (string, error) {
	args := m.Called(ctx, userID, approval)
	return args.String(0), args.Error(1)
}

// LinkTelegramChat implements storage.TelegramStorage
func (m *Storage) LinkTelegramChat(ctx context.Context, telegramID int64, userID string) error {
	args := m.Called(ctx, telegramID, userID)
	return args.Error(0)
}

// FindUserByTelegramID implements storage.TelegramStorage
func (m *Storage) FindUserByTelegramID(ctx context.Context, telegramID int64) (string, error) {
	args := m.Called(ctx, telegramID)
	return args.String(0), args.Error(1)
}
