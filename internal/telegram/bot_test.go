package telegram

import (
	"context"
	"errors"
	"math"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"signup-bonus-tracker/internal/domain"
	"signup-bonus-tracker/internal/service"
	"signup-bonus-tracker/internal/storage"
	mockstorage "signup-bonus-tracker/internal/storage/mock"
	"signup-bonus-tracker/internal/valuation"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ValueOffers(ctx context.Context, userID string) ([]service.OfferValuation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]service.OfferValuation), args.Error(1)
}

func (m *mockService) IssuerVerdicts(ctx context.Context, userID string, player int) (map[string]service.IssuerVerdict, error) {
	args := m.Called(ctx, userID, player)
	return args.Get(0).(map[string]service.IssuerVerdict), args.Error(1)
}

func (m *mockService) Search(ctx context.Context, term string) (service.SearchResult, error) {
	args := m.Called(ctx, term)
	return args.Get(0).(service.SearchResult), args.Error(1)
}

type stubTokens struct{}

func (stubTokens) ParseToken(tokenStr string) (string, error) {
	if tokenStr == "good" {
		return "6f1c1c4e-3a0c-4f5e-9a59-0d6f3c1a2b7e", nil
	}
	return "", errors.New("bad token")
}

type recordingSender struct {
	sent []tgbotapi.MessageConfig
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		r.sent = append(r.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

type BotTestSuite struct {
	suite.Suite
	svc   *mockService
	links *mockstorage.Storage
	bot   *Bot
}

func TestBotSuite(t *testing.T) {
	suite.Run(t, new(BotTestSuite))
}

func (s *BotTestSuite) SetupTest() {
	s.svc = &mockService{}
	s.links = &mockstorage.Storage{}
	s.bot = NewBot(s.svc, s.links, stubTokens{})
}

func (s *BotTestSuite) TearDownTest() {
	s.svc.AssertExpectations(s.T())
	s.links.AssertExpectations(s.T())
}

func (s *BotTestSuite) TestHelp() {
	reply, err := s.bot.Reply(context.Background(), 1, "/help")
	s.Require().NoError(err)
	s.Contains(reply, "/offers")
}

func (s *BotTestSuite) TestEligibleUsesChatUserWhenNotLinked() {
	s.links.On("FindUserByTelegramID", mock.Anything, int64(77)).Return("", storage.ErrNotFound)
	s.svc.On("IssuerVerdicts", mock.Anything, ChatUserID(77), 2).Return(map[string]service.IssuerVerdict{
		"Chase": {Personal: domain.Blocked("5/24 rule"), Business: domain.Blocked("5/24 rule")},
		"Citi":  {Personal: domain.Eligible(), Business: domain.Blocked("1/95 business rule")},
		"Amex":  {Personal: domain.Eligible(), Business: domain.Eligible()},
	}, nil)

	reply, err := s.bot.Reply(context.Background(), 77, "/eligible@signup_bot 2")
	s.Require().NoError(err)
	s.Contains(reply, "⛔ Chase: 5/24 rule")
	s.Contains(reply, "⚠️ Citi: бизнес-карты — 1/95 business rule")
	s.Contains(reply, "✅ Amex")
}

func (s *BotTestSuite) TestEligibleBadPlayer() {
	s.links.On("FindUserByTelegramID", mock.Anything, int64(77)).Return("u-1", nil)

	reply, err := s.bot.Reply(context.Background(), 77, "/eligible two")
	s.Require().NoError(err)
	s.Contains(reply, "Используй")
}

func (s *BotTestSuite) TestLink() {
	s.links.On("LinkTelegramChat", mock.Anything, int64(5), "6f1c1c4e-3a0c-4f5e-9a59-0d6f3c1a2b7e").Return(nil)

	reply, err := s.bot.Reply(context.Background(), 5, "/link good")
	s.Require().NoError(err)
	s.Contains(reply, "✅")

	reply, err = s.bot.Reply(context.Background(), 5, "/link bad")
	s.Require().NoError(err)
	s.Contains(reply, "недействителен")
}

func (s *BotTestSuite) TestStorageFailureIsReported() {
	s.links.On("FindUserByTelegramID", mock.Anything, int64(9)).Return("", errors.New("db down"))

	_, err := s.bot.Reply(context.Background(), 9, "/offers")
	s.Error(err)
}

func (s *BotTestSuite) TestHandleUpdateSendsMarkdownReply() {
	sender := &recordingSender{}
	update := tgbotapi.Update{Message: &tgbotapi.Message{
		Text: "/start",
		Chat: &tgbotapi.Chat{ID: 100},
		From: &tgbotapi.User{ID: 200},
	}}

	s.bot.HandleUpdate(context.Background(), sender, update)

	s.Require().Len(sender.sent, 1)
	s.Equal(int64(100), sender.sent[0].ChatID)
	s.Equal(tgbotapi.ModeMarkdown, sender.sent[0].ParseMode)
}

func (s *BotTestSuite) TestUnknownCommand() {
	s.links.On("FindUserByTelegramID", mock.Anything, int64(1)).Return("u-1", nil)

	reply, err := s.bot.Reply(context.Background(), 1, "/month")
	s.Require().NoError(err)
	s.Contains(reply, "/help")
}

func TestFormatOffers(t *testing.T) {
	offers := []service.OfferValuation{
		{
			Card:      domain.Card{Name: "Chase Freedom Unlimited"},
			Valuation: domain.ValuationResult{BonusValueCents: 40000, SpendRequirementCents: 400000, ReturnOnSpendPercent: 13},
			Components: []valuation.ComponentValue{
				{Label: "20,000 Chase Ultimate Rewards", SpendRequirementCents: 400000, SpendLabel: "$4,000 in 3 months", Currency: &valuation.EffectiveCurrency{IsSubstituted: true}},
				{Label: "$50 cash", SpendLabel: "no spend"},
			},
		},
		{
			Card:      domain.Card{Name: "Penny_Card"},
			Valuation: domain.ValuationResult{BonusValueCents: 100, SpendRequirementCents: 100, ReturnOnSpendPercent: domain.Percent(math.Inf(1))},
		},
	}

	got := FormatOffers(offers, 5)
	assert.Contains(t, got, "бонус $400, траты $4,000, доходность 13.00%")
	assert.Contains(t, got, "20,000 Chase Ultimate Rewards ($4,000 in 3 months) 🔁")
	assert.Contains(t, got, "   - $50 cash\n")
	assert.NotContains(t, got, "no spend")
	assert.Contains(t, got, `Penny\_Card`)
	assert.Contains(t, got, "доходность ∞")

	assert.NotContains(t, FormatOffers(offers, 1), "Penny")
	assert.Contains(t, FormatOffers(nil, 5), "нет")
}

func TestFormatSearchEmpty(t *testing.T) {
	assert.Contains(t, FormatSearch("zzz", service.SearchResult{}), "Ничего не найдено")
}

func TestChatUserIDIsStable(t *testing.T) {
	require.Equal(t, ChatUserID(42), ChatUserID(42))
	assert.NotEqual(t, ChatUserID(42), ChatUserID(43))
	assert.Len(t, ChatUserID(42), 36)
}
