// internal/service/service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"signup-bonus-tracker/internal/eligibility"
	"signup-bonus-tracker/internal/keywords"
	"signup-bonus-tracker/internal/storage"
	"signup-bonus-tracker/internal/valuation"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrUnknownCard     = errors.New("unknown card")
	ErrInvalidPlayer   = errors.New("player number must be positive")
)

type Store interface {
	storage.CurrencyStorage
	storage.TemplateStorage
	storage.OfferStorage
	storage.WalletStorage
}

// Service загружает строки из хранилища и прогоняет через них расчёты.
// Ничего не кэширует: каждое обращение пересчитывается по текущим настройкам пользователя.
type Service struct {
	store         Store
	engine        *eligibility.Engine
	index         keywords.Index
	primaryPlayer int
	now           func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithEngine(e *eligibility.Engine) Option {
	return func(s *Service) { s.engine = e }
}

func WithIndex(idx keywords.Index) Option {
	return func(s *Service) { s.index = idx }
}

// WithPrimaryPlayer — игрок, чей кошелёк включает подмену вторичной валюты
func WithPrimaryPlayer(player int) Option {
	return func(s *Service) {
		if player > 0 {
			s.primaryPlayer = player
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:         store,
		engine:        eligibility.Default(),
		index:         keywords.Default,
		primaryPlayer: 1,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resolver собирает каскад стоимости валют для пользователя.
func (s *Service) resolver(ctx context.Context, userID string) (*valuation.Resolver, error) {
	currencies, err := s.store.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	overrides, err := s.store.ListUserOverrides(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	template, err := s.store.SelectedTemplateValues(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("selected template: %w", err)
	}
	return valuation.NewResolverFromRows(currencies, overrides, template), nil
}
