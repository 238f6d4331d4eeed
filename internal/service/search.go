// internal/service/search.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"signup-bonus-tracker/internal/domain"
	"signup-bonus-tracker/internal/validator"
)

type SearchResult struct {
	Cards      []domain.Card           `json:"cards"`
	Currencies []domain.RewardCurrency `json:"currencies"`
}

// Search ищет карты (по названию, эмитенту, бренду и валютам) и валюты с учётом синонимов ("amex", "ur", "csr").
func (s *Service) Search(ctx context.Context, term string) (SearchResult, error) {
	result := SearchResult{Cards: []domain.Card{}, Currencies: []domain.RewardCurrency{}}
	if strings.TrimSpace(term) == "" {
		return result, nil
	}

	currencies, err := s.store.ListCurrencies(ctx)
	if err != nil {
		return result, fmt.Errorf("list currencies: %w", err)
	}
	currencyNames := make(map[string]string, len(currencies))
	for _, c := range currencies {
		currencyNames[c.ID] = c.Name
		if s.index.Matches(term, c.Name, c.Code) {
			result.Currencies = append(result.Currencies, c)
		}
	}

	cards, err := s.store.ListCards(ctx)
	if err != nil {
		return result, fmt.Errorf("list cards: %w", err)
	}
	for _, c := range cards {
		// карта находится и по названию своей валюты: "ur" → все карты Ultimate Rewards
		if s.index.Matches(term, c.Name, c.IssuerName, c.BrandName, currencyNames[c.CurrencyID], currencyNames[c.SecondaryCurrencyID]) {
			result.Cards = append(result.Cards, c)
		}
	}

	slog.Debug("Search", "term", term, "cards", len(result.Cards), "currencies", len(result.Currencies))
	return result, nil
}

// AddBonusTier проверяет компонент бонуса и добавляет его к офферу.
func (s *Service) AddBonusTier(ctx context.Context, tier domain.BonusTier) (string, error) {
	if err := validator.Validate.Struct(tier); err != nil {
		return "", err
	}
	id, err := s.store.AddBonusTier(ctx, tier)
	if err != nil {
		return "", err
	}
	slog.Info("Bonus tier added", "offer_id", tier.OfferID, "tier_id", id, "component_type", tier.ComponentType)
	return id, nil
}
