// internal/service/valuation.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"signup-bonus-tracker/internal/domain"
	"signup-bonus-tracker/internal/valuation"
)

type OfferValuation struct {
	OfferID          string                     `json:"offer_id"`
	IsFeatured       bool                       `json:"is_featured"`
	Card             domain.Card                `json:"card"`
	Valuation        domain.ValuationResult     `json:"valuation"`
	Components       []valuation.ComponentValue `json:"components"`
	ElevatedEarnings []domain.ElevatedEarning   `json:"elevated_earnings"`
	IntroAprs        []domain.IntroApr          `json:"intro_aprs"`
}

// ValueOffers оценивает все активные офферы для пользователя и сортирует их по доходности.
func (s *Service) ValueOffers(ctx context.Context, userID string) ([]OfferValuation, error) {
	r, err := s.resolver(ctx, userID)
	if err != nil {
		return nil, err
	}
	offers, err := s.store.ListActiveOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	wallet, err := s.store.ListWallet(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallet: %w", err)
	}

	held := valuation.HeldCurrencies(wallet, s.primaryPlayer)

	result := make([]OfferValuation, 0, len(offers))
	for _, ow := range offers {
		if ow.Offer.IsArchived {
			continue
		}
		res, bonus := valuation.Evaluate(ow, r, valuation.Substitution{PlayerHeldCurrencies: held})
		result = append(result, OfferValuation{
			OfferID:          ow.Offer.ID,
			IsFeatured:       ow.Offer.IsFeatured,
			Card:             ow.Card,
			Valuation:        res,
			Components:       bonus.Components,
			ElevatedEarnings: ow.Offer.ElevatedEarnings,
			IntroAprs:        ow.Offer.IntroAprs,
		})
	}

	SortByReturnOnSpend(result)
	slog.Info("Offers valued", "user_id", userID, "count", len(result), "held_currencies", len(held))
	return result, nil
}

// SortByReturnOnSpend: по убыванию доходности (+Inf первыми), при равенстве — по стоимости бонуса.
func SortByReturnOnSpend(offers []OfferValuation) {
	sort.SliceStable(offers, func(i, j int) bool {
		a, b := offers[i].Valuation, offers[j].Valuation
		if a.ReturnOnSpendPercent != b.ReturnOnSpendPercent {
			return a.ReturnOnSpendPercent > b.ReturnOnSpendPercent
		}
		return a.BonusValueCents > b.BonusValueCents
	})
}

type CurrencyValue struct {
	Currency   domain.RewardCurrency `json:"currency"`
	ValueCents float64               `json:"value_cents"`
	Source     valuation.ValueSource `json:"source"`
}

// CurrencyValues — действующая стоимость каждой валюты для пользователя и её источник.
func (s *Service) CurrencyValues(ctx context.Context, userID string) ([]CurrencyValue, error) {
	r, err := s.resolver(ctx, userID)
	if err != nil {
		return nil, err
	}
	currencies, err := s.store.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}

	values := make([]CurrencyValue, 0, len(currencies))
	for _, c := range currencies {
		v, src := r.Resolve(c.ID)
		values = append(values, CurrencyValue{Currency: c, ValueCents: v, Source: src})
	}
	return values, nil
}

func (s *Service) SetCurrencyValue(ctx context.Context, userID, currencyID string, valueCents float64) error {
	currencies, err := s.store.ListCurrencies(ctx)
	if err != nil {
		return fmt.Errorf("list currencies: %w", err)
	}
	found := false
	for _, c := range currencies {
		if c.ID == currencyID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, currencyID)
	}

	if err := s.store.UpsertUserOverride(ctx, domain.CurrencyValueOverride{
		UserID:     userID,
		CurrencyID: currencyID,
		ValueCents: valueCents,
	}); err != nil {
		return err
	}
	slog.Info("Currency value override set", "user_id", userID, "currency_id", currencyID, "value_cents", valueCents)
	return nil
}

func (s *Service) ResetCurrencyValue(ctx context.Context, userID, currencyID string) error {
	return s.store.DeleteUserOverride(ctx, userID, currencyID)
}

func (s *Service) Templates(ctx context.Context) ([]domain.PointValueTemplate, error) {
	return s.store.ListTemplates(ctx)
}

func (s *Service) SelectTemplate(ctx context.Context, userID, templateID string) error {
	if err := s.store.SelectTemplate(ctx, userID, templateID); err != nil {
		return err
	}
	slog.Info("Point value template selected", "user_id", userID, "template_id", templateID)
	return nil
}
