// internal/valuation/bonus.go
package valuation

import (
	"github.com/shopspring/decimal"

	"signup-bonus-tracker/internal/domain"
)

// EffectiveCurrency — валюта, в которой бонус реально оценивается и показывается.
type EffectiveCurrency struct {
	CurrencyID         string  `json:"currency_id"`
	CurrencyName       string  `json:"currency_name"`
	CurrencyValueCents float64 `json:"currency_value_cents"`
	IsSubstituted      bool    `json:"is_substituted"`
}

// Substitution описывает, что нужно для подмены основной валюты карты на вторичную.
type Substitution struct {
	Card domain.Card
	// PlayerHeldCurrencies — основные валюты карт, которые уже есть у основного игрока
	PlayerHeldCurrencies map[string]struct{}
}

// HeldCurrencies собирает основные валюты открытых одобренных карт игрока.
func HeldCurrencies(wallet []domain.WalletCardApproval, player int) map[string]struct{} {
	held := make(map[string]struct{})
	for _, w := range wallet {
		if w.PlayerNumber != player || w.ApprovalDate == nil || w.ClosedDate != nil {
			continue
		}
		if w.CurrencyID == "" {
			continue
		}
		held[w.CurrencyID] = struct{}{}
	}
	return held
}

// ResolveEffectiveCurrency — единственное место, где решается подмена валюты.
// Им пользуются и расчёт стоимости, и форматирование, чтобы они не расходились.
func ResolveEffectiveCurrency(currencyID string, sub Substitution, r *Resolver) EffectiveCurrency {
	card := sub.Card
	if currencyID != "" &&
		currencyID == card.CurrencyID &&
		card.SecondaryCurrencyID != "" &&
		card.SecondaryCurrencyID != currencyID {
		if _, ok := sub.PlayerHeldCurrencies[card.SecondaryCurrencyID]; ok {
			return EffectiveCurrency{
				CurrencyID:         card.SecondaryCurrencyID,
				CurrencyName:       r.CurrencyName(card.SecondaryCurrencyID),
				CurrencyValueCents: r.ValueCents(card.SecondaryCurrencyID),
				IsSubstituted:      true,
			}
		}
	}
	return EffectiveCurrency{
		CurrencyID:         currencyID,
		CurrencyName:       r.CurrencyName(currencyID),
		CurrencyValueCents: r.ValueCents(currencyID),
	}
}

type ComponentValue struct {
	BonusID               string               `json:"bonus_id"`
	ComponentType         domain.ComponentType `json:"component_type"`
	SpendRequirementCents int64                `json:"spend_requirement_cents"`
	ValueCents            float64              `json:"value_cents"`
	PointsAmount          int64                `json:"points_amount,omitempty"`
	Currency              *EffectiveCurrency   `json:"currency,omitempty"`
	Label                 string               `json:"label"`
	SpendLabel            string               `json:"spend_label"`
}

type BonusValue struct {
	TotalValueCents float64          `json:"total_value_cents"`
	Components      []ComponentValue `json:"components"`
}

// ComputeBonusValue оценивает все компоненты бонуса оффера и суммирует их.
// Отсутствующие суммы считаются нулём, паники и ошибок нет.
func ComputeBonusValue(offer domain.CardOffer, r *Resolver, sub Substitution) BonusValue {
	total := decimal.Zero
	components := make([]ComponentValue, 0, len(offer.Bonuses))

	for _, b := range offer.Bonuses {
		cv := ComputeComponentValue(b, r, sub)
		total = total.Add(decimal.NewFromFloat(cv.ValueCents))
		components = append(components, cv)
	}

	return BonusValue{
		TotalValueCents: total.InexactFloat64(),
		Components:      components,
	}
}

func ComputeComponentValue(b domain.BonusTier, r *Resolver, sub Substitution) ComponentValue {
	cv := ComponentValue{
		BonusID:               b.ID,
		ComponentType:         b.ComponentType,
		SpendRequirementCents: max(b.SpendRequirementCents, 0),
	}

	switch b.ComponentType {
	case domain.ComponentPoints:
		points := derefInt(b.PointsAmount)
		eff := ResolveEffectiveCurrency(derefString(b.CurrencyID), sub, r)
		value := decimal.NewFromInt(points).Mul(decimal.NewFromFloat(eff.CurrencyValueCents))
		cv.PointsAmount = points
		cv.Currency = &eff
		cv.ValueCents = value.InexactFloat64()
	case domain.ComponentCash:
		cv.ValueCents = float64(derefInt(b.CashAmountCents))
	case domain.ComponentBenefit:
		cv.ValueCents = float64(derefInt(b.DefaultBenefitValueCents))
	}

	if !finite(cv.ValueCents) {
		cv.ValueCents = 0
	}
	cv.Label = FormatComponent(b, cv.Currency)
	cv.SpendLabel = SpendPeriod(b)
	return cv
}

// SpendRequirementCents — требование по тратам оффера: максимум по компонентам.
func SpendRequirementCents(offer domain.CardOffer) int64 {
	var spend int64
	for _, b := range offer.Bonuses {
		if b.SpendRequirementCents > spend {
			spend = b.SpendRequirementCents
		}
	}
	return spend
}

func derefInt(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
