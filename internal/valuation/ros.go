// internal/valuation/ros.go
package valuation

import (
	"math"

	"signup-bonus-tracker/internal/domain"
)

// ComputeReturnOnSpend — доходность на требуемые траты в процентах.
//
// При требовании до $1 включительно (часто "$1 minimum purchase") любой положительный
// бонус даёт +Inf, нулевой — 0. Иначе к бонусу добавляется обычный заработок на сами траты.
func ComputeReturnOnSpend(spendRequirementCents int64, bonusValueCents, earnRate, cardCurrencyValueCents float64) domain.Percent {
	bonusValueCents = coalesce(bonusValueCents)
	earnRate = coalesce(earnRate)
	cardCurrencyValueCents = coalesce(cardCurrencyValueCents)

	spendDollars := float64(spendRequirementCents) / 100
	if spendDollars <= 1 {
		if bonusValueCents > 0 {
			return domain.Percent(math.Inf(1))
		}
		return 0
	}

	earnedPoints := spendDollars * earnRate
	earnedDollars := earnedPoints * cardCurrencyValueCents / 100
	ros := (bonusValueCents/100 + earnedDollars) / spendDollars * 100
	return domain.Percent(coalesce(ros))
}

// Evaluate считает полную оценку оффера: бонус, требование по тратам и доходность.
// Заработок на траты оценивается в эффективной основной валюте карты.
func Evaluate(ow domain.OfferWithCard, r *Resolver, sub Substitution) (domain.ValuationResult, BonusValue) {
	sub.Card = ow.Card
	bonus := ComputeBonusValue(ow.Offer, r, sub)
	spend := SpendRequirementCents(ow.Offer)
	cardCurrency := ResolveEffectiveCurrency(ow.Card.CurrencyID, sub, r)

	return domain.ValuationResult{
		BonusValueCents:       bonus.TotalValueCents,
		SpendRequirementCents: spend,
		ReturnOnSpendPercent:  ComputeReturnOnSpend(spend, bonus.TotalValueCents, ow.Card.DefaultEarnRate, cardCurrency.CurrencyValueCents),
	}, bonus
}

func coalesce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
