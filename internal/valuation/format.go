// internal/valuation/format.go
package valuation

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"signup-bonus-tracker/internal/domain"
)

var printer = message.NewPrinter(language.English)

// FormatComponent — подпись компонента бонуса. Для points берёт имя из эффективной валюты,
// поэтому подпись всегда совпадает с тем, как компонент оценён.
func FormatComponent(b domain.BonusTier, eff *EffectiveCurrency) string {
	switch b.ComponentType {
	case domain.ComponentPoints:
		name := ""
		if eff != nil {
			name = eff.CurrencyName
		}
		return strings.TrimSpace(printer.Sprintf("%d %s", derefInt(b.PointsAmount), name))
	case domain.ComponentCash:
		return FormatDollars(float64(derefInt(b.CashAmountCents))) + " cash"
	case domain.ComponentBenefit:
		if d := strings.TrimSpace(derefString(b.BenefitDescription)); d != "" {
			return d
		}
		return "benefit"
	}
	return string(b.ComponentType)
}

// FormatDollars форматирует центы как "$1,234" (или "$12.50", если есть дробная часть).
func FormatDollars(cents float64) string {
	dollars := cents / 100
	if dollars == float64(int64(dollars)) {
		return printer.Sprintf("$%d", int64(dollars))
	}
	return printer.Sprintf("$%.2f", dollars)
}

// FormatPercent — "22.08%" или "∞" для бесконечной доходности.
func FormatPercent(p domain.Percent) string {
	if p.IsInf() {
		return "∞"
	}
	return printer.Sprintf("%.2f%%", float64(p))
}

// SpendPeriod — "$4,000 in 3 months"
func SpendPeriod(b domain.BonusTier) string {
	if b.SpendRequirementCents <= 0 {
		return "no spend"
	}
	s := FormatDollars(float64(b.SpendRequirementCents))
	if b.TimePeriod > 0 && b.TimePeriodUnit != "" {
		s += printer.Sprintf(" in %d %s", b.TimePeriod, b.TimePeriodUnit)
	}
	return s
}
