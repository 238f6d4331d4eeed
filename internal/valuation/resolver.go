// internal/valuation/resolver.go
package valuation

import (
	"math"

	"signup-bonus-tracker/internal/domain"
)

// FallbackValueCents — значение для валюты, о которой ничего не известно
const FallbackValueCents = 1.0

type ValueSource string

const (
	SourceOverride ValueSource = "override"
	SourceTemplate ValueSource = "template"
	SourceBase     ValueSource = "base"
	SourceFallback ValueSource = "fallback"
)

// ResolverContext — всё, что нужно для определения стоимости валюты.
// Карты только читаются, поэтому один контекст можно использовать из нескольких горутин.
type ResolverContext struct {
	UserOverrides  map[string]float64
	TemplateValues map[string]float64
	Currencies     map[string]domain.RewardCurrency
}

// Resolver — единственный каскад определения стоимости валюты:
// пользовательское значение → шаблон → базовое значение → 1.
type Resolver struct {
	ctx ResolverContext
}

func NewResolver(ctx ResolverContext) *Resolver {
	return &Resolver{ctx: ctx}
}

// NewResolverFromRows собирает контекст из строк хранилища.
func NewResolverFromRows(currencies []domain.RewardCurrency, overrides []domain.CurrencyValueOverride, template []domain.TemplateCurrencyValue) *Resolver {
	ctx := ResolverContext{
		UserOverrides:  make(map[string]float64, len(overrides)),
		TemplateValues: make(map[string]float64, len(template)),
		Currencies:     make(map[string]domain.RewardCurrency, len(currencies)),
	}
	for _, c := range currencies {
		ctx.Currencies[c.ID] = c
	}
	for _, o := range overrides {
		ctx.UserOverrides[o.CurrencyID] = o.ValueCents
	}
	for _, t := range template {
		ctx.TemplateValues[t.CurrencyID] = t.ValueCents
	}
	return NewResolver(ctx)
}

// ValueCents возвращает стоимость одной единицы валюты в центах. Никогда не возвращает ошибку.
func (r *Resolver) ValueCents(currencyID string) float64 {
	v, _ := r.Resolve(currencyID)
	return v
}

// Resolve возвращает стоимость и источник, из которого она взята.
func (r *Resolver) Resolve(currencyID string) (float64, ValueSource) {
	if v, ok := r.ctx.UserOverrides[currencyID]; ok && finite(v) {
		return v, SourceOverride
	}
	if v, ok := r.ctx.TemplateValues[currencyID]; ok && finite(v) {
		return v, SourceTemplate
	}
	if c, ok := r.ctx.Currencies[currencyID]; ok && finite(c.BaseValueCents) {
		return c.BaseValueCents, SourceBase
	}
	return FallbackValueCents, SourceFallback
}

// Currency возвращает справочную запись валюты, если она есть.
func (r *Resolver) Currency(currencyID string) (domain.RewardCurrency, bool) {
	c, ok := r.ctx.Currencies[currencyID]
	return c, ok
}

// CurrencyName — имя валюты для отображения; для неизвестной валюты возвращается её id.
func (r *Resolver) CurrencyName(currencyID string) string {
	if c, ok := r.Currency(currencyID); ok && c.Name != "" {
		return c.Name
	}
	return currencyID
}

// ResolveCurrencyValueCents — функциональная форма каскада для вызывающего кода без Resolver.
func ResolveCurrencyValueCents(currencyID string, ctx ResolverContext) float64 {
	return NewResolver(ctx).ValueCents(currencyID)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
