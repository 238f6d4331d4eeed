// internal/domain/models.go
package domain

import (
	"math"
	"strconv"
	"time"
)

type CurrencyType string

const (
	CurrencyTransferablePoints    CurrencyType = "transferable_points"
	CurrencyAirlineMiles          CurrencyType = "airline_miles"
	CurrencyHotelPoints           CurrencyType = "hotel_points"
	CurrencyCashBack              CurrencyType = "cash_back"
	CurrencyNonTransferablePoints CurrencyType = "non_transferable_points"
	CurrencyOther                 CurrencyType = "other"
)

// RewardCurrency — справочная валюта вознаграждений, ядро её не меняет
type RewardCurrency struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Code           string       `json:"code"`
	CurrencyType   CurrencyType `json:"currency_type"`
	BaseValueCents float64      `json:"base_value_cents"`
}

type CurrencyValueOverride struct {
	UserID     string  `json:"-"`
	CurrencyID string  `json:"currency_id"`
	ValueCents float64 `json:"value_cents"`
}

type PointValueTemplate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

type TemplateCurrencyValue struct {
	TemplateID string  `json:"template_id"`
	CurrencyID string  `json:"currency_id"`
	ValueCents float64 `json:"value_cents"`
}

type ProductType string

const (
	ProductPersonal ProductType = "personal"
	ProductBusiness ProductType = "business"
)

// ChargeTypeCharge — карта без кредитной линии (charge card)
const ChargeTypeCharge = "charge"

type Card struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	IssuerName          string      `json:"issuer_name"`
	BrandName           string      `json:"brand_name"`
	ProductType         ProductType `json:"product_type"`
	CardChargeType      string      `json:"card_charge_type"`
	CurrencyID          string      `json:"currency_id,omitempty"`
	SecondaryCurrencyID string      `json:"secondary_currency_id,omitempty"`
	DefaultEarnRate     float64     `json:"default_earn_rate"`
}

type ComponentType string

const (
	ComponentPoints  ComponentType = "points"
	ComponentCash    ComponentType = "cash"
	ComponentBenefit ComponentType = "benefit"
)

// BonusTier — один компонент бонуса. Заполнен ровно один payload, соответствующий ComponentType.
type BonusTier struct {
	ID                    string        `json:"id"`
	OfferID               string        `json:"offer_id"`
	ComponentType         ComponentType `json:"component_type"`
	SpendRequirementCents int64         `json:"spend_requirement_cents"`
	TimePeriod            int           `json:"time_period"`
	TimePeriodUnit        string        `json:"time_period_unit"`

	PointsAmount *int64  `json:"points_amount,omitempty"`
	CurrencyID   *string `json:"currency_id,omitempty"`

	CashAmountCents *int64 `json:"cash_amount_cents,omitempty"`

	BenefitDescription       *string `json:"benefit_description,omitempty"`
	DefaultBenefitValueCents *int64  `json:"default_benefit_value_cents,omitempty"`
}

type ElevatedEarning struct {
	ID           string  `json:"id"`
	ElevatedRate float64 `json:"elevated_rate"`
	Duration     int     `json:"duration"`
	DurationUnit string  `json:"duration_unit"`
	Category     *string `json:"category,omitempty"`
}

type IntroApr struct {
	ID           string  `json:"id"`
	AprType      string  `json:"apr_type"`
	Percentage   float64 `json:"percentage"`
	Duration     int     `json:"duration"`
	DurationUnit string  `json:"duration_unit"`
}

type CardOffer struct {
	ID               string            `json:"id"`
	CardID           string            `json:"card_id"`
	IsArchived       bool              `json:"is_archived"`
	IsFeatured       bool              `json:"is_featured"`
	Bonuses          []BonusTier       `json:"bonuses"`
	ElevatedEarnings []ElevatedEarning `json:"elevated_earnings"`
	IntroAprs        []IntroApr        `json:"intro_aprs"`
}

// OfferWithCard — оффер вместе с картой, к которой он относится
type OfferWithCard struct {
	Offer CardOffer `json:"offer"`
	Card  Card      `json:"card"`
}

// WalletCardApproval — одно одобрение карты для участника домохозяйства ("player").
// ApprovalDate == nil означает, что заявка ещё не одобрена.
type WalletCardApproval struct {
	ID             string      `json:"id"`
	PlayerNumber   int         `json:"player_number"`
	CardID         string      `json:"card_id"`
	IssuerName     string      `json:"issuer_name"`
	BrandName      string      `json:"brand_name"`
	ProductType    ProductType `json:"product_type"`
	CardChargeType string      `json:"card_charge_type"`
	CurrencyID     string      `json:"currency_id,omitempty"`
	ApprovalDate   *time.Time  `json:"approval_date,omitempty"`
	ClosedDate     *time.Time  `json:"closed_date,omitempty"`
}

type EligibilityVerdict struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

func Eligible() EligibilityVerdict {
	return EligibilityVerdict{Eligible: true}
}

func Blocked(reason string) EligibilityVerdict {
	return EligibilityVerdict{Eligible: false, Reason: reason}
}

type ValuationResult struct {
	BonusValueCents       float64 `json:"bonus_value_cents"`
	SpendRequirementCents int64   `json:"spend_requirement_cents"`
	ReturnOnSpendPercent  Percent `json:"return_on_spend_percent"`
}

// Percent — процент доходности; +Inf сериализуется строкой "Infinity", т.к. JSON не умеет бесконечность
type Percent float64

func (p Percent) IsInf() bool {
	return math.IsInf(float64(p), 1)
}

func (p Percent) MarshalJSON() ([]byte, error) {
	f := float64(p)
	switch {
	case math.IsInf(f, 1):
		return []byte(`"Infinity"`), nil
	case math.IsNaN(f) || math.IsInf(f, -1):
		return []byte("0"), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}
