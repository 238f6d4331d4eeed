// internal/validator/validator.go
package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"signup-bonus-tracker/internal/domain"
)

var Validate *validator.Validate

var nonBlank = regexp.MustCompile(`\S`)

func init() {
	Validate = validator.New()

	// строка не пустая и не только пробелы
	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return nonBlank.MatchString(fl.Field().String())
	})

	_ = Validate.RegisterValidation("componenttype", func(fl validator.FieldLevel) bool {
		switch domain.ComponentType(fl.Field().String()) {
		case domain.ComponentPoints, domain.ComponentCash, domain.ComponentBenefit:
			return true
		}
		return false
	})

	_ = Validate.RegisterValidation("producttype", func(fl validator.FieldLevel) bool {
		switch domain.ProductType(fl.Field().String()) {
		case domain.ProductPersonal, domain.ProductBusiness:
			return true
		}
		return false
	})

	Validate.RegisterStructValidation(bonusTierStructLevel, domain.BonusTier{})
}

// bonusTierStructLevel: payload должен соответствовать component_type, и только он.
func bonusTierStructLevel(sl validator.StructLevel) {
	b := sl.Current().Interface().(domain.BonusTier)

	hasPoints := b.PointsAmount != nil || b.CurrencyID != nil
	hasCash := b.CashAmountCents != nil
	hasBenefit := b.BenefitDescription != nil || b.DefaultBenefitValueCents != nil

	if b.SpendRequirementCents < 0 {
		sl.ReportError(b.SpendRequirementCents, "SpendRequirementCents", "spend_requirement_cents", "gte", "0")
	}

	switch b.ComponentType {
	case domain.ComponentPoints:
		if b.PointsAmount == nil || *b.PointsAmount < 0 {
			sl.ReportError(b.PointsAmount, "PointsAmount", "points_amount", "required", "")
		}
		if b.CurrencyID == nil || strings.TrimSpace(*b.CurrencyID) == "" {
			sl.ReportError(b.CurrencyID, "CurrencyID", "currency_id", "required", "")
		}
		if hasCash || hasBenefit {
			sl.ReportError(b.ComponentType, "ComponentType", "component_type", "payload", "points")
		}
	case domain.ComponentCash:
		if b.CashAmountCents == nil || *b.CashAmountCents < 0 {
			sl.ReportError(b.CashAmountCents, "CashAmountCents", "cash_amount_cents", "required", "")
		}
		if hasPoints || hasBenefit {
			sl.ReportError(b.ComponentType, "ComponentType", "component_type", "payload", "cash")
		}
	case domain.ComponentBenefit:
		if b.BenefitDescription == nil || strings.TrimSpace(*b.BenefitDescription) == "" {
			sl.ReportError(b.BenefitDescription, "BenefitDescription", "benefit_description", "required", "")
		}
		if b.DefaultBenefitValueCents == nil || *b.DefaultBenefitValueCents < 0 {
			sl.ReportError(b.DefaultBenefitValueCents, "DefaultBenefitValueCents", "default_benefit_value_cents", "required", "")
		}
		if hasPoints || hasCash {
			sl.ReportError(b.ComponentType, "ComponentType", "component_type", "payload", "benefit")
		}
	default:
		sl.ReportError(b.ComponentType, "ComponentType", "component_type", "componenttype", "")
	}
}
