package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signup-bonus-tracker/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestBonusTierStructLevel(t *testing.T) {
	testCases := []struct {
		name     string
		tier     domain.BonusTier
		wantTags []string
	}{
		{
			name: "valid points",
			tier: domain.BonusTier{ComponentType: domain.ComponentPoints, PointsAmount: ptr(int64(60000)), CurrencyID: ptr("chase-ur")},
		},
		{
			name: "valid cash",
			tier: domain.BonusTier{ComponentType: domain.ComponentCash, CashAmountCents: ptr(int64(20000))},
		},
		{
			name: "valid benefit",
			tier: domain.BonusTier{ComponentType: domain.ComponentBenefit, BenefitDescription: ptr("Free night"), DefaultBenefitValueCents: ptr(int64(30000))},
		},
		{
			name:     "points without currency",
			tier:     domain.BonusTier{ComponentType: domain.ComponentPoints, PointsAmount: ptr(int64(60000))},
			wantTags: []string{"required"},
		},
		{
			name:     "cash with points payload",
			tier:     domain.BonusTier{ComponentType: domain.ComponentCash, CashAmountCents: ptr(int64(100)), PointsAmount: ptr(int64(5))},
			wantTags: []string{"payload"},
		},
		{
			name:     "benefit without value",
			tier:     domain.BonusTier{ComponentType: domain.ComponentBenefit, BenefitDescription: ptr("  ")},
			wantTags: []string{"required", "required"},
		},
		{
			name:     "unknown component type",
			tier:     domain.BonusTier{ComponentType: "miles"},
			wantTags: []string{"componenttype"},
		},
		{
			name:     "negative spend",
			tier:     domain.BonusTier{ComponentType: domain.ComponentCash, CashAmountCents: ptr(int64(100)), SpendRequirementCents: -1},
			wantTags: []string{"gte"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate.Struct(tc.tier)
			if len(tc.wantTags) == 0 {
				assert.NoError(t, err)
				return
			}

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
			tags := make([]string, 0, len(verrs))
			for _, e := range verrs {
				tags = append(tags, e.Tag())
			}
			assert.ElementsMatch(t, tc.wantTags, tags)
		})
	}
}

func TestCustomTags(t *testing.T) {
	type req struct {
		Name    string `validate:"notblank"`
		Kind    string `validate:"componenttype"`
		Product string `validate:"producttype"`
	}

	assert.NoError(t, Validate.Struct(req{Name: "x", Kind: "cash", Product: "business"}))
	assert.Error(t, Validate.Struct(req{Name: "   ", Kind: "cash", Product: "business"}))
	assert.Error(t, Validate.Struct(req{Name: "x", Kind: "stocks", Product: "business"}))
	assert.Error(t, Validate.Struct(req{Name: "x", Kind: "cash", Product: "corporate"}))
}
