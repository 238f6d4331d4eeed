package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"signup-bonus-tracker/internal/domain"
	"signup-bonus-tracker/internal/middleware"
	"signup-bonus-tracker/internal/service"
	"signup-bonus-tracker/internal/storage"
	val "signup-bonus-tracker/internal/validator"
)

const testUserID = "6f1c1c4e-3a0c-4f5e-9a59-0d6f3c1a2b7e"

type mockService struct {
	mock.Mock
}

func (m *mockService) ValueOffers(ctx context.Context, userID string) ([]service.OfferValuation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]service.OfferValuation), args.Error(1)
}

func (m *mockService) Eligibility(ctx context.Context, userID string, player int, cardID string) ([]service.CardEligibility, error) {
	args := m.Called(ctx, userID, player, cardID)
	return args.Get(0).([]service.CardEligibility), args.Error(1)
}

func (m *mockService) CurrencyValues(ctx context.Context, userID string) ([]service.CurrencyValue, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]service.CurrencyValue), args.Error(1)
}

func (m *mockService) SetCurrencyValue(ctx context.Context, userID, currencyID string, valueCents float64) error {
	return m.Called(ctx, userID, currencyID, valueCents).Error(0)
}

func (m *mockService) ResetCurrencyValue(ctx context.Context, userID, currencyID string) error {
	return m.Called(ctx, userID, currencyID).Error(0)
}

func (m *mockService) Templates(ctx context.Context) ([]domain.PointValueTemplate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PointValueTemplate), args.Error(1)
}

func (m *mockService) SelectTemplate(ctx context.Context, userID, templateID string) error {
	return m.Called(ctx, userID, templateID).Error(0)
}

func (m *mockService) Search(ctx context.Context, term string) (service.SearchResult, error) {
	args := m.Called(ctx, term)
	return args.Get(0).(service.SearchResult), args.Error(1)
}

func (m *mockService) AddBonusTier(ctx context.Context, tier domain.BonusTier) (string, error) {
	args := m.Called(ctx, tier)
	return args.String(0), args.Error(1)
}

func (m *mockService) AddWalletCard(ctx context.Context, userID string, approval domain.WalletCardApproval) (string, error) {
	args := m.Called(ctx, userID, approval)
	return args.String(0), args.Error(1)
}

func newTestRouter(svc BonusService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/v1", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, testUserID)
		c.Next()
	})
	NewBonusHandler(svc).Register(g)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListOffers(t *testing.T) {
	svc := &mockService{}
	svc.On("ValueOffers", mock.Anything, testUserID).Return([]service.OfferValuation{
		{OfferID: "o1", Valuation: domain.ValuationResult{BonusValueCents: 100, SpendRequirementCents: 100, ReturnOnSpendPercent: domain.Percent(math.Inf(1))}},
	}, nil)

	w := do(newTestRouter(svc), http.MethodGet, "/api/v1/offers", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"return_on_spend_percent":"Infinity"`)
	svc.AssertExpectations(t)
}

func TestListOffersStorageFailure(t *testing.T) {
	svc := &mockService{}
	svc.On("ValueOffers", mock.Anything, testUserID).Return([]service.OfferValuation(nil), fmt.Errorf("list offers: %w", context.DeadlineExceeded))

	w := do(newTestRouter(svc), http.MethodGet, "/api/v1/offers", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to value offers"}`, w.Body.String())
}

func TestEligibility(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		setup    func(*mockService)
		wantCode int
	}{
		{
			name:  "default player",
			query: "",
			setup: func(m *mockService) {
				m.On("Eligibility", mock.Anything, testUserID, 1, "").Return([]service.CardEligibility{}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:  "single card",
			query: "?player=2&card_id=csp",
			setup: func(m *mockService) {
				m.On("Eligibility", mock.Anything, testUserID, 2, "csp").Return([]service.CardEligibility{
					{Card: domain.Card{ID: "csp"}, Verdict: domain.Blocked("5/24 rule")},
				}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "bad player",
			query:    "?player=zero",
			setup:    func(m *mockService) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "unknown card",
			query: "?card_id=ghost",
			setup: func(m *mockService) {
				m.On("Eligibility", mock.Anything, testUserID, 1, "ghost").Return([]service.CardEligibility(nil), fmt.Errorf("%w: %q", service.ErrUnknownCard, "ghost"))
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockService{}
			tc.setup(svc)

			w := do(newTestRouter(svc), http.MethodGet, "/api/v1/eligibility"+tc.query, "")

			assert.Equal(t, tc.wantCode, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestSearchRequiresTerm(t *testing.T) {
	w := do(newTestRouter(&mockService{}), http.MethodGet, "/api/v1/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearch(t *testing.T) {
	svc := &mockService{}
	svc.On("Search", mock.Anything, "csr").Return(service.SearchResult{
		Cards:      []domain.Card{{ID: "csr", Name: "Chase Sapphire Reserve"}},
		Currencies: []domain.RewardCurrency{},
	}, nil)

	w := do(newTestRouter(svc), http.MethodGet, "/api/v1/search?q=csr", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got service.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.Cards, 1)
}

func TestSetCurrencyValue(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		setup    func(*mockService)
		wantCode int
		wantErr  string
	}{
		{
			name: "zero is a valid override",
			body: `{"currency_id":"chase-ur","value_cents":0}`,
			setup: func(m *mockService) {
				m.On("SetCurrencyValue", mock.Anything, testUserID, "chase-ur", 0.0).Return(nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "negative value",
			body:     `{"currency_id":"chase-ur","value_cents":-1}`,
			setup:    func(m *mockService) {},
			wantCode: http.StatusBadRequest,
			wantErr:  "ValueCents must be >= 0",
		},
		{
			name:     "missing value",
			body:     `{"currency_id":"chase-ur"}`,
			setup:    func(m *mockService) {},
			wantCode: http.StatusBadRequest,
			wantErr:  "ValueCents is required",
		},
		{
			name:     "blank currency",
			body:     `{"currency_id":"  ","value_cents":1}`,
			setup:    func(m *mockService) {},
			wantCode: http.StatusBadRequest,
			wantErr:  "CurrencyID must not be blank",
		},
		{
			name: "unknown currency",
			body: `{"currency_id":"doge","value_cents":1}`,
			setup: func(m *mockService) {
				m.On("SetCurrencyValue", mock.Anything, testUserID, "doge", 1.0).Return(fmt.Errorf("%w: %q", service.ErrUnknownCurrency, "doge"))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "broken json",
			body:     `{"currency_id":`,
			setup:    func(m *mockService) {},
			wantCode: http.StatusBadRequest,
			wantErr:  "Invalid JSON",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockService{}
			tc.setup(svc)

			w := do(newTestRouter(svc), http.MethodPut, "/api/v1/currency-values", tc.body)

			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantErr != "" {
				assert.Contains(t, w.Body.String(), tc.wantErr)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestResetCurrencyValueNotFound(t *testing.T) {
	svc := &mockService{}
	svc.On("ResetCurrencyValue", mock.Anything, testUserID, "chase-ur").Return(storage.ErrNotFound)

	w := do(newTestRouter(svc), http.MethodDelete, "/api/v1/currency-values/chase-ur", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelectTemplate(t *testing.T) {
	svc := &mockService{}
	svc.On("SelectTemplate", mock.Anything, testUserID, "travel").Return(nil)

	w := do(newTestRouter(svc), http.MethodPut, "/api/v1/template", `{"template_id":"travel"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestAddWalletCard(t *testing.T) {
	approved := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	svc := &mockService{}
	svc.On("AddWalletCard", mock.Anything, testUserID, domain.WalletCardApproval{
		PlayerNumber: 2,
		CardID:       "csp",
		ApprovalDate: &approved,
	}).Return("w-1", nil)

	w := do(newTestRouter(svc), http.MethodPost, "/api/v1/wallet", `{"player_number":2,"card_id":"csp","approval_date":"2026-03-14"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"w-1"}`, w.Body.String())
}

func TestAddWalletCardBadDate(t *testing.T) {
	w := do(newTestRouter(&mockService{}), http.MethodPost, "/api/v1/wallet", `{"player_number":1,"card_id":"csp","approval_date":"14.03.2026"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
}

func TestAddBonusTier(t *testing.T) {
	offerID := "0b7d3c3e-7f7e-4f59-9a2a-2b5e3f0c9d11"

	t.Run("bad offer id", func(t *testing.T) {
		w := do(newTestRouter(&mockService{}), http.MethodPost, "/api/v1/admin/offers/42/bonuses", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("payload mismatch", func(t *testing.T) {
		svc := &mockService{}
		svc.On("AddBonusTier", mock.Anything, mock.AnythingOfType("domain.BonusTier")).
			Return("", val.Validate.Struct(domain.BonusTier{ComponentType: domain.ComponentCash, CashAmountCents: new(int64), PointsAmount: new(int64)}))

		w := do(newTestRouter(svc), http.MethodPost, "/api/v1/admin/offers/"+offerID+"/bonuses",
			`{"component_type":"cash","cash_amount_cents":100,"points_amount":5}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "payload does not match cash component")
	})

	t.Run("created", func(t *testing.T) {
		svc := &mockService{}
		svc.On("AddBonusTier", mock.Anything, mock.MatchedBy(func(tier domain.BonusTier) bool {
			return tier.OfferID == offerID && tier.ComponentType == domain.ComponentCash && *tier.CashAmountCents == 20000
		})).Return("t-1", nil)

		w := do(newTestRouter(svc), http.MethodPost, "/api/v1/admin/offers/"+offerID+"/bonuses",
			`{"component_type":"cash","cash_amount_cents":20000,"spend_requirement_cents":50000}`)

		require.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})
}

type stubIssuer struct{ gotUserID string }

func (s *stubIssuer) GenerateToken(userID string) (string, error) {
	s.gotUserID = userID
	return "token-for-" + userID, nil
}

func TestLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := &stubIssuer{}
	r := gin.New()
	r.POST("/api/v1/login", NewAuthHandler(issuer).Login)

	w := do(r, http.MethodPost, "/api/v1/login", `{"user_id":"`+testUserID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testUserID, issuer.gotUserID)

	w = do(r, http.MethodPost, "/api/v1/login", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, testUserID, issuer.gotUserID)
	assert.Len(t, issuer.gotUserID, 36)

	w = do(r, http.MethodPost, "/api/v1/login", `{"user_id":"42"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
