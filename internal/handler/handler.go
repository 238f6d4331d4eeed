// internal/handler/handler.go
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"signup-bonus-tracker/internal/domain"
	"signup-bonus-tracker/internal/middleware"
	"signup-bonus-tracker/internal/service"
	"signup-bonus-tracker/internal/storage"
	val "signup-bonus-tracker/internal/validator"
)

// BonusService — то, что нужно HTTP-слою от service.Service
type BonusService interface {
	ValueOffers(ctx context.Context, userID string) ([]service.OfferValuation, error)
	Eligibility(ctx context.Context, userID string, player int, cardID string) ([]service.CardEligibility, error)
	CurrencyValues(ctx context.Context, userID string) ([]service.CurrencyValue, error)
	SetCurrencyValue(ctx context.Context, userID, currencyID string, valueCents float64) error
	ResetCurrencyValue(ctx context.Context, userID, currencyID string) error
	Templates(ctx context.Context) ([]domain.PointValueTemplate, error)
	SelectTemplate(ctx context.Context, userID, templateID string) error
	Search(ctx context.Context, term string) (service.SearchResult, error)
	AddBonusTier(ctx context.Context, tier domain.BonusTier) (string, error)
	AddWalletCard(ctx context.Context, userID string, approval domain.WalletCardApproval) (string, error)
}

type BonusHandler struct {
	svc BonusService
}

func NewBonusHandler(svc BonusService) *BonusHandler {
	return &BonusHandler{svc: svc}
}

// Register вешает защищённые эндпоинты на группу /api/v1
func (h *BonusHandler) Register(g *gin.RouterGroup) {
	g.GET("/offers", h.ListOffers)
	g.GET("/eligibility", h.Eligibility)
	g.GET("/search", h.Search)
	g.GET("/currency-values", h.ListCurrencyValues)
	g.PUT("/currency-values", h.SetCurrencyValue)
	g.DELETE("/currency-values/:currency_id", h.ResetCurrencyValue)
	g.GET("/templates", h.ListTemplates)
	g.PUT("/template", h.SelectTemplate)
	g.POST("/wallet", h.AddWalletCard)
	g.POST("/admin/offers/:offer_id/bonuses", h.AddBonusTier)
}

func userID(c *gin.Context) (string, bool) {
	id := c.GetString(middleware.UserIDKey)
	if id == "" {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user_id missing"})
		return "", false
	}
	return id, true
}

// respondError переводит ошибку сервиса в HTTP-статус. msg уходит клиенту только при 500.
func respondError(c *gin.Context, err error, msg string) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(verrs)})
	case errors.Is(err, service.ErrInvalidPlayer):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnknownCurrency), errors.Is(err, service.ErrUnknownCard):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		slog.Error(msg, "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func validateStruct(v any) error {
	if err := val.Validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		return errors.New(validationMessage(verrs))
	}
	return nil
}

func validationMessage(verrs validator.ValidationErrors) string {
	errs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		errs = append(errs, fieldErrorToString(e))
	}
	return fmt.Sprintf("invalid input: %s", strings.Join(errs, "; "))
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", e.Field(), e.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", e.Field())
	case "componenttype":
		return fmt.Sprintf("%s must be one of points, cash, benefit", e.Field())
	case "producttype":
		return fmt.Sprintf("%s must be personal or business", e.Field())
	case "payload":
		return fmt.Sprintf("%s payload does not match %s component", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
