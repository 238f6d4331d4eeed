// internal/handler/settings.go
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"signup-bonus-tracker/internal/domain"
)

// ListCurrencyValues godoc
// @Summary Effective value of every reward currency for the user
// @Success 200 {array} service.CurrencyValue
// @Router /api/v1/currency-values [get]
func (h *BonusHandler) ListCurrencyValues(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	values, err := h.svc.CurrencyValues(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err, "Failed to load currency values")
		return
	}
	c.JSON(http.StatusOK, values)
}

// SetCurrencyValue godoc
// @Summary Override the value of one currency
// @Param request body SetCurrencyValueRequest true "Override"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/currency-values [put]
func (h *BonusHandler) SetCurrencyValue(c *gin.Context) {
	var req SetCurrencyValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.svc.SetCurrencyValue(c.Request.Context(), uid, req.CurrencyID, *req.ValueCents); err != nil {
		respondError(c, err, "Failed to save currency value")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ResetCurrencyValue godoc
// @Summary Remove the user's override, falling back to template or base value
// @Param currency_id path string true "Currency id"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Failure 404 {object} map[string]string
// @Router /api/v1/currency-values/{currency_id} [delete]
func (h *BonusHandler) ResetCurrencyValue(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.svc.ResetCurrencyValue(c.Request.Context(), uid, c.Param("currency_id")); err != nil {
		respondError(c, err, "Failed to reset currency value")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListTemplates godoc
// @Summary Point value templates
// @Success 200 {array} domain.PointValueTemplate
// @Router /api/v1/templates [get]
func (h *BonusHandler) ListTemplates(c *gin.Context) {
	templates, err := h.svc.Templates(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load templates")
		return
	}
	c.JSON(http.StatusOK, templates)
}

// SelectTemplate godoc
// @Summary Select the user's point value template
// @Param request body SelectTemplateRequest true "Template"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Failure 404 {object} map[string]string
// @Router /api/v1/template [put]
func (h *BonusHandler) SelectTemplate(c *gin.Context) {
	var req SelectTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.svc.SelectTemplate(c.Request.Context(), uid, req.TemplateID); err != nil {
		respondError(c, err, "Failed to select template")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AddWalletCard godoc
// @Summary Record a card approval for a player
// @Param request body AddWalletCardRequest true "Approval"
// @Success 201 {object} map[string]string{"id":"..."}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/wallet [post]
func (h *BonusHandler) AddWalletCard(c *gin.Context) {
	var req AddWalletCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, ok := userID(c)
	if !ok {
		return
	}

	approval := domain.WalletCardApproval{
		PlayerNumber: req.PlayerNumber,
		CardID:       req.CardID,
		ApprovalDate: parseDate(req.ApprovalDate),
		ClosedDate:   parseDate(req.ClosedDate),
	}

	id, err := h.svc.AddWalletCard(c.Request.Context(), uid, approval)
	if err != nil {
		respondError(c, err, "Failed to add wallet card")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// AddBonusTier godoc
// @Summary Add a bonus component to an offer
// @Description Rejects components whose payload does not match component_type
// @Tags admin
// @Param offer_id path string true "Offer UUID"
// @Param request body domain.BonusTier true "Component"
// @Success 201 {object} map[string]string{"id":"..."}
// @Failure 400 {object} map[string]string
// @Router /api/v1/admin/offers/{offer_id}/bonuses [post]
func (h *BonusHandler) AddBonusTier(c *gin.Context) {
	offerID, err := uuid.Parse(c.Param("offer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offer_id must be a UUID"})
		return
	}

	var tier domain.BonusTier
	if err := c.ShouldBindJSON(&tier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	tier.OfferID = offerID.String()

	id, err := h.svc.AddBonusTier(c.Request.Context(), tier)
	if err != nil {
		respondError(c, err, "Failed to add bonus tier")
		return
	}
	slog.Info("Bonus tier created via API", "offer_id", tier.OfferID, "tier_id", id)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// parseDate: формат уже проверен тегом datetime
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	return &t
}
