// internal/handler/offers.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListOffers godoc
// @Summary Valued signup offers
// @Description Every active offer valued with the user's point values, sorted by return on spend
// @Tags offers
// @Produce json
// @Success 200 {array} service.OfferValuation
// @Failure 500 {object} map[string]string
// @Router /api/v1/offers [get]
func (h *BonusHandler) ListOffers(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	offers, err := h.svc.ValueOffers(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err, "Failed to value offers")
		return
	}
	c.JSON(http.StatusOK, offers)
}

// Eligibility godoc
// @Summary Issuer-rule eligibility for a player
// @Param player query int true "Player number (1-based)"
// @Param card_id query string false "Check a single card"
// @Success 200 {array} service.CardEligibility
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/eligibility [get]
func (h *BonusHandler) Eligibility(c *gin.Context) {
	player, err := strconv.Atoi(c.DefaultQuery("player", "1"))
	if err != nil || player < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player must be a positive integer"})
		return
	}

	uid, ok := userID(c)
	if !ok {
		return
	}

	result, err := h.svc.Eligibility(c.Request.Context(), uid, player, c.Query("card_id"))
	if err != nil {
		respondError(c, err, "Failed to check eligibility")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Search godoc
// @Summary Search cards and currencies, abbreviations included
// @Param q query string true "Search term"
// @Success 200 {object} service.SearchResult
// @Failure 400 {object} map[string]string
// @Router /api/v1/search [get]
func (h *BonusHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q query param required"})
		return
	}

	result, err := h.svc.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Search failed")
		return
	}
	slog.Debug("Search served", "q", q, "cards", len(result.Cards))
	c.JSON(http.StatusOK, result)
}
