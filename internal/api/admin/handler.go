package admin

import (
	"net/http"

	"booking-app/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	gaps *store.GapStore
}

func NewHandler(gaps *store.GapStore) *Handler {
	return &Handler{gaps: gaps}
}

// GET /admin/reconciliation-gaps — verified processor events that matched no
// local row. Each one may represent money received without a booking and
// needs manual follow-up.
func (h *Handler) ListReconciliationGaps(c *gin.Context) {
	gaps, err := h.gaps.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reconciliation gaps"})
		return
	}
	c.JSON(http.StatusOK, gaps)
}
