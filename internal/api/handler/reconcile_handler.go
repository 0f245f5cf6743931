package handler

import (
	"net/http"

	"parking_booking/internal/service"

	"github.com/gin-gonic/gin"
)

type ReconcileHandler struct {
	reconcileService *service.ReconcileService
}

func NewReconcileHandler(rs *service.ReconcileService) *ReconcileHandler {
	return &ReconcileHandler{reconcileService: rs}
}

// GET /admin/reconcile
// On-demand inventory consistency check; the same check runs on a schedule.
func (h *ReconcileHandler) CheckInventory(c *gin.Context) {
	report, err := h.reconcileService.CheckInventory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
