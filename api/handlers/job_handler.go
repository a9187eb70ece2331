package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetJobs returns the job ledger snapshot, oldest first. Consumers filter
// and reorder client-side.
func (h *Handler) GetJobs(c *gin.Context) {
	c.JSON(http.StatusOK, h.Ledger.Snapshot())
}
