package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/printbridge/printbridge/ledger"
	"github.com/printbridge/printbridge/printer"
)

// Handler represents the API handlers
type Handler struct {
	Executor *printer.Executor
	Spooler  printer.Spooler
	Ledger   *ledger.Ledger
	Logger   hclog.Logger
}

// NewHandler creates a new Handler
func NewHandler(executor *printer.Executor, spooler printer.Spooler, jobs *ledger.Ledger, logger hclog.Logger) *Handler {
	return &Handler{
		Executor: executor,
		Spooler:  spooler,
		Ledger:   jobs,
		Logger:   logger,
	}
}

// CORSMiddleware allows browser dashboards served from other origins to
// reach the intake endpoints
func (h *Handler) CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
