package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPrinters returns the system-registered printer names and the current
// default, straight from the host with no caching
func (h *Handler) GetPrinters(c *gin.Context) {
	printers, err := h.Spooler.Printers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if printers == nil {
		printers = []string{}
	}

	defaultPrinter, err := h.Spooler.DefaultPrinter()
	if err != nil {
		h.Logger.Warn("default printer lookup failed", "error", err)
		defaultPrinter = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"printers":       printers,
		"defaultPrinter": defaultPrinter,
	})
}
