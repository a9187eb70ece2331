package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printbridge/printbridge/api/models"
)

// PrintLabel accepts one print submission and replies with its result. The
// pipeline never errors past its boundary, so a well-formed request always
// gets a structured PrintResult, success or failure.
func (h *Handler) PrintLabel(c *gin.Context) {
	var request models.PrintRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if request.ImageData == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imageBytes is required"})
		return
	}

	result := h.Executor.PrintLabel(request.ImageData, request.PrinterName)
	c.JSON(http.StatusOK, result)
}
