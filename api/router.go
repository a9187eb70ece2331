// api/router.go
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printbridge/printbridge/api/handlers"
)

// SetupRouter sets up the intake routes
func SetupRouter(handler *handlers.Handler) *gin.Engine {
	router := gin.Default()

	// Apply middleware
	router.Use(handler.CORSMiddleware())

	// Request/response intake
	router.POST("/print", handler.PrintLabel)
	router.GET("/printers", handler.GetPrinters)
	router.GET("/jobs", handler.GetJobs)

	// Persistent intake
	router.GET("/ws", handler.ServeWS)

	// Add a liveness endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"jobs":   handler.Ledger.Len(),
		})
	})

	return router
}
