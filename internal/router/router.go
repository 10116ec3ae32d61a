package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dgiconsole/internal/handler"
	"dgiconsole/internal/logger"
	"dgiconsole/internal/middleware"
	"dgiconsole/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	log *zap.Logger,
	corsOrigins []string,
	sessions service.SessionService,
	invoiceH *handler.InvoiceHandler,
	quoteH *handler.QuoteHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(logger.Recovery(log))
	r.Use(middleware.CORS(corsOrigins))
	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(log))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.SessionMiddleware(sessions))

	invoices := v1.Group("/invoices")
	invoices.GET("", invoiceH.List)
	invoices.POST("/bulk/select", invoiceH.BulkSelect)
	invoices.POST("/bulk/preview", invoiceH.BulkPreview)
	invoices.POST("/bulk/execute", invoiceH.BulkExecute)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.PUT("/:id/status", invoiceH.ChangeStatus)
	invoices.DELETE("/:id", invoiceH.Delete)
	invoices.POST("/:id/submit", invoiceH.Submit)
	invoices.POST("/:id/clearance", invoiceH.CheckClearance)
	invoices.GET("/:id/history", invoiceH.History)

	quotes := v1.Group("/quotes")
	quotes.GET("", quoteH.List)
	quotes.POST("/bulk/select", quoteH.BulkSelect)
	quotes.POST("/bulk/preview", quoteH.BulkPreview)
	quotes.POST("/bulk/execute", quoteH.BulkExecute)
	quotes.GET("/:id", quoteH.GetByID)
	quotes.PUT("/:id/status", quoteH.ChangeStatus)
	quotes.DELETE("/:id", quoteH.Delete)
	quotes.POST("/:id/convert", quoteH.Convert)
	quotes.GET("/:id/history", quoteH.History)

	return r
}
