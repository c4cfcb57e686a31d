package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter wires the HTTP routes and shared middleware.
func SetupRouter(handler *AnalysisHandler) *gin.Engine {
	router := gin.Default() // Logger + Recovery middleware
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/analysis/:token", handler.GetAnalysisHandler)
		v1.GET("/wallet-pnl", handler.GetWalletPnLHandler)
		v1.GET("/status", handler.GetStatusHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	return router
}
