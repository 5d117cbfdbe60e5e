package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures and returns the Gin router.
func SetupRouter(handler *ChainHandler) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/chains", handler.ListChainsHandler)
		v1.GET("/chains/:name", handler.GetChainHandler)
		v1.GET("/chains/:name/features/:flag", handler.GetChainFeatureHandler)
		v1.GET("/gas-prices", handler.ListGasPricesHandler)
		v1.GET("/gas-prices/:name", handler.GetGasPriceHandler)
		v1.POST("/select", handler.SelectChainHandler)
		v1.GET("/route/event/:id", handler.RouteEventHandler)
		v1.GET("/route/contract", handler.RouteContractHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	return router
}
