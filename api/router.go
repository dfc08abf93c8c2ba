package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/sitesearch/api/handlers"
	"github.com/meghashyamc/sitesearch/app"
	"github.com/meghashyamc/sitesearch/logger"
	"github.com/meghashyamc/sitesearch/validation"
)

func setupRoutes(router *gin.Engine, logger logger.Logger, a *app.App, validator *validation.Validator) {
	router.GET("/health", health())

	handlers.SetupContent(router, logger, a.Catalog)
	handlers.SetupSearch(router, logger, a.Session, validator, a.Config.GetPageSize(), a.Config.GetSupersedeInFlight())
	handlers.SetupSuggestions(router, logger, a.Session, validator)

}

func health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
}

func newRouter() *gin.Engine {
	router := gin.New()
	router.UseRawPath = true
	router.Use(_CORSMiddleware())
	router.Use(gin.Recovery())

	return router
}
