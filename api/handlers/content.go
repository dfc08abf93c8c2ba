package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/sitesearch/logger"
	"github.com/meghashyamc/sitesearch/services/catalog"
	"github.com/meghashyamc/sitesearch/services/search"
)

type ContentResponse struct {
	Projects     int `json:"projects"`
	Services     int `json:"services"`
	Articles     int `json:"articles"`
	Testimonials int `json:"testimonials"`
}

func SetupContent(router *gin.Engine, logger logger.Logger, catalog *catalog.Service) {
	router.POST("/content", handleImportContent(catalog, logger))
}

func handleImportContent(catalog *catalog.Service, logger logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := search.Collections{}
		if err := c.ShouldBindJSON(&request); err != nil {
			logger.Warn("could not extract content from the import request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request body parameters"})
			return
		}

		if request.Len() == 0 {
			logger.Warn("import request has no records")
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{"no records to import"})
			return
		}

		if _, err := catalog.Import(c.Request.Context(), request); err != nil {
			logger.Error("could not import content", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		writeResponse(c, nil, http.StatusNoContent, nil)
	}
}
