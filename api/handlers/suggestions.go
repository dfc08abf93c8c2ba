package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/sitesearch/logger"
	"github.com/meghashyamc/sitesearch/services/search"
	"github.com/meghashyamc/sitesearch/validation"
)

type SuggestionsRequest struct {
	Query string `form:"query" json:"query" validate:"max=200"`
}

func SetupSuggestions(router *gin.Engine, logger logger.Logger, session *search.Session, validator *validation.Validator) {
	router.GET("/suggestions", handleSuggestions(session, logger, validator))
	router.GET("/searches/recent", handleRecentSearches(session))
	router.DELETE("/searches/recent", handleClearRecentSearches(session, logger))
	router.GET("/searches/popular", handlePopularSearches(session))
}

func handleSuggestions(session *search.Session, logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := SuggestionsRequest{}
		if err := c.ShouldBindQuery(&request); err != nil {
			logger.Warn("could not extract expected params from suggestions request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request body parameters"})
			return
		}

		if err := validator.Validate(request); err != nil {
			logger.Warn("could not validate suggestions request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		writeResponse(c, session.Suggest(request.Query), http.StatusOK, nil)
	}
}

func handleRecentSearches(session *search.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		writeResponse(c, session.RecentSearches(), http.StatusOK, nil)
	}
}

func handleClearRecentSearches(session *search.Session, logger logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := session.ClearRecentSearches(); err != nil {
			logger.Error("could not clear recent searches", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		writeResponse(c, nil, http.StatusNoContent, nil)
	}
}

func handlePopularSearches(session *search.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		writeResponse(c, session.PopularSearches(), http.StatusOK, nil)
	}
}
