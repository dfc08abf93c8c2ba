package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/sitesearch/logger"
	"github.com/meghashyamc/sitesearch/services/search"
	"github.com/meghashyamc/sitesearch/validation"
)

const maxResultsPerPage = 100

type SearchRequest struct {
	Query      string `form:"query" json:"query" validate:"required,valid_query,min=1,max=1000"`
	Types      string `form:"types" json:"types" validate:"valid_content_types"`
	Categories string `form:"categories" json:"categories" validate:"max=1000"`
	From       string `form:"from" json:"from" validate:"valid_date"`
	To         string `form:"to" json:"to" validate:"valid_date"`
	SortBy     string `form:"sort_by" json:"sort_by" validate:"omitempty,oneof=relevance date title"`
	SortOrder  string `form:"sort_order" json:"sort_order" validate:"omitempty,oneof=asc desc"`
	PerPage    int    `form:"per_page" json:"per_page" validate:"min=0,max=100"`
	Page       int    `form:"page" json:"page" validate:"min=0"`
}

func (r *SearchRequest) setDefaults(pageSize int) {
	if r.PerPage == 0 {
		r.PerPage = min(pageSize, maxResultsPerPage)
	}

	if r.Page == 0 {
		r.Page = 1
	}
}

// overrides converts the request's filter parameters. Parameters left out keep the session's
// current setting.
func (r *SearchRequest) overrides() (*search.FilterOverrides, error) {
	overrides := &search.FilterOverrides{}

	if r.Types != "" {
		kinds, err := search.ParseKinds(r.Types)
		if err != nil {
			return nil, err
		}
		overrides.ContentTypes = kinds
	}
	if r.Categories != "" {
		overrides.Categories = search.ParseCategories(r.Categories)
	}

	dateRange, err := search.ParseDateRange(r.From, r.To)
	if err != nil {
		return nil, err
	}
	overrides.DateRange = dateRange

	if r.SortBy != "" {
		key, err := search.ParseSortKey(r.SortBy)
		if err != nil {
			return nil, err
		}
		overrides.SortBy = &key
	}
	if r.SortOrder != "" {
		order, err := search.ParseSortOrder(r.SortOrder)
		if err != nil {
			return nil, err
		}
		overrides.SortOrder = &order
	}

	return overrides, nil
}

type FiltersRequest struct {
	ContentTypes   []string `json:"content_types" validate:"valid_content_types"`
	Categories     []string `json:"categories"`
	From           string   `json:"from" validate:"valid_date"`
	To             string   `json:"to" validate:"valid_date"`
	ClearDateRange bool     `json:"clear_date_range"`
	SortBy         string   `json:"sort_by" validate:"omitempty,oneof=relevance date title"`
	SortOrder      string   `json:"sort_order" validate:"omitempty,oneof=asc desc"`
}

func (r *FiltersRequest) overrides() (*search.FilterOverrides, error) {
	request := SearchRequest{From: r.From, To: r.To, SortBy: r.SortBy, SortOrder: r.SortOrder}
	overrides, err := request.overrides()
	if err != nil {
		return nil, err
	}

	if r.ContentTypes != nil {
		overrides.ContentTypes = make([]search.Kind, len(r.ContentTypes))
		for i, kind := range r.ContentTypes {
			overrides.ContentTypes[i] = search.Kind(kind)
		}
	}
	overrides.Categories = r.Categories
	overrides.ClearDateRange = r.ClearDateRange

	return overrides, nil
}

type SearchResponse struct {
	Results     []search.Result   `json:"results"`
	PageDetails search.Pagination `json:"page_details"`
	ShareURL    string            `json:"share_url"`
}

// SetupSearch registers the search routes. With supersede set, a new search cancels the one still
// in flight.
func SetupSearch(router *gin.Engine, logger logger.Logger, session *search.Session, validator *validation.Validator, pageSize int, supersede bool) {
	router.GET("/search", handleSearch(session, supersede, logger, validator, pageSize))
	router.PATCH("/search/filters", handleUpdateFilters(session, logger, validator, pageSize))
	router.DELETE("/search", handleClearSearch(session))
}

func handleSearch(session *search.Session, supersede bool, logger logger.Logger, validator *validation.Validator, pageSize int) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := SearchRequest{}
		if err := c.ShouldBindQuery(&request); err != nil {
			logger.Warn("could not extract expected params from search request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request body parameters"})
			return
		}
		request.setDefaults(pageSize)

		if err := validator.Validate(request); err != nil {
			logger.Warn("could not validate search request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		overrides, err := request.overrides()
		if err != nil {
			logger.Warn("could not parse search filters", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		run := session.Search
		if supersede {
			run = session.SearchLatest
		}

		results, err := run(c.Request.Context(), request.Query, overrides)
		if err != nil {
			writeSearchError(c, logger, err)
			return
		}

		page, pagination := search.PageOf(results, request.Page, request.PerPage)
		c.Header(HeaderPaginationTotalCount, strconv.Itoa(pagination.TotalResults))
		writeResponse(c, SearchResponse{
			Results:     page,
			PageDetails: pagination,
			ShareURL:    search.ShareURL(request.Query, session.Filters()),
		}, http.StatusOK, nil)
	}
}

func handleUpdateFilters(session *search.Session, logger logger.Logger, validator *validation.Validator, pageSize int) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := FiltersRequest{}
		if err := c.ShouldBindJSON(&request); err != nil {
			logger.Warn("could not extract expected params from filters request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request body parameters"})
			return
		}

		if err := validator.Validate(request); err != nil {
			logger.Warn("could not validate filters request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		overrides, err := request.overrides()
		if err != nil {
			logger.Warn("could not parse search filters", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		results, err := session.UpdateFilters(c.Request.Context(), overrides)
		if err != nil {
			writeSearchError(c, logger, err)
			return
		}

		page, pagination := search.PageOf(results, 1, pageSize)
		c.Header(HeaderPaginationTotalCount, strconv.Itoa(pagination.TotalResults))
		writeResponse(c, SearchResponse{
			Results:     page,
			PageDetails: pagination,
			ShareURL:    search.ShareURL(session.Query(), session.Filters()),
		}, http.StatusOK, nil)
	}
}

func handleClearSearch(session *search.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		session.ClearSearch()
		writeResponse(c, nil, http.StatusNoContent, nil)
	}
}

func writeSearchError(c *gin.Context, logger logger.Logger, err error) {
	c.Abort()

	switch {
	case errors.Is(err, search.ErrSearchUnavailable):
		logger.Error("search unavailable", "err", err.Error())
		writeResponse(c, nil, http.StatusServiceUnavailable, []string{search.ErrSearchUnavailable.Error()})
	case errors.Is(err, search.ErrSuperseded):
		logger.Info("search superseded by a newer one")
		writeResponse(c, nil, http.StatusConflict, []string{err.Error()})
	case errors.Is(err, search.ErrInvalidFilter):
		logger.Warn("invalid search filter", "err", err.Error())
		writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
	default:
		logger.Error("search failed", "err", err.Error())
		writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
	}
}
