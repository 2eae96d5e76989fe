package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/janekbaraniewski/facetpanel/internal/catalog"
	"github.com/janekbaraniewski/facetpanel/internal/selection"
)

// SelectionResult is the canonical form of a requested filter query.
type SelectionResult struct {
	Selected selection.State   `json:"selected"`
	Total    int               `json:"total"`
	Query    string            `json:"query"`
	Dropped  []catalog.Dropped `json:"dropped,omitempty"`
}

// getFilters godoc
// @Summary Get the filter category table
// @Tags store
// @Produce json
// @Router /store/filters [get]
func (s *Server) getFilters(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(c, "Filters fetched", s.Table()))
}

// getSelection decodes ?material=gold,silver style queries, drops anything
// the table does not define and returns the canonical query.
func (s *Server) getSelection(c *gin.Context) {
	state, err := selection.Decode(c.Request.URL.RawQuery)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(c, "Invalid filter query"))
		return
	}

	sanitized, dropped := s.Table().Sanitize(state)
	c.JSON(http.StatusOK, successResponse(c, "Selection resolved", SelectionResult{
		Selected: sanitized,
		Total:    sanitized.Total(),
		Query:    selection.Encode(sanitized),
		Dropped:  dropped,
	}))
}
