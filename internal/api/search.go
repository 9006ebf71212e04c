package api

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fcontreras/macrofilter/internal/filter"
	"github.com/fcontreras/macrofilter/internal/service"
)

// SearchHandler serves the filter-search and CSV-export endpoints.
type SearchHandler struct {
	search *service.SearchService
	ref    *service.ReferenceService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(search *service.SearchService, ref *service.ReferenceService) *SearchHandler {
	return &SearchHandler{search: search, ref: ref}
}

// RegisterRoutes registers the search routes
func (h *SearchHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/search", h.Search)
		recipes.GET("/search/export", h.Export)
	}
}

// Search runs one filter query and returns the display-ready table.
func (h *SearchHandler) Search(c *gin.Context) {
	f, err := h.parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A store fault during name resolution is recoverable, like a failed
	// query: surface it and keep the page interactive.
	if err := h.resolveNames(c, &f); err != nil {
		log.Printf("filter option lookup failed: %v", err)
		c.JSON(http.StatusOK, SearchResponse{
			Count:   0,
			Filters: f,
			Recipes: []service.DisplayRow{},
			Error:   "query failed, showing no results",
		})
		return
	}

	rows, err := h.search.Search(c.Request.Context(), f)
	if err != nil {
		log.Printf("search query failed: %v", err)
		c.JSON(http.StatusOK, SearchResponse{
			Count:   0,
			Filters: f,
			Recipes: []service.DisplayRow{},
			Error:   "query failed, showing no results",
		})
		return
	}

	resp := SearchResponse{
		Count:   len(rows),
		Filters: f,
		Recipes: service.Present(rows),
	}
	if resp.Count == 0 {
		resp.Message = emptyResultMessage
		resp.Suggestions = emptyResultSuggestions
	}
	c.JSON(http.StatusOK, resp)
}

// Export serializes the current result set as a CSV attachment.
func (h *SearchHandler) Export(c *gin.Context) {
	f, err := h.parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// An attachment has no in-band error state, so a lookup fault here is
	// a plain server error rather than an empty download.
	if err := h.resolveNames(c, &f); err != nil {
		log.Printf("export option lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export results"})
		return
	}

	rows, err := h.search.Search(c.Request.Context(), f)
	if err != nil {
		log.Printf("export query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export results"})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", service.ExportFilename(f)))
	c.Status(http.StatusOK)

	if err := service.WriteCSV(c.Writer, service.Present(rows)); err != nil {
		log.Printf("failed to write CSV export: %v", err)
	}
}

// parseFilter builds a filter state from the query string. Missing
// parameters take the dashboard's default control values. A returned error
// means bad client input; name resolution happens separately in
// resolveNames because its failures are server-side.
func (h *SearchHandler) parseFilter(c *gin.Context) (filter.State, error) {
	f := filter.Default()

	var err error
	if f.CalMin, err = queryFloat(c, "cal_min", f.CalMin); err != nil {
		return f, err
	}
	if f.CalMax, err = queryFloat(c, "cal_max", f.CalMax); err != nil {
		return f, err
	}
	if f.CarbTarget, err = queryFloat(c, "carb_target", f.CarbTarget); err != nil {
		return f, err
	}
	if f.FatTarget, err = queryFloat(c, "fat_target", f.FatTarget); err != nil {
		return f, err
	}
	if f.ProteinTarget, err = queryFloat(c, "protein_target", f.ProteinTarget); err != nil {
		return f, err
	}
	if f.Margin, err = queryFloat(c, "margin", f.Margin); err != nil {
		return f, err
	}

	f.Category = c.Query("category")

	if err := f.Validate(); err != nil {
		return f, err
	}
	return f, nil
}

// resolveNames translates allergen and diet-label display names from the
// query string into ids. Failures here are store faults, not client errors.
func (h *SearchHandler) resolveNames(c *gin.Context, f *filter.State) error {
	ctx := c.Request.Context()
	var err error
	if names := queryList(c, "exclude_allergens"); len(names) > 0 {
		if f.ExcludeAllergenIDs, err = h.ref.ResolveAllergenIDs(ctx, names); err != nil {
			return fmt.Errorf("failed to resolve allergens: %w", err)
		}
	}
	if names := queryList(c, "diet_labels"); len(names) > 0 {
		if f.DietLabelIDs, err = h.ref.ResolveDietLabelIDs(ctx, names); err != nil {
			return fmt.Errorf("failed to resolve diet labels: %w", err)
		}
	}
	return nil
}

func queryFloat(c *gin.Context, key string, fallback float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: must be a number", key)
	}
	return v, nil
}

func queryList(c *gin.Context, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}
