package api

import (
	"github.com/fcontreras/macrofilter/internal/filter"
	"github.com/fcontreras/macrofilter/internal/service"
)

// SearchResponse is the payload for a search request. On a query execution
// failure Error is set and Recipes is empty; the client keeps its controls
// usable and simply renders nothing.
type SearchResponse struct {
	Count       int                  `json:"count"`
	Filters     filter.State         `json:"filters"`
	Recipes     []service.DisplayRow `json:"recipes"`
	Message     string               `json:"message,omitempty"`
	Suggestions []string             `json:"suggestions,omitempty"`
	Error       string               `json:"error,omitempty"`
}

// ReferenceResponse is the payload for a lookup-table request.
type ReferenceResponse struct {
	Categories []string          `json:"categories,omitempty"`
	Allergens  []ReferenceOption `json:"allergens,omitempty"`
	DietLabels []ReferenceOption `json:"diet_labels,omitempty"`
}

// ReferenceOption is one selectable id+name pair.
type ReferenceOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// emptyResultMessage guides the user toward relaxing the filters when a
// valid query matches nothing.
const emptyResultMessage = "No recipes found matching your criteria. Try adjusting your filters."

var emptyResultSuggestions = []string{
	"Increase the margin of error",
	"Widen the calorie range",
	"Remove diet preferences",
	"Remove allergen exclusions",
	"Select 'All Categories'",
}
