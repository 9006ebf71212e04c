package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fcontreras/macrofilter/internal/model"
	"github.com/fcontreras/macrofilter/internal/service"
)

// ReferenceHandler serves the lookup lists that populate the filter controls.
type ReferenceHandler struct {
	ref *service.ReferenceService
}

// NewReferenceHandler creates a new ReferenceHandler
func NewReferenceHandler(ref *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{ref: ref}
}

// RegisterRoutes registers the reference-data routes
func (h *ReferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	reference := router.Group("/reference")
	{
		reference.GET("/categories", h.Categories)
		reference.GET("/allergens", h.Allergens)
		reference.GET("/diet-labels", h.DietLabels)
	}
}

// Categories returns all category names with the "All Categories" sentinel first.
func (h *ReferenceHandler) Categories(c *gin.Context) {
	categories, err := h.ref.Categories(c.Request.Context())
	if err != nil {
		log.Printf("failed to load categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, ReferenceResponse{Categories: categories})
}

// Allergens returns all allergens as id+name options.
func (h *ReferenceHandler) Allergens(c *gin.Context) {
	allergens, err := h.ref.Allergens(c.Request.Context())
	if err != nil {
		log.Printf("failed to load allergens: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load allergens"})
		return
	}
	c.JSON(http.StatusOK, ReferenceResponse{Allergens: allergenOptions(allergens)})
}

// DietLabels returns all diet labels as id+name options.
func (h *ReferenceHandler) DietLabels(c *gin.Context) {
	labels, err := h.ref.DietLabels(c.Request.Context())
	if err != nil {
		log.Printf("failed to load diet labels: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load diet labels"})
		return
	}
	c.JSON(http.StatusOK, ReferenceResponse{DietLabels: labelOptions(labels)})
}

func allergenOptions(allergens []model.Allergen) []ReferenceOption {
	opts := make([]ReferenceOption, 0, len(allergens))
	for _, a := range allergens {
		opts = append(opts, ReferenceOption{ID: a.ID, Name: a.Name})
	}
	return opts
}

func labelOptions(labels []model.DietLabel) []ReferenceOption {
	opts := make([]ReferenceOption, 0, len(labels))
	for _, l := range labels {
		opts = append(opts, ReferenceOption{ID: l.ID, Name: l.Name})
	}
	return opts
}
