package handlers

import (
	"net/http"

	"motoschool/clients/schoolapi"
	"motoschool/models"
	"motoschool/services/content"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the read-only booking data the funnel's selects and
// listings feed from. Upstream failures degrade to empty lists with a retry
// hint; a broken upstream must never take a page down.
type CatalogHandler struct {
	Content content.Service
	API     schoolapi.Client
	Logger  *zap.Logger
}

func NewCatalogHandler(contentSvc content.Service, api schoolapi.Client, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Content: contentSvc, API: api, Logger: logger}
}

func (h *CatalogHandler) degraded(c *gin.Context, what string, err error) {
	h.Logger.Warn("catalog fetch failed", zap.String("what", what), zap.Error(err))
	c.JSON(http.StatusOK, gin.H{
		"items": []interface{}{},
		"error": "Data is temporarily unavailable. Please try again.",
	})
}

// Courses lists the bookable courses.
func (h *CatalogHandler) Courses(c *gin.Context) {
	courses, err := h.Content.Courses(c.Request.Context())
	if err != nil {
		h.degraded(c, "courses", err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	c.JSON(http.StatusOK, gin.H{"items": courses})
}

// Locations lists the locations offering a course.
func (h *CatalogHandler) Locations(c *gin.Context) {
	locations, err := h.API.Locations(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		h.degraded(c, "locations", err)
		return
	}
	if locations == nil {
		locations = []models.Location{}
	}
	c.JSON(http.StatusOK, gin.H{"items": locations})
}

// Settings returns checkout-wide parameters.
func (h *CatalogHandler) Settings(c *gin.Context) {
	settings, err := h.Content.Settings(c.Request.Context())
	if err != nil {
		h.degraded(c, "settings", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// LicenceTypes lists the licence enumeration for form selects.
func (h *CatalogHandler) LicenceTypes(c *gin.Context) {
	types, err := h.API.LicenceTypes(c.Request.Context())
	if err != nil {
		h.degraded(c, "licence types", err)
		return
	}
	if types == nil {
		types = []models.LicenceType{}
	}
	c.JSON(http.StatusOK, gin.H{"items": types})
}

// VehicleTypes lists the vehicle enumeration for a (course, location) pair.
func (h *CatalogHandler) VehicleTypes(c *gin.Context) {
	types, err := h.API.VehicleTypes(c.Request.Context(), c.Param("courseId"), c.Param("locationId"))
	if err != nil {
		h.degraded(c, "vehicle types", err)
		return
	}
	if types == nil {
		types = []models.VehicleType{}
	}
	c.JSON(http.StatusOK, gin.H{"items": types})
}
