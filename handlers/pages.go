package handlers

import (
	"html/template"
	"net/http"

	"motoschool/clients/schoolapi"
	"motoschool/models"
	"motoschool/services/content"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageHandler renders the server-side HTML views: CMS pages, course and
// location listings, and the checkout shell.
type PageHandler struct {
	Content content.Service
	API     schoolapi.Client
	Logger  *zap.Logger
}

func NewPageHandler(contentSvc content.Service, api schoolapi.Client, logger *zap.Logger) *PageHandler {
	return &PageHandler{Content: contentSvc, API: api, Logger: logger}
}

// menu fetches the navigation tree, degrading to an empty menu on failure.
func (h *PageHandler) menu(c *gin.Context) []models.MenuItem {
	menu, err := h.Content.Menu(c.Request.Context())
	if err != nil {
		h.Logger.Warn("menu fetch failed", zap.Error(err))
		return nil
	}
	return menu
}

// Home renders the landing page with the course list.
func (h *PageHandler) Home(c *gin.Context) {
	courses, err := h.Content.Courses(c.Request.Context())
	if err != nil {
		h.Logger.Warn("course list fetch failed", zap.Error(err))
	}
	c.HTML(http.StatusOK, "home.tmpl", gin.H{
		"Menu":    h.menu(c),
		"Courses": courses,
	})
}

// Page renders one CMS content page. A missing slug maps to the not-found
// view, never to a failure page.
func (h *PageHandler) Page(c *gin.Context) {
	page, err := h.Content.Page(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if schoolapi.IsNotFound(err) {
			h.NotFound(c)
			return
		}
		h.Logger.Warn("page fetch failed", zap.String("slug", c.Param("slug")), zap.Error(err))
		c.HTML(http.StatusOK, "page.tmpl", gin.H{
			"Menu":  h.menu(c),
			"Error": "This page is temporarily unavailable. Please try again.",
		})
		return
	}
	c.HTML(http.StatusOK, "page.tmpl", gin.H{
		"Menu": h.menu(c),
		"Page": page,
		// CMS markup is owned and sanitized by the upstream admin system.
		"Body": template.HTML(page.Body),
	})
}

// Courses renders the course listing page.
func (h *PageHandler) Courses(c *gin.Context) {
	courses, err := h.Content.Courses(c.Request.Context())
	errMsg := ""
	if err != nil {
		h.Logger.Warn("course list fetch failed", zap.Error(err))
		errMsg = "Courses are temporarily unavailable. Please try again."
	}
	c.HTML(http.StatusOK, "courses.tmpl", gin.H{
		"Menu":    h.menu(c),
		"Courses": courses,
		"Error":   errMsg,
	})
}

// Locations renders the location listing for one course.
func (h *PageHandler) Locations(c *gin.Context) {
	locations, err := h.API.Locations(c.Request.Context(), c.Param("courseId"))
	errMsg := ""
	if err != nil {
		h.Logger.Warn("location list fetch failed", zap.Error(err))
		errMsg = "Locations are temporarily unavailable. Please try again."
	}
	c.HTML(http.StatusOK, "locations.tmpl", gin.H{
		"Menu":      h.menu(c),
		"CourseID":  c.Param("courseId"),
		"Locations": locations,
		"Error":     errMsg,
	})
}

// Checkout renders the booking funnel shell; the funnel itself talks to the
// JSON endpoints.
func (h *PageHandler) Checkout(c *gin.Context) {
	c.HTML(http.StatusOK, "checkout.tmpl", gin.H{
		"Menu": h.menu(c),
	})
}

// NotFound renders the dedicated not-found view.
func (h *PageHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.tmpl", gin.H{
		"Menu": h.menu(c),
	})
}
