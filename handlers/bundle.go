package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups every handler the router needs.
type HandlerBundle struct {
	// HTML pages.
	Home      gin.HandlerFunc
	Page      gin.HandlerFunc
	Courses   gin.HandlerFunc
	Locations gin.HandlerFunc
	Checkout  gin.HandlerFunc
	NotFound  gin.HandlerFunc

	// Checkout funnel.
	StartSession   gin.HandlerFunc
	GetSession     gin.HandlerFunc
	SelectCourse   gin.HandlerFunc
	SelectLocation gin.HandlerFunc
	Availability   gin.HandlerFunc
	SelectDate     gin.HandlerFunc
	SetAttendees   gin.HandlerFunc
	SetDetails     gin.HandlerFunc
	SetAccount     gin.HandlerFunc
	Pricing        gin.HandlerFunc
	Submit         gin.HandlerFunc
	CancelSession  gin.HandlerFunc

	// Booking data for selects and listings.
	CatalogCourses      gin.HandlerFunc
	CatalogLocations    gin.HandlerFunc
	CatalogSettings     gin.HandlerFunc
	CatalogLicenceTypes gin.HandlerFunc
	CatalogVehicleTypes gin.HandlerFunc

	// Auth proxy.
	Login    gin.HandlerFunc
	Register gin.HandlerFunc
}
