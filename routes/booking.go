package routes

import (
	"motoschool/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the checkout funnel.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	booking := r.Group("/api/booking")
	{
		// Session lifecycle and step mutations.
		booking.POST("/session", hb.StartSession)
		booking.GET("/session", hb.GetSession)
		booking.PUT("/session/course", hb.SelectCourse)
		booking.PUT("/session/location", hb.SelectLocation)
		booking.GET("/session/availability", hb.Availability)
		booking.PUT("/session/date", hb.SelectDate)
		booking.PUT("/session/attendees", hb.SetAttendees)
		booking.PUT("/session/details", hb.SetDetails)
		booking.PUT("/session/account", hb.SetAccount)
		booking.GET("/session/pricing", hb.Pricing)
		booking.POST("/session/submit", hb.Submit)
		booking.DELETE("/session", hb.CancelSession)

		// Booking data for selects and listings.
		booking.GET("/courses", hb.CatalogCourses)
		booking.GET("/locations/:courseId", hb.CatalogLocations)
		booking.GET("/settings", hb.CatalogSettings)
		booking.GET("/licence-types", hb.CatalogLicenceTypes)
		booking.GET("/vehicle-types/:courseId/:locationId", hb.CatalogVehicleTypes)
	}
}
