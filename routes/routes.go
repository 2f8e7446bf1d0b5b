package routes

import (
	"net/http"

	"motoschool/handlers"
	"motoschool/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every route group onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	RegisterPageRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterHealthRoute(r)
}

// RegisterPageRoutes registers the server-rendered HTML pages.
func RegisterPageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/", hb.Home)
	r.GET("/pages/:slug", hb.Page)
	r.GET("/courses", hb.Courses)
	r.GET("/courses/:courseId/locations", hb.Locations)
	r.GET("/checkout", hb.Checkout)
	r.NoRoute(hb.NotFound)
}

// RegisterAuthRoutes registers the upstream auth proxy endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Login)
		api.POST("/register", hb.Register)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}
