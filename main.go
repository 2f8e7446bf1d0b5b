// File: motoschool/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"motoschool/clients/schoolapi"
	"motoschool/config"
	"motoschool/cron"
	"motoschool/handlers"
	"motoschool/middleware"
	"motoschool/routes"
	"motoschool/services/checkout"
	"motoschool/services/content"
	"motoschool/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())
	router.LoadHTMLGlob("templates/*.tmpl")
	router.Static("/static", "./static")

	// Upstream client.
	apiClient := schoolapi.New()

	// Services.
	contentService := &content.DefaultContentService{
		Cache: utils.GetContentCacheClient(),
		API:   apiClient,
		TTL:   config.ContentCacheTTL(),
	}
	checkoutService := &checkout.DefaultCheckoutService{
		Store:           checkout.NewRedisSessionStore(utils.GetSessionCacheClient()),
		API:             apiClient,
		TTL:             config.SessionTTL(),
		FallbackVATRate: config.AppConfig.DefaultVATRate,
	}

	// Handlers.
	bookingHandler := handlers.NewBookingHandler(checkoutService, logger)
	catalogHandler := handlers.NewCatalogHandler(contentService, apiClient, logger)
	authHandler := handlers.NewAuthHandler(apiClient, logger)
	pageHandler := handlers.NewPageHandler(contentService, apiClient, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// HTML pages.
		Home:      pageHandler.Home,
		Page:      pageHandler.Page,
		Courses:   pageHandler.Courses,
		Locations: pageHandler.Locations,
		Checkout:  pageHandler.Checkout,
		NotFound:  pageHandler.NotFound,

		// Checkout funnel.
		StartSession:   bookingHandler.StartSession,
		GetSession:     bookingHandler.GetSession,
		SelectCourse:   bookingHandler.SelectCourse,
		SelectLocation: bookingHandler.SelectLocation,
		Availability:   bookingHandler.Availability,
		SelectDate:     bookingHandler.SelectDate,
		SetAttendees:   bookingHandler.SetAttendees,
		SetDetails:     bookingHandler.SetDetails,
		SetAccount:     bookingHandler.SetAccount,
		Pricing:        bookingHandler.Pricing,
		Submit:         bookingHandler.Submit,
		CancelSession:  bookingHandler.CancelSession,

		// Booking data.
		CatalogCourses:      catalogHandler.Courses,
		CatalogLocations:    catalogHandler.Locations,
		CatalogSettings:     catalogHandler.Settings,
		CatalogLicenceTypes: catalogHandler.LicenceTypes,
		CatalogVehicleTypes: catalogHandler.VehicleTypes,

		// Auth proxy.
		Login:    authHandler.Login,
		Register: authHandler.Register,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background cache warming and health monitoring.
	cron.InitCacheWarmer(contentService)
	utils.StartHealthMonitor([]*redis.Client{
		utils.GetSessionCacheClient(),
		utils.GetContentCacheClient(),
	}, apiClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
