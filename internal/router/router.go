package router

import (
	"github.com/gamecp/provisioner/internal/handlers"
	"github.com/gamecp/provisioner/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Setup configures and returns the application router
func Setup(
	hookSecret string,
	healthHandler *handlers.HealthHandler,
	provisionHandler *handlers.ProvisionHandler,
	statusHandler *handlers.StatusHandler,
	ssoHandler *handlers.SSOHandler,
	panelHandler *handlers.PanelHandler,
) *gin.Engine {

	router := gin.Default()

	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	// Health stays open for load balancer probes
	v1.GET("/health", healthHandler.Check)

	// Every billing hook is authenticated
	hooks := v1.Group("/")
	hooks.Use(middleware.Authentication(hookSecret))

	services := hooks.Group("/services")
	{
		services.POST("/:service_id/provision", provisionHandler.Create)
		services.POST("/:service_id/suspend", provisionHandler.Suspend)
		services.POST("/:service_id/unsuspend", provisionHandler.Unsuspend)
		services.POST("/:service_id/terminate", provisionHandler.Terminate)
		services.GET("/:service_id/status", statusHandler.View)
		services.POST("/:service_id/control", statusHandler.Control)
		services.GET("/:service_id/sso", ssoHandler.ServiceLogin)
	}

	panels := hooks.Group("/panels")
	{
		panels.POST("/test-connection", panelHandler.TestConnection)
		panels.GET("/:server_record_id/sso", ssoHandler.AdminLogin)
	}

	return router
}
