package api

import (
	"membership-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all routes
func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		// Login flow (no authentication, this is how sessions start)
		auth := api.Group("/auth")
		{
			auth.POST("/verify-email", VerifyEmail)
		}

		users := api.Group("/users")
		{
			users.POST("/create", CreateUser)
			users.POST("/login", LoginUser)
		}

		// Member routes (session token required)
		member := api.Group("/users")
		member.Use(middleware.AuthRequired())
		{
			member.POST("/plan-generated", PlanGenerated)
		}

		// Local purchase lookup, used as the verifier fallback contract
		purchases := api.Group("/purchases")
		{
			purchases.POST("/search", SearchPurchases)
		}

		// Hotmart calls this, authenticated by hottok when configured
		api.POST("/hotmart/webhook", HotmartWebhook)

		// Admin-only operations (session token + admin list)
		api.POST("/users/deactivate", middleware.AuthRequired(), middleware.AdminRequired(), DeactivateUser)
		api.POST("/purchases/sync-historical", middleware.AuthRequired(), middleware.AdminRequired(), SyncHistorical)

		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/content/:key", GetContent)
			admin.PUT("/content/:key", PutContent)
			admin.DELETE("/content/:key", DeleteContent)
		}
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "membership-api",
		})
	})
}
