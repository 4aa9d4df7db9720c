package router

import (
	"github.com/gin-gonic/gin"

	"github.com/atharva12306/ai-ayurvedic-diet/config"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/api"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/middleware"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/platform/logger"
)

// Handlers groups the API handlers mounted by SetupRouter
type Handlers struct {
	Plans    *api.DietPlanHandler
	Patients *api.PatientHandler
	Catalog  *api.CatalogHandler
	Health   *api.HealthHandler
}

// SetupRouter configures the application routes. limiter may be nil, which
// leaves generation unthrottled.
func SetupRouter(
	cfg *config.Config,
	log *logger.Logger,
	validator middleware.TokenValidator,
	limiter *middleware.RateLimiter,
	h Handlers,
) *gin.Engine {
	router := gin.New()
	if cfg.Env == config.Production {
		router.Use(middleware.RequestLogger(log))
	} else {
		router.Use(gin.Logger())
	}
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	router.GET("/health", h.Health.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.GET("/health", h.Health.HealthCheck)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		generate := []gin.HandlerFunc{h.Plans.Generate}
		if limiter != nil {
			generate = append([]gin.HandlerFunc{limiter.RateLimitMiddleware()}, generate...)
		}

		plans := protected.Group("/diet-plans")
		{
			plans.POST("/generate", generate...)
			if limiter != nil {
				plans.GET("/generate/quota", limiter.QuotaHandler())
			}
			plans.GET("", h.Plans.List)
			plans.GET("/drafts/:draftId", h.Plans.GetDraft)
			plans.POST("/drafts/:draftId/save", h.Plans.SaveDraft)
			plans.GET("/:id", h.Plans.Get)
			plans.PUT("/:id", h.Plans.Update)
			plans.DELETE("/:id", h.Plans.Delete)
			plans.GET("/:id/export", h.Plans.Export)
			plans.POST("/:id/meals", h.Plans.AddMeal)
			plans.POST("/:id/meals/:mealIndex/foods", h.Plans.AddFood)
			plans.DELETE("/:id/meals/:mealIndex/foods/:foodIndex", h.Plans.RemoveFood)
		}

		patients := protected.Group("/patients")
		{
			patients.POST("", h.Patients.Create)
			patients.GET("", h.Patients.List)
			patients.GET("/:id", h.Patients.Get)
		}

		catalog := protected.Group("/catalog")
		{
			catalog.GET("/foods", h.Catalog.Foods)
			catalog.GET("/tastes", h.Catalog.Tastes)
		}
	}

	return router
}
