package api

import (
	"net/http"

	"greencity/api/attendee"
	"greencity/api/comment"
	"greencity/api/event"
	"greencity/api/friend"
	"greencity/api/health"
	"greencity/api/middleware"
	"greencity/api/notification"
	"greencity/api/subscription"
	"greencity/config"
	"greencity/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Controllers 所有对外暴露的控制器
type Controllers struct {
	Health       *health.Controller
	Event        *event.Controller
	Attendee     *attendee.Controller
	Comment      *comment.Controller
	Friend       *friend.Controller
	Notification *notification.Controller
	Subscription *subscription.Controller
}

// Router Route configuration
type Router struct {
	engine      *gin.Engine
	config      *config.Config
	controllers Controllers
	auth        *middleware.Authenticator
}

// NewRouter Create route configuration
func NewRouter(cfg *config.Config, controllers Controllers, auth *middleware.Authenticator) *Router {
	// Set Gin mode based on environment
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// 顺序：请求 ID 最先，限流最后
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.AccessLog(),
		metrics.Middleware(cfg.Metrics.Path),
		middleware.CORS(cfg.CORS),
		middleware.RateLimit(cfg.Server.RateLimit),
	)

	return &Router{
		engine:      engine,
		config:      cfg,
		controllers: controllers,
		auth:        auth,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	required := r.auth.Required()
	optional := r.auth.Optional()

	apiGroup := r.engine.Group("/api/v1")
	{
		r.controllers.Health.RegisterRoutes(apiGroup)
		r.controllers.Event.RegisterRoutes(apiGroup, required)
		r.controllers.Comment.RegisterRoutes(apiGroup, required)
		r.controllers.Attendee.RegisterRoutes(apiGroup)
		r.controllers.Friend.RegisterRoutes(apiGroup, optional)
		r.controllers.Notification.RegisterRoutes(apiGroup, required)
		r.controllers.Subscription.RegisterRoutes(apiGroup)
	}

	if r.config.Metrics.Enabled {
		r.engine.GET(r.config.Metrics.Path, gin.WrapH(metrics.Handler()))
	}
	if r.config.Storage.BaseURL != "" && r.config.Storage.UploadDir != "" {
		r.engine.Static(r.config.Storage.BaseURL, r.config.Storage.UploadDir)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
