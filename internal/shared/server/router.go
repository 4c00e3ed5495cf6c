package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-recommender/internal/recommend"
	"job-recommender/internal/services/health"
	"job-recommender/internal/shared/config"
	"job-recommender/internal/shared/metrics"
	"job-recommender/internal/shared/server/middleware"
	"job-recommender/internal/shared/server/respond"
	"job-recommender/internal/web"
)

const (
	rateGroupDefault = "DEFAULT"
	rateGroupModel   = "MODEL"
)

// RouterDeps holds the handlers mounted by NewRouter.
type RouterDeps struct {
	Config           config.Config
	RecommendHandler *recommend.Handler
	WebHandler       *web.Handler
	Health           *health.Service
	Limiter          *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if deps.Config.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = deps.Config.MaxUploadBytes
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: rateGroupDefault,
			GroupFor:     rateGroupFor,
			Limiter:      deps.Limiter,
			Rules: map[string]middleware.RateLimitRule{
				rateGroupModel: {Rate: deps.Config.RateLimitRPS, Burst: deps.Config.RateLimitBurst},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, deps.Health.Status())
	})
	if deps.RecommendHandler != nil {
		deps.RecommendHandler.RegisterRoutes(api)
	}
	if deps.WebHandler != nil {
		if err := deps.WebHandler.RegisterRoutes(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// rateGroupFor puts every route that calls the language model in the MODEL group.
func rateGroupFor(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return rateGroupDefault
	}
	switch c.FullPath() {
	case "/analyze", "/recommendations", "/api/v1/analyses", "/api/v1/recommendations":
		return rateGroupModel
	}
	return rateGroupDefault
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
