package router

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/salonhq/scheduler-api/internal/handler"
	authHandler "github.com/salonhq/scheduler-api/internal/handler/auth"
	"github.com/salonhq/scheduler-api/internal/middleware"
	"github.com/salonhq/scheduler-api/internal/session"
)

// Handler registers routes on the authenticated API group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit     rate.Limit
	RateBurst     int
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
}

type Router struct {
	engine  *gin.Engine
	metrics *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	sessions *session.Manager,
	authH *authHandler.Handler,
	config Config,
	handlers ...Handler,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	metrics := initRouterMetrics(config.MetricsPrefix)
	r := &Router{engine: engine, metrics: metrics}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger())
	engine.Use(middleware.CORS(config.CORSConfig))
	engine.Use(r.instrument())

	rl := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})

	engine.GET("/healthz", handler.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := engine.Group("/api/v1")
	public.Use(rl.RateLimit())
	authH.RegisterPublicRoutes(public)

	api := engine.Group("/api/v1")
	api.Use(rl.RateLimit())
	api.Use(auth.Authenticate())
	api.Use(middleware.Activity(sessions))

	authH.RegisterRoutes(api)
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	return r
}

func (r *Router) instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		r.metrics.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    fmt.Sprintf("%s_http_request_duration_seconds", prefix),
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_http_requests_total", prefix),
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
	}
}
