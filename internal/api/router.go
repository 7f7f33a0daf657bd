package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/forumhive/forum-api/internal/cache"
	"github.com/forumhive/forum-api/internal/db"
	"github.com/forumhive/forum-api/internal/tree"
	"github.com/forumhive/forum-api/pkg/logging"
	"github.com/forumhive/forum-api/pkg/telemetry"
)

// Router sets up API routes
type Router struct {
	db     *db.DB
	cache  *cache.Cache
	logger *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache) *Router {
	return &Router{
		db:     database,
		cache:  redisCache,
		logger: logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(traceRequests())

	engine.GET("/", r.indexHandler)
	engine.GET("/health", r.healthHandler)

	repo := db.NewRepository(r.db.DB)
	persons := db.NewPersonRepository(repo)
	comments := db.NewCommentRepository(repo)
	votes := db.NewVoteRepository(repo)
	aggregator := tree.NewAggregator(r.db.DB)

	v1 := engine.Group("/api/v1")
	NewUserAPI(persons).Register(v1.Group("/users"))
	NewCommentAPI(comments, persons, aggregator, r.cache).Register(v1.Group("/comments"))
	NewVoteAPI(votes, comments, persons, r.cache).Register(v1.Group("/votes"))
}

// traceRequests opens one span per request
func traceRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := telemetry.StartSpan(c.Request.Context(), c.FullPath())
		defer span.End()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// indexHandler lists the API entry points
func (r *Router) indexHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"detail": "Welcome to the forum API",
		"apis":   []string{"/api/v1/users", "/api/v1/comments", "/api/v1/votes"},
	})
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	status := "OK"
	code := http.StatusOK
	if err := r.db.Health(c.Request.Context()); err != nil {
		status = "DEGRADED"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":  status,
		"service": "forum-api",
	})
}
