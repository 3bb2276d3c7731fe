package http

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mickyas16/postpulse/internal/handler/http/middleware"
	"github.com/mickyas16/postpulse/internal/usecase"
)

type Router struct {
	postHandler *PostHandler
	apiKeys     []string
}

func NewRouter(postUsecase usecase.IPostUseCase, apiKeys []string) *Router {
	return &Router{
		postHandler: NewPostHandler(postUsecase),
		apiKeys:     apiKeys,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// rate limiter configuration
	lmt := tollbooth.NewLimiter(10, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	router.Use(middleware.RateLimiter(lmt))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes, all behind the API key check
	v1 := router.Group("/api/v1")
	v1.Use(middleware.APIKeyAuth(r.apiKeys))

	posts := v1.Group("/posts")
	{
		posts.GET("", r.postHandler.GetPostsHandler)
		posts.GET("/detail", r.postHandler.GetPostDetailHandler)
		posts.GET("/headings", r.postHandler.GetPostHeadingsHandler)
		posts.POST("/increment-click", r.postHandler.IncrementPostClickHandler)
	}
}
