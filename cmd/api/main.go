package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mickyas16/postpulse/internal/domain/contract"
	"github.com/mickyas16/postpulse/internal/engagement"
	handlerHttp "github.com/mickyas16/postpulse/internal/handler/http"
	redisclient "github.com/mickyas16/postpulse/internal/infrastructure/cache"
	"github.com/mickyas16/postpulse/internal/infrastructure/config"
	"github.com/mickyas16/postpulse/internal/infrastructure/database"
	"github.com/mickyas16/postpulse/internal/infrastructure/logger"
	"github.com/mickyas16/postpulse/internal/infrastructure/memstore"
	"github.com/mickyas16/postpulse/internal/infrastructure/repository/mongodb"
	"github.com/mickyas16/postpulse/internal/infrastructure/store"
	"github.com/mickyas16/postpulse/internal/infrastructure/uuidgen"
	"github.com/mickyas16/postpulse/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig := config.NewConfig()
	appLogger := logger.NewStdLogger()

	if appConfig.MongoURI == "" {
		log.Fatal("MONGODB_URI environment variable not set")
	}
	if appConfig.MongoDBName == "" {
		log.Fatal("MONGODB_DB_NAME environment variable not set")
	}

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(appConfig.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect()
	db := mongoClient.Client.Database(appConfig.MongoDBName)

	// Dependency Injection: Repositories
	uuidGenerator := uuidgen.NewGenerator()
	postRepo := mongodb.NewPostRepository(db)
	analyticsRepo := mongodb.NewAnalyticsRepository(db, uuidGenerator)

	// Engagement backends: redis when configured, in-memory otherwise
	var counters contract.ICounterStore
	var dedup contract.IViewDedupFilter
	var postCache contract.IPostCache

	if appConfig.RedisURL != "" {
		rdb := redisclient.NewRedisFromURL(context.Background(), appConfig.RedisURL)
		defer redisclient.Close(rdb)
		counters = store.NewRedisCounterStore(rdb)
		dedup = store.NewRedisViewDedup(rdb)
		postCache = store.NewPostCacheStore(rdb, appConfig.GetListCacheTTL(), appConfig.GetDetailCacheTTL())
	} else {
		appLogger.Warningf("REDIS_URL not set, using in-memory counters and no read cache")
		counters = memstore.NewCounterStore()
		memDedup := memstore.NewDedupFilter(time.Minute)
		defer memDedup.Stop()
		dedup = memDedup
	}

	// Engagement pipeline: dispatcher workers plus the periodic counter flush
	dispatcher := engagement.NewDispatcher(counters, dedup, appLogger, appConfig.EventQueueSize, appConfig.EventWorkers, appConfig.GetViewDedupWindow())
	dispatcher.Start()
	defer dispatcher.Stop()

	flusher := engagement.NewFlusher(counters, analyticsRepo, appLogger, appConfig.FlushInterval)
	flusher.Start()
	defer flusher.Stop()

	// Dependency Injection: Usecases
	postUsecase := usecase.NewPostUseCase(postRepo, analyticsRepo, dispatcher, appLogger)
	if postCache != nil {
		postUsecase.SetPostCache(postCache)
	}

	// Setup API routes
	router := gin.Default()
	appRouter := handlerHttp.NewRouter(postUsecase, appConfig.APIKeys)
	appRouter.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + appConfig.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server running on port %s", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
