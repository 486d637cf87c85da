package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ops-admin-backend/docs"
	"ops-admin-backend/internal/common/cache"
	"ops-admin-backend/internal/common/config"
	"ops-admin-backend/internal/common/logger"
	"ops-admin-backend/internal/common/middleware"
	"ops-admin-backend/internal/common/validation"
	"ops-admin-backend/internal/features/auth"
	communityhttp "ops-admin-backend/internal/features/community/delivery/http"
	communityrepo "ops-admin-backend/internal/features/community/repository/postgres"
	communityservice "ops-admin-backend/internal/features/community/service"
	promotionhttp "ops-admin-backend/internal/features/promotion/delivery/http"
	promotionrepo "ops-admin-backend/internal/features/promotion/repository/postgres"
	promotionservice "ops-admin-backend/internal/features/promotion/service"
	rewardhttp "ops-admin-backend/internal/features/reward/delivery/http"
	rewardrepo "ops-admin-backend/internal/features/reward/repository/postgres"
	rewardservice "ops-admin-backend/internal/features/reward/service"
	tokenhttp "ops-admin-backend/internal/features/token/delivery/http"
	tokenrepo "ops-admin-backend/internal/features/token/repository"
	tokenpostgres "ops-admin-backend/internal/features/token/repository/postgres"
	tokenredis "ops-admin-backend/internal/features/token/repository/redis"
	tokenservice "ops-admin-backend/internal/features/token/service"
	userhttp "ops-admin-backend/internal/features/user/delivery/http"
	userrepo "ops-admin-backend/internal/features/user/repository/postgres"
	userservice "ops-admin-backend/internal/features/user/service"
	"ops-admin-backend/internal/platform/postgres"
	"ops-admin-backend/internal/platform/redis"
	"ops-admin-backend/internal/platform/reward"
)

const serviceName = "ops-admin-backend"

// @title           Ops Admin API
// @version         1.0
// @description     Admin dashboard backend: users, tokens, communities, promotions and reward distribution.

// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Bearer <token>"

// @securityDefinitions.apikey TelegramInitData
// @in header
// @name init_data
// @description Telegram Mini App init_data string

// @tag.name token
// @tag.description Token issue, verification and revocation

// @tag.name user
// @tag.description User profiles

// @tag.name community
// @tag.description Community listing and certification

// @tag.name promotion
// @tag.description Promotion banners

// @tag.name reward
// @tag.description Reward distribution and history
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(serviceName, cfg.Debug)
	logger.Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Server.Port).
		Msg("Starting Ops Admin Backend")

	if err := validation.Register(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to register validators")
	}

	postgresClient, err := postgres.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer postgresClient.Close()

	if cfg.Postgres.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := postgresClient.Migrate(ctx)
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to apply database schema")
		}
	}

	redisClient, err := redis.OpenFromConfig(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	db := postgresClient.GetDB()

	var tokenRepository tokenrepo.TokenRepository = tokenpostgres.NewPostgresRepository(db)
	if redisClient != nil {
		tokenCache := cache.NewCacheService(redisClient, tokenredis.KeyPrefix)
		tokenRepository = tokenredis.NewCachedRepository(tokenRepository, tokenCache, cfg.Redis.TokenTTL)
		logger.Info().Dur("ttl", cfg.Redis.TokenTTL).Msg("Token cache enabled")
	}
	userRepository := userrepo.NewPostgresRepository(db)
	historyRepository := rewardrepo.NewPostgresRepository(db)

	authorizer := auth.NewAuthorizer(cfg.Auth.AdminUserIDs)
	tokenSvc := tokenservice.NewTokenService(tokenRepository, userRepository, authorizer)
	authenticator := auth.NewAuthenticator(tokenSvc)
	userSvc := userservice.NewUserService(userRepository, tokenSvc, authorizer)
	communitySvc := communityservice.NewCommunityService(communityrepo.NewPostgresRepository(db))
	promotionSvc := promotionservice.NewPromotionService(promotionrepo.NewPostgresRepository(db))
	historySvc := rewardservice.NewHistoryService(historyRepository)

	rewardClient := reward.NewClient(reward.Options{
		BaseURL:    cfg.Reward.BaseURL,
		AdminToken: cfg.Reward.AdminToken,
		AssetPath:  cfg.Reward.AssetPath,
		PointsPath: cfg.Reward.PointsPath,
		Timeout:    cfg.Reward.Timeout,
	})
	distributionSvc := rewardservice.NewDistributionService(
		rewardClient,
		historyRepository,
		rewardservice.NewCatalog(cfg.Reward.Assets),
		rewardservice.Options{Concurrency: cfg.Reward.Concurrency},
	)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler(cfg.IsProduction()))
	router.Use(middleware.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.Origins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "token", "init_data", middleware.HeaderRequestID}
	router.Use(cors.New(corsConfig))

	requireAuth := middleware.RequireAuth(authenticator)
	requireAdmin := middleware.RequireAdmin(authorizer)

	var telegramAuth gin.HandlerFunc
	if cfg.Telegram.BotToken != "" {
		telegramAuth = middleware.TelegramInitData(cfg.Telegram.BotToken, cfg.Telegram.InitDataTTL)
	}

	api := router.Group("/api", middleware.Timeout(cfg.Server.RequestTimeout))
	tokenhttp.NewTokenHandler(tokenSvc).RegisterRoutes(api, requireAuth, telegramAuth)
	userhttp.NewUserHandler(userSvc).RegisterRoutes(api, requireAuth, telegramAuth)
	communityhttp.NewCommunityHandler(communitySvc).RegisterRoutes(api)
	promotionhttp.NewPromotionHandler(promotionSvc).RegisterRoutes(api)
	rewardhttp.NewRewardHandler(historySvc, distributionSvc).RegisterRoutes(api, requireAuth, requireAdmin)

	setupProbes(router, postgresClient, redisClient)

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

func setupProbes(router *gin.Engine, postgresClient *postgres.Client, redisClient *redis.Client) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := postgresClient.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unready",
				"error":   "postgres unavailable",
				"details": err.Error(),
			})
			return
		}

		// redis is optional
		if redisClient != nil {
			if err := redisClient.HealthCheck(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unready",
					"error":   "redis unavailable",
					"details": err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	})
}
