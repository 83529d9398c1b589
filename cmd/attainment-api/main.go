package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/obe-automation/attainment-api/api/swagger"
	"github.com/obe-automation/attainment-api/internal/handler"
	"github.com/obe-automation/attainment-api/internal/repository"
	"github.com/obe-automation/attainment-api/internal/service"
	"github.com/obe-automation/attainment-api/pkg/cache"
	"github.com/obe-automation/attainment-api/pkg/config"
	"github.com/obe-automation/attainment-api/pkg/database"
	"github.com/obe-automation/attainment-api/pkg/export"
	"github.com/obe-automation/attainment-api/pkg/logger"
	corsmiddleware "github.com/obe-automation/attainment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/obe-automation/attainment-api/pkg/middleware/requestid"
)

// @title OBE Attainment API
// @version 1.0.0
// @description Outcome-based education attainment computation service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, report caching disabled", zap.Error(err))
		redisClient = nil
	}

	sectionRepo := repository.NewSectionRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	outcomeRepo := repository.NewOutcomeRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Engine.CacheTTL, logr, cfg.Engine.CacheEnabled && redisClient != nil)
	attainmentSvc := service.NewAttainmentService(sectionRepo, assessmentRepo, enrollmentRepo, scoreRepo, outcomeRepo, metricsSvc, logr)
	ploSvc := service.NewPLOService(outcomeRepo, sectionRepo, enrollmentRepo, attainmentSvc, metricsSvc, logr)
	resultSvc := service.NewResultService(sectionRepo, assessmentRepo, enrollmentRepo, scoreRepo, metricsSvc, logr)
	directorySvc := service.NewDirectoryService(outcomeRepo, sectionRepo, logr)
	exportSvc := service.NewExportService(attainmentSvc, resultSvc, export.NewCSVExporter(), export.NewPDFExporter(), cfg.Exports.Enabled, logr)

	router := handler.NewRouter(
		handler.NewAttainmentHandler(attainmentSvc, cacheSvc),
		handler.NewResultHandler(resultSvc, cacheSvc),
		handler.NewPLOHandler(ploSvc),
		handler.NewDirectoryHandler(directorySvc),
		handler.NewExportHandler(exportSvc),
		metricsSvc,
		cfg.JWT.Secret,
	)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	router.Setup(r, cfg.APIPrefix)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
