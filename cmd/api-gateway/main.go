package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/timetable-cpsat-engine/api/swagger"
	internalhandler "github.com/noah-isme/timetable-cpsat-engine/internal/handler"
	internalmiddleware "github.com/noah-isme/timetable-cpsat-engine/internal/middleware"
	"github.com/noah-isme/timetable-cpsat-engine/internal/service"
	"github.com/noah-isme/timetable-cpsat-engine/pkg/config"
	"github.com/noah-isme/timetable-cpsat-engine/pkg/logger"
	corsmiddleware "github.com/noah-isme/timetable-cpsat-engine/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/timetable-cpsat-engine/pkg/middleware/requestid"
)

// @title Timetable CP-SAT Engine API
// @version 1.0.0
// @description University timetable constraint-programming engine: generates and validates course timetables.
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	metricsHandler := internalhandler.NewMetricsHandler(metricsSvc)

	engineSvc := service.NewEngineService(logr, metricsSvc, cfg.Engine)
	engineHandler := internalhandler.NewEngineHandler(engineSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/health", metricsHandler.Health)

	secured := api.Group("")
	secured.Use(internalmiddleware.APIKey(cfg.APIKey))
	secured.POST("/generate", engineHandler.Generate)
	secured.POST("/validate", engineHandler.Validate)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
