package main

import (
	"os"

	"go-hr-portal/internal/app"
	"go-hr-portal/internal/bootstrap"
	"go-hr-portal/internal/config"
	"go-hr-portal/internal/middleware"
	"go-hr-portal/internal/shared/apperror"
	"go-hr-portal/internal/shared/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Getenv("HRP_CONFIG_FILE"))
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	apperror.Init()
	r := gin.Default()
	r.Use(middleware.RequestID())

	// build dependency + routes
	cleanup, err := app.BuildApp(cfg, r, log)
	if err != nil {
		log.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	bootstrap.StartHTTPServer(r, cfg.Server, bootstrap.NewStdoutAuditLogger(log), log)
}
