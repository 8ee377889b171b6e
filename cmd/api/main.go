package main

import (
	"net/http"
	"os"

	_ "devpress/docs" // swag will generate this package

	"devpress/cmd/api/router"
	"devpress/cmd/internal/logger"
	"devpress/config"
	"devpress/db"
)

// @title           DevPress API
// @version         1.0
// @description     Blog and interactive tutorial platform API
// @BasePath        /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	// LOG_LEVEL 환경변수가 config.yaml 값보다 우선한다.
	if os.Getenv("LOG_LEVEL") != "" {
		logger.InitFromEnv("LOG_LEVEL")
	} else {
		logger.Init(cfg.Logging.Level)
	}

	if err := db.Init(); err != nil {
		logger.Log.Error(err)
		return
	}

	r := router.New(db.Database(), cfg)

	logger.Log.Infof("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		logger.Log.Error(err)
	}
}
