package main

import (
	"log"

	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"holland-test/internal/catalog"
	"holland-test/internal/config"
	"holland-test/internal/desktop"
	"holland-test/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("load catalog", zap.Error(err))
	}

	svc := service.NewAssessmentService(cat, service.NewMemorySessionStore(0), nil, nil, cfg.ResultsMode, logger)
	ui, err := desktop.New(app.NewWithID("io.holland.test"), svc, logger)
	if err != nil {
		logger.Fatal("start desktop session", zap.Error(err))
	}
	ui.Run()
}
