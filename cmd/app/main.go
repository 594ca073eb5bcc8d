package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"dispatch/cmd"
	"dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/jobs"

	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	db, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, db, logger)
	runDeliveryDayHandler, err := app.CreateRunDeliveryDayCommandHandler()
	if err != nil {
		log.Fatalf("Error configuring delivery day: %v", err)
	}

	jobManager := jobs.NewJobManager(runDeliveryDayHandler, configs.DayRunSchedule, logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	server := http.NewServer(
		runDeliveryDayHandler,
		app.CreateGetRunSummaryQueryHandler(),
		app.CreateGetRunParcelsQueryHandler(),
	)
	startWebServer(ctx, server, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	configs, found := cmd.LoadConfig()
	if !found {
		log.Warn("No .env file found, using environment variables")
	}
	return configs
}

func startWebServer(ctx context.Context, server *http.Server, port string) {
	e, err := http.NewRouter(ctx, server)
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
