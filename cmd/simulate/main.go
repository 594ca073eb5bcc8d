// Command simulate runs one delivery day from the CSV manifest and prints the
// report. Nothing is stored.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"dispatch/cmd"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/services"

	"github.com/labstack/gommon/log"
)

func main() {
	configs, _ := cmd.LoadConfig()

	flag.StringVar(&configs.PackagesCSV, "packages", configs.PackagesCSV, "package file")
	flag.StringVar(&configs.DistancesCSV, "distances", configs.DistancesCSV, "distance table")
	flag.StringVar(&configs.HubID, "hub", configs.HubID, "hub location id")
	flag.StringVar(&configs.GroupPolicy, "group-policy", configs.GroupPolicy, "defer or next-fit")
	day := flag.String("day", time.Now().Format("2006-01-02"), "day to simulate")
	verbose := flag.Bool("v", false, "log every event")
	trace := flag.Bool("trace", false, "print the event trace after the report")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	date, err := time.Parse("2006-01-02", *day)
	if err != nil {
		log.Fatalf("Invalid day %q: %v", *day, err)
	}

	app := cmd.NewCompositionRoot(configs, nil, logger)
	recorder := &services.Recorder{}
	if *trace {
		app.AddEventSink(recorder)
	}
	handler, err := app.CreateRunDeliveryDayCommandHandler()
	if err != nil {
		log.Fatalf("Error configuring delivery day: %v", err)
	}
	command, err := commands.NewRunDeliveryDayCommand(date)
	if err != nil {
		log.Fatalf("Error creating command: %v", err)
	}

	report, err := handler.Handle(context.Background(), command)
	if err != nil {
		log.Fatalf("Delivery day failed: %v", err)
	}
	err = printReport(os.Stdout, report)
	if err == nil && *trace {
		err = printTrace(os.Stdout, recorder.Events())
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
