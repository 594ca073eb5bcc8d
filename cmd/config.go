package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	PackagesCSV  string
	DistancesCSV string
	HubID        string

	VehicleCount    string
	DriverCount     string
	VehicleCapacity string
	AverageSpeed    string
	DepartureTime   string
	MaxTrips        string
	GroupPolicy     string

	// DayRunSchedule is a cron expression with seconds; empty disables the job.
	DayRunSchedule string
}

// LoadConfig reads .env when present and then the process environment.
// The returned bool reports whether a .env file was found.
func LoadConfig() (Config, bool) {
	found := godotenv.Load(".env") == nil

	return Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBSslMode:       getEnv("DB_SSLMODE", "disable"),
		PackagesCSV:     getEnv("PACKAGES_CSV", "data/packages.csv"),
		DistancesCSV:    getEnv("DISTANCES_CSV", "data/distances.csv"),
		HubID:           getEnv("HUB_ID", "HUB"),
		VehicleCount:    os.Getenv("VEHICLE_COUNT"),
		DriverCount:     os.Getenv("DRIVER_COUNT"),
		VehicleCapacity: os.Getenv("VEHICLE_CAPACITY"),
		AverageSpeed:    os.Getenv("AVERAGE_SPEED"),
		DepartureTime:   os.Getenv("DEPARTURE_TIME"),
		MaxTrips:        os.Getenv("MAX_TRIPS"),
		GroupPolicy:     os.Getenv("GROUP_POLICY"),
		DayRunSchedule:  os.Getenv("DAY_RUN_SCHEDULE"),
	}, found
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// Hub returns the configured hub location.
func (c Config) Hub() (kernel.Address, error) {
	return kernel.NewAddress(c.HubID)
}

// Fleet parses the fleet settings. Empty values keep the defaults of
// commands.DefaultFleetConfig.
func (c Config) Fleet() (commands.FleetConfig, error) {
	hub, err := c.Hub()
	if err != nil {
		return commands.FleetConfig{}, err
	}

	fleet := commands.DefaultFleetConfig(hub)
	var problems []error
	setInt := func(name, raw string, dst *int) {
		if raw == "" {
			return
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(name, err))
			return
		}
		*dst = v
	}

	setInt("VEHICLE_COUNT", c.VehicleCount, &fleet.VehicleCount)
	setInt("DRIVER_COUNT", c.DriverCount, &fleet.DriverCount)
	setInt("VEHICLE_CAPACITY", c.VehicleCapacity, &fleet.Capacity)
	setInt("MAX_TRIPS", c.MaxTrips, &fleet.MaxTrips)
	if c.AverageSpeed != "" {
		speed, err := strconv.ParseFloat(c.AverageSpeed, 64)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("AVERAGE_SPEED", err))
		} else {
			fleet.Speed = speed
		}
	}
	if c.DepartureTime != "" {
		fleet.DepartureClock = c.DepartureTime
	}
	policy, err := services.ParseGroupPolicy(c.GroupPolicy)
	if err != nil {
		problems = append(problems, err)
	}
	fleet.GroupPolicy = policy

	if len(problems) > 0 {
		return commands.FleetConfig{}, errors.Join(problems...)
	}
	return fleet, fleet.Validate()
}
