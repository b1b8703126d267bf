package main

import (
	"context"
	"flag"
	"os"

	"booking-service/internal/config"
	"booking-service/internal/database"
	"booking-service/internal/logging"
	"booking-service/internal/repository"
	"booking-service/internal/seed"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	ownerGuard := flag.Bool("owner-guard", true, "reuse an existing venue owner, or create a placeholder when none exists")
	dataFile := flag.String("data", "", "path to a YAML dataset (defaults to the built-in demo data)")
	skipMigrate := flag.Bool("skip-migrate", false, "do not run database migrations first")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn("Could not load .env file.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Could not load configuration")
	}
	logger := logging.Setup(cfg.LogLevel)

	ds, err := loadDataset(*dataFile)
	if err != nil {
		logger.WithError(err).Fatal("Could not load seed data")
	}

	if !*skipMigrate {
		if err := database.Migrate(cfg.DB); err != nil {
			logger.WithError(err).Fatal("Database migration failed")
		}
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		logger.WithError(err).Fatal("Could not connect to the database")
	}
	defer db.Close()

	seeder := seed.NewSeeder(seed.Stores{
		Users:     repository.NewPostgresUserRepository(db),
		Venues:    repository.NewPostgresVenueRepository(db),
		Musicians: repository.NewPostgresMusicianRepository(db),
		Events:    repository.NewPostgresEventRepository(db),
		Bookings:  repository.NewPostgresBookingRepository(db),
	}, seed.Options{OwnerGuard: *ownerGuard}, logger)

	report, err := seeder.Run(ctx, ds)
	if err != nil {
		logger.WithError(err).Error("Seeding interrupted")
	}
	if report != nil && report.Count(seed.StatusFailed)+report.Count(seed.StatusSkipped) > 0 {
		logger.Warn("Some seed steps did not complete, see log above")
	}
}

func loadDataset(path string) (*seed.Dataset, error) {
	if path == "" {
		return seed.DemoDataset()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.ParseDataset(data)
}
