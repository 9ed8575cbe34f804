package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-access-portal/internal/config"
	"github.com/MKhiriev/go-access-portal/internal/handler"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/server"
	"github.com/MKhiriev/go-access-portal/internal/service"
	"github.com/MKhiriev/go-access-portal/internal/store"
	"github.com/MKhiriev/go-access-portal/internal/workers"
	"github.com/MKhiriev/go-access-portal/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("portal-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if buildVersion != "" {
		cfg.App.Version = buildVersion
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = services.AccountService.EnsureAdmin(ctx, cfg.App.AdminLogin, cfg.App.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("error creating bootstrap admin account")
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	workersCtx, stopWorkers := context.WithCancel(ctx)
	backgroundWorkers := workers.NewWorkers(storages, cfg.Workers, log)
	backgroundWorkers.Start(workersCtx)
	defer backgroundWorkers.Stop()
	defer stopWorkers()

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	fmt.Printf("Build version: %s\n", valueOrNA(info.BuildVersion()))
	fmt.Printf("Build date: %s\n", valueOrNA(info.BuildDate()))
	fmt.Printf("Build commit: %s\n", valueOrNA(info.BuildCommit()))
}

func valueOrNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
