package main

import (
	"fmt"

	"github.com/MKhiriev/go-access-portal/internal/client"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("portalctl")

	app, err := client.NewApp()
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
