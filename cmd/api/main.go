package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/yigit/facultyhub/internal/server"
)

// @title FacultyHub API
// @version 1.0
// @description API for managing students, professors, courses, grades and exam registrations

// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	configPath := flag.String("config", "", "path to the YAML config file (default configs/config.yaml)")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		log.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	log.Info().Msg("Application finished gracefully.")
}
