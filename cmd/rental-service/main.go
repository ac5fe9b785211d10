package main

import (
	"fmt"
	"os"

	"github.com/nurpe/wasteops-rental/internal/auth"
	"github.com/nurpe/wasteops-rental/internal/config"
	"github.com/nurpe/wasteops-rental/internal/db"
	"github.com/nurpe/wasteops-rental/internal/excel"
	httphandler "github.com/nurpe/wasteops-rental/internal/http"
	"github.com/nurpe/wasteops-rental/internal/http/middleware"
	"github.com/nurpe/wasteops-rental/internal/logger"
	"github.com/nurpe/wasteops-rental/internal/pdf"
	"github.com/nurpe/wasteops-rental/internal/repository"
	"github.com/nurpe/wasteops-rental/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	customerRepo := repository.NewCustomerRepository(database)
	carRepo := repository.NewCarRepository(database)
	employeeRepo := repository.NewEmployeeRepository(database)
	containerRepo := repository.NewContainerRepository(database)
	agreementRepo := repository.NewAgreementRepository(database)
	jobRepo := repository.NewJobRepository(database)

	customerService := service.NewCustomerService(customerRepo)
	fleetService := service.NewFleetService(carRepo, employeeRepo)
	containerService := service.NewContainerService(containerRepo)
	agreementService := service.NewAgreementService(agreementRepo, customerRepo, containerRepo, pdf.NewGenerator())
	jobService := service.NewJobService(jobRepo, carRepo, excel.NewGenerator())

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(customerService, fleetService, containerService, agreementService, jobService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting rental service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
