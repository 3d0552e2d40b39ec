package main

import (
	"fmt"
	"os"

	"github.com/nurpe/removals-office/internal/auth"
	"github.com/nurpe/removals-office/internal/config"
	"github.com/nurpe/removals-office/internal/db"
	"github.com/nurpe/removals-office/internal/excel"
	httphandler "github.com/nurpe/removals-office/internal/http"
	"github.com/nurpe/removals-office/internal/http/middleware"
	"github.com/nurpe/removals-office/internal/logger"
	"github.com/nurpe/removals-office/internal/mailer"
	"github.com/nurpe/removals-office/internal/pdf"
	"github.com/nurpe/removals-office/internal/repository"
	"github.com/nurpe/removals-office/internal/service"
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

	clientRepo := repository.NewClientRepository(database)
	itemRepo := repository.NewItemRepository(database)
	bookingRepo := repository.NewBookingRepository(database)
	quoteRepo := repository.NewQuoteRepository(database)
	invoiceRepo := repository.NewInvoiceRepository(database)

	pdfGenerator := pdf.NewGenerator()
	excelGenerator := excel.NewGenerator()

	var mail service.Mailer
	if cfg.Mail.SendGridAPIKey != "" {
		mail = mailer.NewSendGridMailer(cfg.Mail, log)
	} else {
		log.Warn().Msg("SENDGRID_API_KEY not set, emails will only be logged")
		mail = mailer.NewLogMailer(log)
	}

	services := httphandler.Services{
		Clients:  service.NewClientService(clientRepo),
		Items:    service.NewItemService(itemRepo),
		Bookings: service.NewBookingService(bookingRepo, clientRepo),
		Quotes:   service.NewQuoteService(quoteRepo, clientRepo, pdfGenerator, excelGenerator, cfg, log),
		Invoices: service.NewInvoiceService(invoiceRepo, bookingRepo, clientRepo, pdfGenerator, excelGenerator, cfg, log),
		Email:    service.NewEmailService(mail, cfg),
	}

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(services, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting removals office service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
