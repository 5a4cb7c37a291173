package main

import (
	"log"

	"github.com/eventlify/booking-engine/config"
	"github.com/eventlify/booking-engine/internal/dispatcher"
	"github.com/eventlify/booking-engine/internal/handler"
	"github.com/eventlify/booking-engine/internal/middleware"
	"github.com/eventlify/booking-engine/internal/repository"
	"github.com/eventlify/booking-engine/internal/service"
	"github.com/eventlify/booking-engine/pkg/database"
	"github.com/eventlify/booking-engine/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ publisher: notification/email/refund side effects. The
	// engine runs without it; transitions then skip dispatch.
	var dsp service.Dispatcher
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Printf("rabbitmq unavailable, side effects disabled: %v", err)
	} else {
		defer publisher.Close()
		dsp = dispatcher.NewAMQPDispatcher(publisher)
	}

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	eventRepo := repository.NewEventRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	payRepo := repository.NewPaymentRepository(db)

	// Service
	lifecycleSvc := service.NewLifecycleService(bookingRepo, eventRepo, ticketRepo, txnRepo, payRepo, dsp)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "booking-engine"})
	})

	handler.NewBookingHandler(lifecycleSvc, eventRepo, bookingRepo).RegisterRoutes(e)

	log.Printf("Booking Engine starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
