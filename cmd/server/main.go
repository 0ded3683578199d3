package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/cx-tal-miterani/seat-reservation/internal/config"
	"github.com/cx-tal-miterani/seat-reservation/internal/handlers"
	"github.com/cx-tal-miterani/seat-reservation/internal/ledger"
	"github.com/cx-tal-miterani/seat-reservation/internal/router"
	"github.com/cx-tal-miterani/seat-reservation/internal/service"
	"github.com/cx-tal-miterani/seat-reservation/internal/websocket"
)

const (
	DefaultPort        = "8080"
	DefaultFlightsFile = "flights.txt"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})

	port := os.Getenv("API_PORT")
	if port == "" {
		port = DefaultPort
	}

	flightsFile := os.Getenv("FLIGHTS_FILE")
	if flightsFile == "" {
		flightsFile = DefaultFlightsFile
	}

	flights, err := config.LoadFile(flightsFile)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load flight feed")
	}

	bookingLedger := ledger.NewBookingLedger()
	if err := bookingLedger.LoadFlights(flights); err != nil {
		logrus.WithError(err).Fatal("failed to load flights into ledger")
	}

	hub := websocket.NewHub()
	go hub.Run()

	reservations := service.NewReservationService(bookingLedger, hub)
	h := handlers.NewHandler(reservations)
	r := router.SetupRouter(h, hub)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"port":    port,
			"flights": len(flights),
		}).Info("reservation server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server stopped")
}
