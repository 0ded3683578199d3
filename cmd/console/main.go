package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/cx-tal-miterani/seat-reservation/internal/config"
	"github.com/cx-tal-miterani/seat-reservation/internal/console"
	"github.com/cx-tal-miterani/seat-reservation/internal/ledger"
	"github.com/cx-tal-miterani/seat-reservation/internal/service"
)

const DefaultFlightsFile = "flights.txt"

func main() {
	_ = godotenv.Load()

	flightsFile := os.Getenv("FLIGHTS_FILE")
	if len(os.Args) > 1 {
		flightsFile = os.Args[1]
	}
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

	reservations := service.NewReservationService(bookingLedger, nil)

	c := console.New(reservations, os.Stdin, os.Stdout)
	if err := c.Run(context.Background()); err != nil {
		logrus.WithError(err).Fatal("console session failed")
	}
}
