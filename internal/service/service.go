package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cx-tal-miterani/seat-reservation/internal/inventory"
	"github.com/cx-tal-miterani/seat-reservation/internal/ledger"
)

// FlightSummary describes one loaded flight.
type FlightSummary struct {
	FlightNumber   string `json:"flightNumber"`
	Date           string `json:"date"`
	TotalSeats     int    `json:"totalSeats"`
	AvailableSeats int    `json:"availableSeats"`
}

// BookTicketRequest carries the arguments of a booking.
type BookTicketRequest struct {
	FlightNumber  string `json:"flightNumber"`
	Date          string `json:"date"`
	SeatNumber    int    `json:"seatNumber"`
	PassengerName string `json:"passengerName"`
}

// SeatBroadcaster receives seat state changes after successful bookings and
// returns. Implemented by the websocket hub; a nil broadcaster disables the
// feed.
type SeatBroadcaster interface {
	SeatChanged(flightNumber, date string, seat inventory.Seat)
}

// ReservationService defines the operations exposed to the HTTP handlers and
// the operator console.
type ReservationService interface {
	ListFlights(ctx context.Context) []FlightSummary
	CheckAvailability(ctx context.Context, flightNumber, date string) ([]inventory.Seat, error)
	BookTicket(ctx context.Context, req BookTicketRequest) (ledger.Ticket, error)
	ReturnTicket(ctx context.Context, confirmationID int) error
	GetTicket(ctx context.Context, confirmationID int) (ledger.Ticket, error)
	TicketsByPassenger(ctx context.Context, name string) []ledger.Ticket
	TicketsByFlight(ctx context.Context, flightNumber, date string) []ledger.Ticket
}

// reservationServiceImpl serializes all ledger access behind a single mutex.
// The ledger itself is single-threaded; the coarse lock is what makes the
// HTTP surface safe.
type reservationServiceImpl struct {
	mu          sync.Mutex
	ledger      *ledger.BookingLedger
	broadcaster SeatBroadcaster
	log         *logrus.Entry
}

// NewReservationService wraps the ledger. broadcaster may be nil.
func NewReservationService(l *ledger.BookingLedger, broadcaster SeatBroadcaster) ReservationService {
	return &reservationServiceImpl{
		ledger:      l,
		broadcaster: broadcaster,
		log:         logrus.WithField("component", "reservation-service"),
	}
}

func (s *reservationServiceImpl) ListFlights(ctx context.Context) []FlightSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	flights := s.ledger.Flights()
	summaries := make([]FlightSummary, 0, len(flights))
	for _, f := range flights {
		summaries = append(summaries, FlightSummary{
			FlightNumber:   f.FlightNumber(),
			Date:           f.Date(),
			TotalSeats:     f.SeatCount(),
			AvailableSeats: f.AvailableCount(),
		})
	}
	return summaries
}

func (s *reservationServiceImpl) CheckAvailability(ctx context.Context, flightNumber, date string) ([]inventory.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.CheckAvailability(flightNumber, date)
}

func (s *reservationServiceImpl) BookTicket(ctx context.Context, req BookTicketRequest) (ledger.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.ledger.BookTicket(req.FlightNumber, req.Date, req.SeatNumber, req.PassengerName)
	if err != nil {
		return ledger.Ticket{}, err
	}

	s.log.WithFields(logrus.Fields{
		"confirmationId": ticket.ConfirmationID,
		"flight":         ticket.FlightNumber,
		"date":           ticket.Date,
		"seat":           ticket.SeatNumber,
	}).Info("ticket booked")

	s.notifySeatChanged(ticket.FlightNumber, ticket.Date, ticket.SeatNumber)
	return ticket, nil
}

func (s *reservationServiceImpl) ReturnTicket(ctx context.Context, confirmationID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.ledger.ViewTicket(confirmationID)
	if err != nil {
		return err
	}
	if err := s.ledger.ReturnTicket(confirmationID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"confirmationId": confirmationID,
		"flight":         ticket.FlightNumber,
		"date":           ticket.Date,
		"seat":           ticket.SeatNumber,
	}).Info("ticket returned")

	s.notifySeatChanged(ticket.FlightNumber, ticket.Date, ticket.SeatNumber)
	return nil
}

func (s *reservationServiceImpl) GetTicket(ctx context.Context, confirmationID int) (ledger.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.ViewTicket(confirmationID)
}

func (s *reservationServiceImpl) TicketsByPassenger(ctx context.Context, name string) []ledger.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.ViewTicketsByPassenger(name)
}

func (s *reservationServiceImpl) TicketsByFlight(ctx context.Context, flightNumber, date string) []ledger.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.ViewTicketsByFlight(flightNumber, date)
}

// notifySeatChanged is called with the mutex held so the broadcast seat
// snapshot matches the ledger state the caller observed.
func (s *reservationServiceImpl) notifySeatChanged(flightNumber, date string, seatNumber int) {
	if s.broadcaster == nil {
		return
	}
	flight, err := s.ledger.FindFlight(flightNumber, date)
	if err != nil {
		return
	}
	if seat, ok := flight.Seat(seatNumber); ok {
		s.broadcaster.SeatChanged(flightNumber, date, seat)
	}
}
