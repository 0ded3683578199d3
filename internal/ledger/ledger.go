package ledger

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/cx-tal-miterani/seat-reservation/internal/inventory"
)

// ConfirmationBase is the value the confirmation-id counter starts at. The
// first issued id is ConfirmationBase+1; ids are never reused, even after a
// ticket is returned.
const ConfirmationBase = 1000

// BookingLedger owns the loaded flight inventories, the live ticket list,
// the passenger index and the confirmation-id counter. All mutation funnels
// through its methods; every method leaves the three collections mutually
// consistent or reports an error.
//
// The ledger itself is not safe for concurrent use. Callers that serve more
// than one client must serialize access (see service.ReservationService).
type BookingLedger struct {
	flights            []*inventory.FlightInventory
	tickets            []Ticket
	passengers         map[string]*Passenger
	nextConfirmationID int
}

// NewBookingLedger returns an empty ledger.
func NewBookingLedger() *BookingLedger {
	return &BookingLedger{
		passengers:         make(map[string]*Passenger),
		nextConfirmationID: ConfirmationBase,
	}
}

// LoadFlights appends the given inventories to the ledger. It fails if any
// incoming flight shares a flight number and date with an already-loaded one;
// on failure nothing is appended.
func (l *BookingLedger) LoadFlights(flights []*inventory.FlightInventory) error {
	seen := make(map[string]bool, len(l.flights)+len(flights))
	for _, f := range l.flights {
		seen[flightKey(f.FlightNumber(), f.Date())] = true
	}
	for _, f := range flights {
		key := flightKey(f.FlightNumber(), f.Date())
		if seen[key] {
			return fmt.Errorf("flight %s on %s: %w", f.FlightNumber(), f.Date(), ErrDuplicateFlight)
		}
		seen[key] = true
	}
	l.flights = append(l.flights, flights...)
	return nil
}

// FindFlight returns the inventory matching the flight number and date
// exactly.
func (l *BookingLedger) FindFlight(flightNumber, date string) (*inventory.FlightInventory, error) {
	for _, f := range l.flights {
		if f.FlightNumber() == flightNumber && f.Date() == date {
			return f, nil
		}
	}
	return nil, fmt.Errorf("flight %s on %s: %w", flightNumber, date, ErrFlightNotFound)
}

// Flights returns the loaded inventories in load order.
func (l *BookingLedger) Flights() []*inventory.FlightInventory {
	return l.flights
}

// CheckAvailability lists the unbooked seats of the given flight, ordered by
// seat number.
func (l *BookingLedger) CheckAvailability(flightNumber, date string) ([]inventory.Seat, error) {
	flight, err := l.FindFlight(flightNumber, date)
	if err != nil {
		return nil, err
	}
	return flight.ListAvailable(), nil
}

// BookTicket books the seat for the named passenger and issues a ticket with
// a fresh confirmation id. If the flight lookup or the seat booking fails, no
// ticket is created and the confirmation counter does not advance.
func (l *BookingLedger) BookTicket(flightNumber, date string, seatNumber int, passengerName string) (Ticket, error) {
	flight, err := l.FindFlight(flightNumber, date)
	if err != nil {
		return Ticket{}, err
	}

	seat, ok := flight.Seat(seatNumber)
	if !ok || !flight.Book(seatNumber) {
		return Ticket{}, fmt.Errorf("seat %d on flight %s (%s): %w", seatNumber, flightNumber, date, ErrSeatUnavailable)
	}

	l.nextConfirmationID++
	ticket := Ticket{
		ConfirmationID: l.nextConfirmationID,
		PassengerName:  passengerName,
		SeatNumber:     seatNumber,
		FlightNumber:   flightNumber,
		Date:           date,
		Price:          seat.Price,
	}
	l.tickets = append(l.tickets, ticket)

	passenger, ok := l.passengers[passengerName]
	if !ok {
		passenger = &Passenger{Name: passengerName}
		l.passengers[passengerName] = passenger
	}
	passenger.Tickets = append(passenger.Tickets, ticket)

	return ticket, nil
}

// ReturnTicket cancels the booking identified by confirmationID: the seat is
// freed and the ticket is removed from the live ticket list. A missing flight
// record or an already-free seat is reported, not ignored, because either
// means the ledger and the inventory have drifted apart.
func (l *BookingLedger) ReturnTicket(confirmationID int) error {
	idx := -1
	for i, t := range l.tickets {
		if t.ConfirmationID == confirmationID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("confirmation %d: %w", confirmationID, ErrTicketNotFound)
	}

	ticket := l.tickets[idx]
	flight, err := l.FindFlight(ticket.FlightNumber, ticket.Date)
	if err != nil {
		return err
	}
	if !flight.Cancel(ticket.SeatNumber) {
		return fmt.Errorf("seat %d on flight %s (%s): %w", ticket.SeatNumber, ticket.FlightNumber, ticket.Date, ErrSeatReturn)
	}

	l.tickets = append(l.tickets[:idx], l.tickets[idx+1:]...)
	return nil
}

// ViewTicket returns the live ticket with the given confirmation id.
func (l *BookingLedger) ViewTicket(confirmationID int) (Ticket, error) {
	for _, t := range l.tickets {
		if t.ConfirmationID == confirmationID {
			return t, nil
		}
	}
	return Ticket{}, fmt.Errorf("confirmation %d: %w", confirmationID, ErrTicketNotFound)
}

// ViewTicketsByPassenger returns the passenger's live tickets in booking
// order. The view is derived from the live ticket list, so returned tickets
// never appear. An unknown name yields an empty slice, not an error.
func (l *BookingLedger) ViewTicketsByPassenger(name string) []Ticket {
	return lo.Filter(l.tickets, func(t Ticket, _ int) bool {
		return t.PassengerName == name
	})
}

// ViewTicketsByFlight returns the live tickets for the flight in booking
// order, which is ascending confirmation id.
func (l *BookingLedger) ViewTicketsByFlight(flightNumber, date string) []Ticket {
	return lo.Filter(l.tickets, func(t Ticket, _ int) bool {
		return t.FlightNumber == flightNumber && t.Date == date
	})
}

// BookingHistory returns every ticket ever issued to the passenger, returned
// ones included. Unknown names yield nil.
func (l *BookingLedger) BookingHistory(name string) []Ticket {
	passenger, ok := l.passengers[name]
	if !ok {
		return nil
	}
	return passenger.Tickets
}

func flightKey(flightNumber, date string) string {
	return flightNumber + "|" + date
}
