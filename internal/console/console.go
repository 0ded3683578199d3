// Package console implements the interactive operator menu. It reads from an
// io.Reader and writes to an io.Writer so sessions can be scripted in tests,
// and the exit selection returns from Run instead of terminating the process.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cx-tal-miterani/seat-reservation/internal/ledger"
	"github.com/cx-tal-miterani/seat-reservation/internal/service"
)

const menu = `
1) List flights
2) Check seat availability
3) Book a ticket
4) Return a ticket
5) View ticket by confirmation id
6) View tickets by passenger
7) View tickets by flight
0) Exit
`

// Console drives a single operator session against the reservation service.
type Console struct {
	reservations service.ReservationService
	in           *bufio.Scanner
	out          io.Writer
}

// New creates a Console reading commands from in and printing to out.
func New(reservations service.ReservationService, in io.Reader, out io.Writer) *Console {
	return &Console{
		reservations: reservations,
		in:           bufio.NewScanner(in),
		out:          out,
	}
}

// Run loops over the menu until the operator exits or input ends. Operation
// errors are printed and the loop continues; only input exhaustion or context
// cancellation ends the session.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.out, menu)
		choice, ok := c.prompt("Select an option: ")
		if !ok {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "0", "exit", "q":
			fmt.Fprintln(c.out, "Goodbye.")
			return nil
		case "1":
			c.listFlights(ctx)
		case "2":
			c.checkAvailability(ctx)
		case "3":
			c.bookTicket(ctx)
		case "4":
			c.returnTicket(ctx)
		case "5":
			c.viewTicket(ctx)
		case "6":
			c.viewByPassenger(ctx)
		case "7":
			c.viewByFlight(ctx)
		default:
			fmt.Fprintln(c.out, "Unknown option.")
		}
	}
}

func (c *Console) listFlights(ctx context.Context) {
	flights := c.reservations.ListFlights(ctx)
	if len(flights) == 0 {
		fmt.Fprintln(c.out, "No flights loaded.")
		return
	}
	for _, f := range flights {
		fmt.Fprintf(c.out, "Flight %s on %s: %d of %d seats available\n",
			f.FlightNumber, f.Date, f.AvailableSeats, f.TotalSeats)
	}
}

func (c *Console) checkAvailability(ctx context.Context) {
	flightNumber, date, ok := c.promptFlight()
	if !ok {
		return
	}

	seats, err := c.reservations.CheckAvailability(ctx, flightNumber, date)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if len(seats) == 0 {
		fmt.Fprintln(c.out, "No seats available.")
		return
	}
	fmt.Fprintf(c.out, "Available seats for flight %s on %s:\n", flightNumber, date)
	for _, seat := range seats {
		fmt.Fprintf(c.out, "  Seat %d: %d$\n", seat.Number, seat.Price)
	}
}

func (c *Console) bookTicket(ctx context.Context) {
	flightNumber, date, ok := c.promptFlight()
	if !ok {
		return
	}
	seatNumber, ok := c.promptInt("Seat number: ")
	if !ok {
		return
	}
	passengerName, ok := c.prompt("Passenger name: ")
	if !ok {
		return
	}

	ticket, err := c.reservations.BookTicket(ctx, service.BookTicketRequest{
		FlightNumber:  flightNumber,
		Date:          date,
		SeatNumber:    seatNumber,
		PassengerName: passengerName,
	})
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Ticket booked. Confirmation id: %d\n", ticket.ConfirmationID)
}

func (c *Console) returnTicket(ctx context.Context) {
	confirmationID, ok := c.promptInt("Confirmation id: ")
	if !ok {
		return
	}

	if err := c.reservations.ReturnTicket(ctx, confirmationID); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "Ticket returned.")
}

func (c *Console) viewTicket(ctx context.Context) {
	confirmationID, ok := c.promptInt("Confirmation id: ")
	if !ok {
		return
	}

	ticket, err := c.reservations.GetTicket(ctx, confirmationID)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	c.printTicket(ticket)
}

func (c *Console) viewByPassenger(ctx context.Context) {
	name, ok := c.prompt("Passenger name: ")
	if !ok {
		return
	}

	tickets := c.reservations.TicketsByPassenger(ctx, name)
	if len(tickets) == 0 {
		fmt.Fprintf(c.out, "No tickets found for %s\n", name)
		return
	}
	for _, ticket := range tickets {
		c.printTicket(ticket)
	}
}

func (c *Console) viewByFlight(ctx context.Context) {
	flightNumber, date, ok := c.promptFlight()
	if !ok {
		return
	}

	tickets := c.reservations.TicketsByFlight(ctx, flightNumber, date)
	if len(tickets) == 0 {
		fmt.Fprintf(c.out, "No tickets found for flight %s on %s\n", flightNumber, date)
		return
	}
	for _, ticket := range tickets {
		c.printTicket(ticket)
	}
}

func (c *Console) printTicket(t ledger.Ticket) {
	fmt.Fprintf(c.out, "Confirmation: %d | Passenger: %s | Flight: %s | Date: %s | Seat: %d | Price: %d$\n",
		t.ConfirmationID, t.PassengerName, t.FlightNumber, t.Date, t.SeatNumber, t.Price)
}

// prompt prints the label and reads one line. ok is false when input is
// exhausted.
func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) promptInt(label string) (int, bool) {
	for {
		text, ok := c.prompt(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			fmt.Fprintln(c.out, "Please enter a number.")
			continue
		}
		return n, true
	}
}

func (c *Console) promptFlight() (flightNumber, date string, ok bool) {
	flightNumber, ok = c.prompt("Flight number: ")
	if !ok {
		return "", "", false
	}
	date, ok = c.prompt("Date (YYYY-MM-DD): ")
	if !ok {
		return "", "", false
	}
	return flightNumber, date, true
}
