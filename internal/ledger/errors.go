package ledger

import "errors"

var (
	// ErrFlightNotFound means no loaded flight matches the flight number and
	// date pair.
	ErrFlightNotFound = errors.New("flight not found")

	// ErrSeatUnavailable means the requested seat is out of range or already
	// booked.
	ErrSeatUnavailable = errors.New("seat not available")

	// ErrTicketNotFound means no live ticket carries the confirmation id.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrDuplicateFlight means a flight with the same number and date was
	// already loaded.
	ErrDuplicateFlight = errors.New("duplicate flight")

	// ErrSeatReturn means the ticket's seat was already free when the return
	// was attempted. It indicates the inventory and the ticket list have
	// desynchronized and must be surfaced, never swallowed.
	ErrSeatReturn = errors.New("seat already free on return")
)
