package inventory

import "sort"

// FlightInventory owns a flight's identity and its seat map. Seat booked
// state is only ever toggled through Book and Cancel; seats are created once
// at construction and never destroyed.
type FlightInventory struct {
	flightNumber string
	date         string
	seats        map[int]*Seat
	totalSeats   int
}

// New creates a flight with seats numbered 1..totalSeats, all available,
// all priced at zero until SetPriceRange is applied.
func New(flightNumber, date string, totalSeats int) *FlightInventory {
	if totalSeats < 0 {
		totalSeats = 0
	}
	seats := make(map[int]*Seat, totalSeats)
	for n := 1; n <= totalSeats; n++ {
		seats[n] = &Seat{Number: n}
	}
	return &FlightInventory{
		flightNumber: flightNumber,
		date:         date,
		seats:        seats,
		totalSeats:   totalSeats,
	}
}

func (f *FlightInventory) FlightNumber() string { return f.flightNumber }

func (f *FlightInventory) Date() string { return f.date }

func (f *FlightInventory) SeatCount() int { return f.totalSeats }

// IsAvailable reports whether seatNumber exists and is not booked.
func (f *FlightInventory) IsAvailable(seatNumber int) bool {
	seat, ok := f.seats[seatNumber]
	if !ok {
		return false
	}
	return !seat.Booked
}

// Book marks the seat booked. It returns false, without mutating anything,
// if the seat does not exist or is already booked.
func (f *FlightInventory) Book(seatNumber int) bool {
	seat, ok := f.seats[seatNumber]
	if !ok || seat.Booked {
		return false
	}
	seat.Booked = true
	return true
}

// Cancel frees a booked seat. It returns false, without mutating anything,
// if the seat does not exist or is not currently booked.
func (f *FlightInventory) Cancel(seatNumber int) bool {
	seat, ok := f.seats[seatNumber]
	if !ok || !seat.Booked {
		return false
	}
	seat.Booked = false
	return true
}

// SetPriceRange assigns price to every existing seat numbered in [start, end].
// Seat numbers outside the flight's range are skipped, so malformed range
// bounds in the feed never fail the load.
func (f *FlightInventory) SetPriceRange(start, end, price int) {
	for n := start; n <= end; n++ {
		if seat, ok := f.seats[n]; ok {
			seat.Price = price
		}
	}
}

// Seat returns a copy of the seat with the given number.
func (f *FlightInventory) Seat(seatNumber int) (Seat, bool) {
	seat, ok := f.seats[seatNumber]
	if !ok {
		return Seat{}, false
	}
	return *seat, true
}

// ListAvailable returns a snapshot of all unbooked seats, ordered by seat
// number.
func (f *FlightInventory) ListAvailable() []Seat {
	available := make([]Seat, 0, len(f.seats))
	for _, seat := range f.seats {
		if !seat.Booked {
			available = append(available, *seat)
		}
	}
	sort.Slice(available, func(i, j int) bool {
		return available[i].Number < available[j].Number
	})
	return available
}

// AvailableCount returns the number of unbooked seats.
func (f *FlightInventory) AvailableCount() int {
	count := 0
	for _, seat := range f.seats {
		if !seat.Booked {
			count++
		}
	}
	return count
}
