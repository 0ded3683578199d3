package inventory

// Seat is a single bookable unit on a flight.
type Seat struct {
	Number int  `json:"number"`
	Price  int  `json:"price"`
	Booked bool `json:"booked"`
}
