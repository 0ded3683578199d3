package ledger

// Ticket is an immutable booking record snapshot. The price is captured at
// booking time so a later repricing of the seat never changes an issued
// ticket.
type Ticket struct {
	ConfirmationID int    `json:"confirmationId"`
	PassengerName  string `json:"passengerName"`
	SeatNumber     int    `json:"seatNumber"`
	FlightNumber   string `json:"flightNumber"`
	Date           string `json:"date"`
	Price          int    `json:"price"`
}

// Passenger groups a name with the tickets ever issued to it. The list is an
// append-only booking history; live tickets are derived from the ledger's
// ticket list instead, so returned tickets drop out of passenger views.
type Passenger struct {
	Name    string   `json:"name"`
	Tickets []Ticket `json:"tickets"`
}
