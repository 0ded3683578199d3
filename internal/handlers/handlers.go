package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/cx-tal-miterani/seat-reservation/internal/ledger"
	"github.com/cx-tal-miterani/seat-reservation/internal/service"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	reservations service.ReservationService
}

// NewHandler creates a new Handler instance
func NewHandler(reservations service.ReservationService) *Handler {
	return &Handler{
		reservations: reservations,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondLedgerError maps the ledger's sentinel errors to HTTP statuses.
func respondLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrFlightNotFound), errors.Is(err, ledger.ErrTicketNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrSeatUnavailable), errors.Is(err, ledger.ErrDuplicateFlight):
		respondError(w, http.StatusConflict, err.Error())
	default:
		// ErrSeatReturn and anything unexpected mean the ledger state is
		// suspect; surface it loudly.
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// ListFlights handles GET /api/flights
func (h *Handler) ListFlights(w http.ResponseWriter, r *http.Request) {
	flights := h.reservations.ListFlights(r.Context())
	respondJSON(w, http.StatusOK, flights)
}

// CheckAvailability handles GET /api/flights/{number}/{date}/seats
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	seats, err := h.reservations.CheckAvailability(r.Context(), vars["number"], vars["date"])
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, seats)
}

// TicketsByFlight handles GET /api/flights/{number}/{date}/tickets
func (h *Handler) TicketsByFlight(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tickets := h.reservations.TicketsByFlight(r.Context(), vars["number"], vars["date"])
	if tickets == nil {
		tickets = []ledger.Ticket{}
	}
	respondJSON(w, http.StatusOK, tickets)
}

// BookTicket handles POST /api/tickets
func (h *Handler) BookTicket(w http.ResponseWriter, r *http.Request) {
	var req service.BookTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FlightNumber == "" {
		respondError(w, http.StatusBadRequest, "Flight number is required")
		return
	}
	if req.Date == "" {
		respondError(w, http.StatusBadRequest, "Date is required")
		return
	}
	if req.SeatNumber < 1 {
		respondError(w, http.StatusBadRequest, "Seat number must be positive")
		return
	}
	if req.PassengerName == "" {
		respondError(w, http.StatusBadRequest, "Passenger name is required")
		return
	}

	ticket, err := h.reservations.BookTicket(r.Context(), req)
	if err != nil {
		respondLedgerError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, ticket)
}

// GetTicket handles GET /api/tickets/{id}
func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	confirmationID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid confirmation id")
		return
	}

	ticket, err := h.reservations.GetTicket(r.Context(), confirmationID)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ticket)
}

// ReturnTicket handles DELETE /api/tickets/{id}
func (h *Handler) ReturnTicket(w http.ResponseWriter, r *http.Request) {
	confirmationID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid confirmation id")
		return
	}

	if err := h.reservations.ReturnTicket(r.Context(), confirmationID); err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Ticket returned"})
}

// TicketsByPassenger handles GET /api/passengers/{name}/tickets
func (h *Handler) TicketsByPassenger(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	tickets := h.reservations.TicketsByPassenger(r.Context(), name)
	if tickets == nil {
		tickets = []ledger.Ticket{}
	}
	respondJSON(w, http.StatusOK, tickets)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
