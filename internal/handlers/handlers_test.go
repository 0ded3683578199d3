package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cx-tal-miterani/seat-reservation/internal/service/mocks"
	"github.com/cx-tal-miterani/seat-reservation/internal/inventory"
	"github.com/cx-tal-miterani/seat-reservation/internal/ledger"
	"github.com/cx-tal-miterani/seat-reservation/internal/service"
)

func setupTestRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/flights", h.ListFlights).Methods(http.MethodGet)
	api.HandleFunc("/flights/{number}/{date}/seats", h.CheckAvailability).Methods(http.MethodGet)
	api.HandleFunc("/flights/{number}/{date}/tickets", h.TicketsByFlight).Methods(http.MethodGet)
	api.HandleFunc("/tickets", h.BookTicket).Methods(http.MethodPost)
	api.HandleFunc("/tickets/{id}", h.GetTicket).Methods(http.MethodGet)
	api.HandleFunc("/tickets/{id}", h.ReturnTicket).Methods(http.MethodDelete)
	api.HandleFunc("/passengers/{name}/tickets", h.TicketsByPassenger).Methods(http.MethodGet)
	return r
}

func TestHandler_ListFlights(t *testing.T) {
	mockService := new(mocks.MockReservationService)
	handler := NewHandler(mockService)
	router := setupTestRouter(handler)

	expected := []service.FlightSummary{
		{FlightNumber: "FL100", Date: "2024-05-01", TotalSeats: 6, AvailableSeats: 5},
	}
	mockService.On("ListFlights", mock.Anything).Return(expected)

	req := httptest.NewRequest(http.MethodGet, "/api/flights", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []service.FlightSummary
	err := json.NewDecoder(rec.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, expected, response)

	mockService.AssertExpectations(t)
}

func TestHandler_CheckAvailability(t *testing.T) {
	tests := []struct {
		name           string
		mockReturn     []inventory.Seat
		mockError      error
		expectedStatus int
	}{
		{
			name: "flight found",
			mockReturn: []inventory.Seat{
				{Number: 1, Price: 100},
				{Number: 2, Price: 100},
			},
			mockError:      nil,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "flight not found",
			mockReturn:     nil,
			mockError:      ledger.ErrFlightNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockReservationService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			mockService.On("CheckAvailability", mock.Anything, "FL100", "2024-05-01").Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/api/flights/FL100/2024-05-01/seats", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_BookTicket(t *testing.T) {
	validRequest := service.BookTicketRequest{
		FlightNumber:  "FL100",
		Date:          "2024-05-01",
		SeatNumber:    4,
		PassengerName: "Bob",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockReturn     ledger.Ticket
		mockError      error
		expectedStatus int
		shouldCallMock bool
	}{
		{
			name:        "valid booking",
			requestBody: validRequest,
			mockReturn: ledger.Ticket{
				ConfirmationID: 1001,
				PassengerName:  "Bob",
				SeatNumber:     4,
				FlightNumber:   "FL100",
				Date:           "2024-05-01",
				Price:          150,
			},
			mockError:      nil,
			expectedStatus: http.StatusCreated,
			shouldCallMock: true,
		},
		{
			name: "missing flight number",
			requestBody: service.BookTicketRequest{
				Date: "2024-05-01", SeatNumber: 4, PassengerName: "Bob",
			},
			expectedStatus: http.StatusBadRequest,
			shouldCallMock: false,
		},
		{
			name: "missing passenger name",
			requestBody: service.BookTicketRequest{
				FlightNumber: "FL100", Date: "2024-05-01", SeatNumber: 4,
			},
			expectedStatus: http.StatusBadRequest,
			shouldCallMock: false,
		},
		{
			name: "seat number not positive",
			requestBody: service.BookTicketRequest{
				FlightNumber: "FL100", Date: "2024-05-01", SeatNumber: 0, PassengerName: "Bob",
			},
			expectedStatus: http.StatusBadRequest,
			shouldCallMock: false,
		},
		{
			name:           "seat already booked",
			requestBody:    validRequest,
			mockReturn:     ledger.Ticket{},
			mockError:      ledger.ErrSeatUnavailable,
			expectedStatus: http.StatusConflict,
			shouldCallMock: true,
		},
		{
			name:           "flight not found",
			requestBody:    validRequest,
			mockReturn:     ledger.Ticket{},
			mockError:      ledger.ErrFlightNotFound,
			expectedStatus: http.StatusNotFound,
			shouldCallMock: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockReservationService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			body, _ := json.Marshal(tt.requestBody)

			if tt.shouldCallMock {
				mockService.On("BookTicket", mock.Anything, mock.AnythingOfType("service.BookTicketRequest")).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/tickets", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestHandler_BookTicket_InvalidBody(t *testing.T) {
	mockService := new(mocks.MockReservationService)
	handler := NewHandler(mockService)
	router := setupTestRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/tickets", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetTicket(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockID         int
		mockReturn     ledger.Ticket
		mockError      error
		expectedStatus int
		shouldCallMock bool
	}{
		{
			name:           "ticket found",
			path:           "/api/tickets/1001",
			mockID:         1001,
			mockReturn:     ledger.Ticket{ConfirmationID: 1001, PassengerName: "Bob"},
			expectedStatus: http.StatusOK,
			shouldCallMock: true,
		},
		{
			name:           "ticket not found",
			path:           "/api/tickets/9999",
			mockID:         9999,
			mockError:      ledger.ErrTicketNotFound,
			expectedStatus: http.StatusNotFound,
			shouldCallMock: true,
		},
		{
			name:           "non-numeric id",
			path:           "/api/tickets/abc",
			expectedStatus: http.StatusBadRequest,
			shouldCallMock: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockReservationService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			if tt.shouldCallMock {
				mockService.On("GetTicket", mock.Anything, tt.mockID).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_ReturnTicket(t *testing.T) {
	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
	}{
		{
			name:           "successful return",
			mockError:      nil,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "ticket not found",
			mockError:      ledger.ErrTicketNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "seat already free",
			mockError:      ledger.ErrSeatReturn,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockReservationService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			mockService.On("ReturnTicket", mock.Anything, 1001).Return(tt.mockError)

			req := httptest.NewRequest(http.MethodDelete, "/api/tickets/1001", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_TicketsByPassenger_UnknownNameIsEmptyList(t *testing.T) {
	mockService := new(mocks.MockReservationService)
	handler := NewHandler(mockService)
	router := setupTestRouter(handler)

	mockService.On("TicketsByPassenger", mock.Anything, "Nobody").Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/passengers/Nobody/tickets", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHandler_TicketsByFlight(t *testing.T) {
	mockService := new(mocks.MockReservationService)
	handler := NewHandler(mockService)
	router := setupTestRouter(handler)

	tickets := []ledger.Ticket{
		{ConfirmationID: 1001, PassengerName: "Bob", SeatNumber: 4, FlightNumber: "FL100", Date: "2024-05-01", Price: 150},
	}
	mockService.On("TicketsByFlight", mock.Anything, "FL100", "2024-05-01").Return(tickets)

	req := httptest.NewRequest(http.MethodGet, "/api/flights/FL100/2024-05-01/tickets", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []ledger.Ticket
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, tickets, response)
}
