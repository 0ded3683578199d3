package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cx-tal-miterani/seat-reservation/internal/inventory"
	"github.com/cx-tal-miterani/seat-reservation/internal/ledger"
	"github.com/cx-tal-miterani/seat-reservation/internal/service"
)

// MockReservationService is a mock implementation of service.ReservationService
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) ListFlights(ctx context.Context) []service.FlightSummary {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]service.FlightSummary)
}

func (m *MockReservationService) CheckAvailability(ctx context.Context, flightNumber, date string) ([]inventory.Seat, error) {
	args := m.Called(ctx, flightNumber, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Seat), args.Error(1)
}

func (m *MockReservationService) BookTicket(ctx context.Context, req service.BookTicketRequest) (ledger.Ticket, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ledger.Ticket), args.Error(1)
}

func (m *MockReservationService) ReturnTicket(ctx context.Context, confirmationID int) error {
	args := m.Called(ctx, confirmationID)
	return args.Error(0)
}

func (m *MockReservationService) GetTicket(ctx context.Context, confirmationID int) (ledger.Ticket, error) {
	args := m.Called(ctx, confirmationID)
	return args.Get(0).(ledger.Ticket), args.Error(1)
}

func (m *MockReservationService) TicketsByPassenger(ctx context.Context, name string) []ledger.Ticket {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]ledger.Ticket)
}

func (m *MockReservationService) TicketsByFlight(ctx context.Context, flightNumber, date string) []ledger.Ticket {
	args := m.Called(ctx, flightNumber, date)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]ledger.Ticket)
}
