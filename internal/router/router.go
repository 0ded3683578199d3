package router

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/cx-tal-miterani/seat-reservation/internal/handlers"
	"github.com/cx-tal-miterani/seat-reservation/internal/websocket"
)

// SetupRouter creates and configures the HTTP router. hub may be nil to
// disable the websocket seat feed.
func SetupRouter(h *handlers.Handler, hub *websocket.Hub) *mux.Router {
	r := mux.NewRouter()

	r.Use(corsMiddleware)
	r.Use(requestLogMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	// Flights
	api.HandleFunc("/flights", h.ListFlights).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights/{number}/{date}/seats", h.CheckAvailability).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights/{number}/{date}/tickets", h.TicketsByFlight).Methods(http.MethodGet, http.MethodOptions)

	// Tickets
	api.HandleFunc("/tickets", h.BookTicket).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/tickets/{id}", h.GetTicket).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/tickets/{id}", h.ReturnTicket).Methods(http.MethodDelete, http.MethodOptions)

	// Passengers
	api.HandleFunc("/passengers/{name}/tickets", h.TicketsByPassenger).Methods(http.MethodGet, http.MethodOptions)

	// WebSocket seat feed
	if hub != nil {
		api.HandleFunc("/flights/{number}/{date}/ws", hub.HandleWebSocket)
	}

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack keeps the websocket upgrade working behind the logging middleware.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hj.Hijack()
}

func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logrus.WithFields(logrus.Fields{
			"requestId": uuid.New().String(),
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    rec.status,
			"duration":  time.Since(start).String(),
		}).Info("request handled")
	})
}
