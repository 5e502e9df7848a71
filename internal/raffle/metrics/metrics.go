package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Refreshes counts view refreshes by outcome ("ok" or "error")
	Refreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raffle_view_refreshes_total",
			Help: "Total number of raffle view refreshes",
		},
		[]string{"outcome"},
	)

	// QueryFailures counts failed read-only contract queries
	QueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raffle_query_failures_total",
			Help: "Total number of failed raffle contract queries",
		},
		[]string{"query"},
	)

	// Entries counts enterRaffle submissions by outcome
	Entries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raffle_entries_total",
			Help: "Total number of enterRaffle submissions",
		},
		[]string{"outcome"},
	)

	// WinnersObserved counts WinnerPicked events handled
	WinnersObserved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "raffle_winners_observed_total",
			Help: "Total number of WinnerPicked events observed",
		},
	)

	// PlayerCount mirrors the last refreshed number of players
	PlayerCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "raffle_player_count",
			Help: "Number of players in the current raffle round",
		},
	)
)

// Server exposes /metrics.
type Server struct {
	server *http.Server
}

func NewServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start blocks serving until Stop is called.
func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
