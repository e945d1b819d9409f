package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/spacetraders-fleet/internal/application/common"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/fleet"
	"github.com/andrescamacho/spacetraders-fleet/internal/infrastructure/config"
)

// SnapshotStore yields stored leaderboard history for the chart endpoint.
type SnapshotStore interface {
	ListSnapshots(ctx context.Context) ([]fleet.LeaderboardSnapshot, error)
}

// Server exposes the live dashboard: a WebSocket event stream, the stored
// leaderboard history, and the Prometheus scrape endpoint.
type Server struct {
	cfg       config.DashboardConfig
	hub       *Hub
	snapshots SnapshotStore
	registry  *prometheus.Registry
	logger    *common.Logger
}

func NewServer(cfg config.DashboardConfig, hub *Hub, snapshots SnapshotStore, registry *prometheus.Registry, logger *common.Logger) *Server {
	return &Server{
		cfg:       cfg,
		hub:       hub,
		snapshots: snapshots,
		registry:  registry,
		logger:    logger,
	}
}

// Handler builds the routing table Start serves.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.hub.ServeWS)
	mux.HandleFunc("/leaderboard.json", s.handleLeaderboard)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	if s.cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("dashboard listening on %s", s.cfg.Listen)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.snapshots.ListSnapshots(r.Context())
	if err != nil {
		s.logger.LogError(err)
		http.Error(w, "failed to load leaderboard history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshots); err != nil {
		s.logger.LogError(err)
	}
}
