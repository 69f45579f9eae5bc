package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/iamthegreatdestroyer/hyperbox/internal/stats"
	"github.com/iamthegreatdestroyer/hyperbox/internal/version"
)

// SystemSeriesResponse carries the bounded system-wide series
type SystemSeriesResponse struct {
	Points []stats.SystemPoint `json:"points"`
}

// ContainerSeriesResponse carries the bounded series for one container
type ContainerSeriesResponse struct {
	ID     string              `json:"id"`
	Points []stats.EntityPoint `json:"points"`
}

// SnapshotsResponse carries the latest per-container snapshot map
type SnapshotsResponse struct {
	Containers map[string]stats.Snapshot `json:"containers"`
}

// StreamStatusResponse reports the polling lifecycle state
type StreamStatusResponse struct {
	Streaming bool `json:"streaming"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, version.Get())
}

func (s *Server) handleSystemSeries(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, SystemSeriesResponse{Points: s.stats.SystemSeries()})
}

// handleSeriesContainers lists the container IDs with a retained series
func (s *Server) handleSeriesContainers(w http.ResponseWriter, r *http.Request) {
	ids := s.stats.EntityIDs()
	s.writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

// handleContainerSeries returns the series for one container. Unknown IDs
// return an empty series, not an error.
func (s *Server) handleContainerSeries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.writeJSON(w, http.StatusOK, ContainerSeriesResponse{
		ID:     id,
		Points: s.stats.EntitySeries(id),
	})
}

func (s *Server) handleLatestSnapshots(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, SnapshotsResponse{Containers: s.stats.Latest()})
}

func (s *Server) handlePressure(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.stats.Pressure())
}

func (s *Server) handleStreamStart(w http.ResponseWriter, r *http.Request) {
	s.stats.Start()
	s.writeJSON(w, http.StatusOK, StreamStatusResponse{Streaming: s.stats.Streaming()})
}

func (s *Server) handleStreamStop(w http.ResponseWriter, r *http.Request) {
	s.stats.Stop()
	s.writeJSON(w, http.StatusOK, StreamStatusResponse{Streaming: s.stats.Streaming()})
}

func (s *Server) handleStreamStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, StreamStatusResponse{Streaming: s.stats.Streaming()})
}

func (s *Server) handleStreamWS(w http.ResponseWriter, r *http.Request) {
	s.wsHub.ServeWS(w, r)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}
