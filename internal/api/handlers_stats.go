package api

import (
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"outline":     s.stats.Snapshot(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
