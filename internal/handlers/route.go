package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/map-engine/pkg/travel"
	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

type RouteRequest struct {
	Map               *worldmap.MapData `json:"map"`
	CurrentNodeID     string            `json:"current_node_id"`
	DestinationNodeID string            `json:"destination_node_id"`
}

// RouteResponse carries the ordered travel steps. Steps is null when no
// travel is needed or no route exists; that is a successful "no route"
// answer, not an error.
type RouteResponse struct {
	Steps []travel.Step `json:"steps"`
}

type RouteHandler struct {
	cache  *travel.Cache
	logger *slog.Logger
}

func NewRouteHandler(logger *slog.Logger) *RouteHandler {
	return &RouteHandler{
		cache:  travel.NewCache(),
		logger: logger,
	}
}

func (h *RouteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid route request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Map == nil {
		writeError(w, h.logger, http.StatusBadRequest, "Map data is required")
		return
	}
	if req.CurrentNodeID == "" || req.DestinationNodeID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "current_node_id and destination_node_id are required")
		return
	}

	data := req.Map.Sanitize(h.logger)
	steps := h.cache.FindPath(data, req.CurrentNodeID, req.DestinationNodeID)

	writeJSON(w, h.logger, http.StatusOK, RouteResponse{Steps: steps})
}
