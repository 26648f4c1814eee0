package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/map-engine/internal/storage"
	"github.com/jwebster45206/map-engine/pkg/label"
	"github.com/jwebster45206/map-engine/pkg/layout"
	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

// LayoutRequest carries a map snapshot and optional parameter overrides.
type LayoutRequest struct {
	Map    *worldmap.MapData `json:"map"`
	Config *layout.Config    `json:"config,omitempty"`
}

// LayoutResponse returns the positioned snapshot, the per-node label
// offsets derived from it, and the effective (clamped) config.
type LayoutResponse struct {
	Nodes        []worldmap.MapNode `json:"nodes"`
	LabelOffsets map[string]float64 `json:"label_offsets"`
	Config       layout.Config      `json:"config"`
}

type LayoutHandler struct {
	defaults layout.Config
	storage  storage.Storage
	logger   *slog.Logger
}

func NewLayoutHandler(defaults layout.Config, s storage.Storage, logger *slog.Logger) *LayoutHandler {
	return &LayoutHandler{
		defaults: defaults,
		storage:  s,
		logger:   logger,
	}
}

// ServeHTTP lays out a posted map snapshot. Bad records in the snapshot
// are sanitized away rather than rejected; only an unreadable body is a
// client error.
func (h *LayoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req LayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid layout request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Map == nil {
		writeError(w, h.logger, http.StatusBadRequest, "Map data is required")
		return
	}

	cfg := h.defaults
	if req.Config != nil {
		cfg = *req.Config
	}
	cfg = cfg.Clamped()

	data := req.Map.Sanitize(h.logger)
	version := data.Version()

	// Serve the cached snapshot when content and config are unchanged.
	if h.storage != nil {
		if cached, err := h.storage.LoadLayout(r.Context(), version, cfg.Hash()); err == nil && cached != nil {
			writeJSON(w, h.logger, http.StatusOK, LayoutResponse{
				Nodes:        cached,
				LabelOffsets: label.ResolveOffsets(cached, data, cfg),
				Config:       cfg,
			})
			return
		}
	}

	nodes := layout.Layout(data, cfg)
	offsets := label.ResolveOffsets(nodes, data, cfg)

	if h.storage != nil {
		// Cache failures degrade to recomputation; they never fail the request.
		if err := h.storage.SaveLayout(context.WithoutCancel(r.Context()), version, cfg.Hash(), nodes); err != nil {
			h.logger.Warn("Failed to cache layout snapshot", "error", err)
		}
	}

	writeJSON(w, h.logger, http.StatusOK, LayoutResponse{
		Nodes:        nodes,
		LabelOffsets: offsets,
		Config:       cfg,
	})
}
