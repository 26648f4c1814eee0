package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/map-engine/internal/storage"
	"github.com/jwebster45206/map-engine/pkg/viewport"
)

// ViewBoxHandler persists the camera window per session so a reopened map
// comes back where the player left it.
// Routes:
// GET /viewbox/{session} - Read the saved camera window
// PUT /viewbox/{session} - Save the camera window
type ViewBoxHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewViewBoxHandler(s storage.Storage, logger *slog.Logger) *ViewBoxHandler {
	return &ViewBoxHandler{
		storage: s,
		logger:  logger,
	}
}

func (h *ViewBoxHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	idStr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/viewbox"), "/")
	if idStr == "" {
		writeError(w, h.logger, http.StatusBadRequest, "Session ID is required")
		return
	}
	sessionID, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", idStr, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleRead(w, r, sessionID)
	case http.MethodPut:
		h.handleWrite(w, r, sessionID)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *ViewBoxHandler) handleRead(w http.ResponseWriter, r *http.Request, sessionID uuid.UUID) {
	vb, err := h.storage.LoadViewBox(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("Failed to load viewbox", "uuid", sessionID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load viewbox")
		return
	}
	if vb == nil {
		writeError(w, h.logger, http.StatusNotFound, "No viewbox saved for session")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, vb)
}

func (h *ViewBoxHandler) handleWrite(w http.ResponseWriter, r *http.Request, sessionID uuid.UUID) {
	var vb viewport.ViewBox
	if err := json.NewDecoder(r.Body).Decode(&vb); err != nil {
		h.logger.Warn("Invalid viewbox body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if vb.Width <= 0 || vb.Height <= 0 {
		writeError(w, h.logger, http.StatusBadRequest, "ViewBox size must be positive")
		return
	}

	if err := h.storage.SaveViewBox(r.Context(), sessionID, vb); err != nil {
		h.logger.Error("Failed to save viewbox", "uuid", sessionID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save viewbox")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, vb)
}
