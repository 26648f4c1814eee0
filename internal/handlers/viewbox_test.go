package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/map-engine/internal/storage"
	"github.com/jwebster45206/map-engine/pkg/viewport"
)

func TestViewBoxHandler_PutThenGet(t *testing.T) {
	h := NewViewBoxHandler(storage.NewMockStorage(), testLogger())
	sessionID := uuid.New()
	vb := viewport.ViewBox{MinX: -10, MinY: 20, Width: 500, Height: 400}

	body, _ := json.Marshal(vb)
	r := httptest.NewRequest(http.MethodPut, "/v1/viewbox/"+sessionID.String(), bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	r = httptest.NewRequest(http.MethodGet, "/v1/viewbox/"+sessionID.String(), nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	var got viewport.ViewBox
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, vb, got)
}

func TestViewBoxHandler_GetMissing(t *testing.T) {
	h := NewViewBoxHandler(storage.NewMockStorage(), testLogger())

	r := httptest.NewRequest(http.MethodGet, "/v1/viewbox/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestViewBoxHandler_BadRequests(t *testing.T) {
	h := NewViewBoxHandler(storage.NewMockStorage(), testLogger())

	// No session id
	r := httptest.NewRequest(http.MethodGet, "/v1/viewbox", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed session id
	r = httptest.NewRequest(http.MethodGet, "/v1/viewbox/not-a-uuid", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Zero-size viewbox
	body, _ := json.Marshal(viewport.ViewBox{Width: 0, Height: 100})
	r = httptest.NewRequest(http.MethodPut, "/v1/viewbox/"+uuid.NewString(), bytes.NewReader(body))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unsupported method
	r = httptest.NewRequest(http.MethodDelete, "/v1/viewbox/"+uuid.NewString(), nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
