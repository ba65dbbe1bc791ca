package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-booking/internal/cache"
	"ms-booking/internal/models"
)

type listSource struct {
	events []models.Event
}

func (s *listSource) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.events, nil
}

func newCatalogRouter(t *testing.T, events []models.Event) *mux.Router {
	t.Helper()
	eventCache := cache.New(&listSource{events: events})
	require.NoError(t, eventCache.Load(context.Background()))

	handler := NewEventHandler(eventCache)
	router := mux.NewRouter()
	router.HandleFunc("/events", handler.ListEvents).Methods("GET")
	router.HandleFunc("/events/{eventId}", handler.GetEvent).Methods("GET")
	return router
}

func TestListEvents(t *testing.T) {
	router := newCatalogRouter(t, []models.Event{
		{ID: "ev-1", Title: "Поход", Price: 1000, StartDate: "2026-07-01"},
		{ID: "ev-2", Title: "Сплав", Price: 2000, StartDate: "2026-07-15"},
	})

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Events []models.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "ev-1", resp.Events[0].ID)
	assert.NotNil(t, resp.Events[0].PriceChild, "catalog events carry derived prices")
}

func TestGetEvent(t *testing.T) {
	router := newCatalogRouter(t, []models.Event{
		{ID: "ev-1", Title: "Поход", Price: 1000},
	})

	req := httptest.NewRequest(http.MethodGet, "/events/ev-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var ev models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ev))
	assert.Equal(t, "Поход", ev.Title)
}

func TestGetEvent_NotFound(t *testing.T) {
	router := newCatalogRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/events/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
