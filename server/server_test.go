package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridroute/astar"
	"github.com/katalvlaran/gridroute/gridgraph"
	"github.com/katalvlaran/gridroute/server"
	"github.com/katalvlaran/gridroute/snapshot"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newServer serves a 3×3 unit grid whose center cell holds every point.
func newServer(t *testing.T, opts ...server.Option) (*server.Server, *snapshot.Store) {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	var pts []gridgraph.Point
	for i := 0; i < 9; i++ {
		pts = append(pts, gridgraph.Point{X: 1.5, Y: 1.5})
	}
	ds := gridgraph.Dataset{BBox: gridgraph.BBox{MaxX: 3, MaxY: 3}, Points: pts}
	snap, err := snapshot.Rebuild(ds, snapshot.Config{CellSize: 1, Threshold: 0.5}, snapshot.WithLogger(log))
	require.NoError(t, err)

	store := snapshot.NewStore(snap)
	srv, err := server.New(store, append([]server.Option{server.WithLogger(log)}, opts...)...)
	require.NoError(t, err)
	return srv, store
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&v))
	return v
}

func TestNew_EmptyStore(t *testing.T) {
	_, err := server.New(nil)
	assert.ErrorIs(t, err, server.ErrNoSnapshot)
	_, err = server.New(snapshot.NewStore(nil))
	assert.ErrorIs(t, err, server.ErrNoSnapshot)
}

func TestGetGrid(t *testing.T) {
	srv, _ := newServer(t)
	w := do(t, srv.Handler(), http.MethodGet, "/v1/grid", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	got := decode[server.GridResponse](t, w)
	assert.Equal(t, 3, got.Cols)
	assert.Equal(t, 9, got.Sum)
	assert.Equal(t, 1, got.BlockedCells)
	assert.Equal(t, 0.5, got.Threshold)
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv, _ := newServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestBlocked(t *testing.T) {
	srv, _ := newServer(t)
	w := do(t, srv.Handler(), http.MethodGet, "/v1/grid/blocked", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[server.BlockedResponse](t, w)
	assert.Equal(t, []gridgraph.CellID{{Col: 1, Row: 1}}, got.Cells)
	assert.Empty(t, got.InvalidNodes)
}

func TestRoute(t *testing.T) {
	srv, _ := newServer(t)
	w := do(t, srv.Handler(), http.MethodPost, "/v1/route", `{"start":{"x":1,"y":1},"end":{"x":2,"y":2}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[server.RouteResponse](t, w)
	assert.True(t, got.Found)
	assert.Equal(t, "found", got.Outcome)
	assert.InDelta(t, 2.6, got.Cost, 1e-9)
	assert.Equal(t, []gridgraph.Node{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}}, got.Nodes)
	assert.Len(t, got.Points, 3)
}

func TestRoute_NoPathIsOK(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	_, store := newServer(t)

	// A clock that jumps a minute per reading exhausts any budget at once.
	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	srv, err := server.New(store, server.WithLogger(log),
		server.WithSearchOptions(astar.WithTimeLimit(time.Second), astar.WithClock(clock)))
	require.NoError(t, err)

	w := do(t, srv.Handler(), http.MethodPost, "/v1/route", `{"start":{"x":0,"y":0},"end":{"x":3,"y":3}}`)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[server.RouteResponse](t, w)
	assert.False(t, got.Found)
	assert.Equal(t, "timeout", got.Outcome)
	assert.Empty(t, got.Nodes)
	assert.Contains(t, w.Body.String(), `"nodes":[]`)
}

func TestRoute_BadRequest(t *testing.T) {
	srv, _ := newServer(t)
	cases := []string{
		`{"start":{"x":1,"y":1}}`,
		`{"start":1}`,
		`not json`,
	}
	for _, body := range cases {
		w := do(t, srv.Handler(), http.MethodPost, "/v1/route", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "INVALID_REQUEST", decode[server.ErrorResponse](t, w).Code)
	}
}

func TestUpdateGrid_Reclassify(t *testing.T) {
	srv, store := newServer(t)
	before := store.Load()

	w := do(t, srv.Handler(), http.MethodPut, "/v1/grid", `{"threshold":1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[server.GridResponse](t, w)
	assert.Equal(t, 1.0, got.Threshold)
	assert.Zero(t, got.BlockedCells)

	after := store.Load()
	assert.NotSame(t, before, after)
	assert.Same(t, before.Grid(), after.Grid())
	assert.Equal(t, 1, before.Blocked().Len(), "published snapshots are never mutated")
}

func TestUpdateGrid_Rebuild(t *testing.T) {
	srv, store := newServer(t)
	w := do(t, srv.Handler(), http.MethodPut, "/v1/grid", `{"cell_size":0.5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[server.GridResponse](t, w)
	assert.Equal(t, 6, got.Cols)
	assert.Equal(t, 0.5, store.Load().Config().CellSize)
}

func TestUpdateGrid_Errors(t *testing.T) {
	srv, store := newServer(t)
	before := store.Load()
	cases := []struct {
		body string
		code string
	}{
		{`{}`, "INVALID_REQUEST"},
		{`{"cell_size":-1}`, "INVALID_REQUEST"},
		{`{"cell_size":1e-9}`, "INVALID_GRID"},
	}
	for _, tc := range cases {
		w := do(t, srv.Handler(), http.MethodPut, "/v1/grid", tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.body)
		assert.Equal(t, tc.code, decode[server.ErrorResponse](t, w).Code, tc.body)
	}
	assert.Same(t, before, store.Load())
}

func TestMetrics(t *testing.T) {
	srv, _ := newServer(t)
	do(t, srv.Handler(), http.MethodPost, "/v1/route", `{"start":{"x":1,"y":1},"end":{"x":2,"y":2}}`)
	do(t, srv.Handler(), http.MethodPut, "/v1/grid", `{"threshold":0.9}`)

	w := do(t, srv.Handler(), http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `gridroute_search_total{outcome="found"} 1`)
	assert.Contains(t, body, `gridroute_grid_rebuilds_total{kind="reclassify"} 1`)
	assert.Contains(t, body, "gridroute_search_duration_seconds_bucket")
	assert.Contains(t, body, "gridroute_grid_blocked_cells")
}

func TestMetrics_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	srv, _ := newServer(t, server.WithRegistry(reg))
	do(t, srv.Handler(), http.MethodPost, "/v1/route", `{"start":{"x":1,"y":1},"end":{"x":2,"y":2}}`)

	// Server metrics land on the caller's registry next to its own collectors.
	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["gridroute_search_total"])
	assert.True(t, names["go_goroutines"])

	w := do(t, srv.Handler(), http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
	assert.Contains(t, w.Body.String(), `gridroute_search_total{outcome="found"} 1`)

	// A nil registry keeps the private default.
	srv2, _ := newServer(t, server.WithRegistry(nil))
	w = do(t, srv2.Handler(), http.MethodGet, "/metrics", "")
	assert.NotContains(t, w.Body.String(), "go_goroutines")
}
