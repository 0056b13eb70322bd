package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/blockworld/internal/entity"
	"github.com/annel0/blockworld/internal/sim"
)

type staticSource struct {
	snap sim.Snapshot
}

func (s staticSource) Snapshot() sim.Snapshot { return s.snap }

func newTestServer(t *testing.T) *DebugServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	src := staticSource{snap: sim.Snapshot{
		SessionID: "test-session",
		Tick:      42,
		Pose:      entity.Pose{Position: mgl64.Vec3{1, 2.3, -4}, Grounded: true},
		Aim:       sim.AimView{Hit: true, Block: "stone", Distance: 2.5},
		State:     "aiming",
		Selected:  "dirt",
		Cells:     100,
	}}
	ds, err := NewDebugServer(Config{Source: src, Registerer: reg, Gatherer: reg})
	require.NoError(t, err)
	return ds
}

func get(t *testing.T, ds *DebugServer, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	ds.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewDebugServerRequiresSource(t *testing.T) {
	_, err := NewDebugServer(Config{})
	assert.Error(t, err)
}

func TestPoseEndpoint(t *testing.T) {
	ds := newTestServer(t)
	rec := get(t, ds, "/api/pose")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PoseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(42), resp.Tick)
	assert.Equal(t, "aiming", resp.State)
	assert.True(t, resp.Pose.Grounded)
	assert.InDelta(t, 2.3, resp.Pose.Position.Y(), 1e-9)
	assert.Equal(t, "stone", resp.Aim.Block)
}

func TestWorldEndpoint(t *testing.T) {
	ds := newTestServer(t)
	rec := get(t, ds, "/api/world")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap sim.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "test-session", snap.SessionID)
	assert.Equal(t, "dirt", snap.Selected)
	assert.Equal(t, 100, snap.Cells)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthEndpoint(t *testing.T) {
	ds := newTestServer(t)
	rec := get(t, ds, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test-session", body["session"])
	assert.Contains(t, body, "process")
}

func TestMetricsEndpointExposesHTTPMetrics(t *testing.T) {
	ds := newTestServer(t)
	get(t, ds, "/api/pose")
	get(t, ds, "/nope")

	rec := get(t, ds, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "debug_api_http_request_duration_seconds"), "гистограмма запросов должна экспортироваться")
	assert.Contains(t, body, `debug_api_http_request_errors_total{method="GET",path="unmatched",status="404"} 1`)
}

func TestOptionsPreflight(t *testing.T) {
	ds := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/pose", nil)
	ds.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5с", formatUptime(5*time.Second))
	assert.Equal(t, "2м 3с", formatUptime(2*time.Minute+3*time.Second))
	assert.Equal(t, "1ч 0м 7с", formatUptime(time.Hour+7*time.Second))
	assert.Equal(t, "1д 1ч 0м 0с", formatUptime(25*time.Hour))
}

func TestInflightGaugeSurvivesPanic(t *testing.T) {
	reg := prometheus.NewRegistry()
	ds, err := NewDebugServer(Config{Source: staticSource{}, Registerer: reg, Gatherer: reg})
	require.NoError(t, err)
	ds.router.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := get(t, ds, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	families, err := reg.Gather()
	require.NoError(t, err)
	var inflight *float64
	for _, mf := range families {
		if mf.GetName() == "debug_api_http_requests_inflight" {
			v := mf.GetMetric()[0].GetGauge().GetValue()
			inflight = &v
		}
	}
	require.NotNil(t, inflight)
	assert.Zero(t, *inflight, "паника в обработчике не оставляет запрос висящим")
}
