package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"scorekeeper/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_ReturnsOK(t *testing.T) {
	coord := &mockCoordinator{infos: []models.SnapshotInfo{
		{Filename: "backup_2026-01-02T00-00-00.json"},
		{Filename: "backup_2026-01-01T00-00-00.json"},
	}}
	hc := NewHealthController(coord)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "uptime")
	assert.Contains(t, resp, "uptime_seconds")
	assert.Equal(t, float64(2), resp["backups"])
	assert.Equal(t, "backup_2026-01-02T00-00-00.json", resp["last_backup"])
}

func TestHealth_NoBackupsYet(t *testing.T) {
	hc := NewHealthController(&mockCoordinator{})

	rr := httptest.NewRecorder()
	hc.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, float64(0), resp["backups"])
	assert.NotContains(t, resp, "last_backup")
}

func TestHealth_DegradedWhenBackupsUnreadable(t *testing.T) {
	hc := NewHealthController(&mockCoordinator{listErr: errors.New("disk")})

	rr := httptest.NewRecorder()
	hc.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(&mockCoordinator{})

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "0h0m0s"},
		{"one minute", 60 * time.Second, "0h1m0s"},
		{"one hour", time.Hour, "1h0m0s"},
		{"mixed", time.Hour + time.Minute + time.Second, "1h1m1s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.duration))
		})
	}
}
