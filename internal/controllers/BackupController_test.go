package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"scorekeeper/internal/apperr"
	"scorekeeper/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestCreateBackup_Success(t *testing.T) {
	bc := NewBackupController(&mockLogger{}, &mockCoordinator{createName: "backup_2026-01-01T00-00-00.json"})

	rr := httptest.NewRecorder()
	bc.CreateBackup(rr, httptest.NewRequest(http.MethodPost, "/backup", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody(t, rr)
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "Backup created successfully.", resp["message"])
	assert.Equal(t, "backup_2026-01-01T00-00-00.json", resp["filename"])
}

func TestCreateBackup_Failure(t *testing.T) {
	logger := &mockLogger{}
	bc := NewBackupController(logger, &mockCoordinator{createErr: &apperr.BackupError{Err: errors.New("disk full")}})

	rr := httptest.NewRecorder()
	bc.CreateBackup(rr, httptest.NewRequest(http.MethodPost, "/backup", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	resp := decodeBody(t, rr)
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, "Failed to create backup.", resp["message"])
	assert.Len(t, logger.errors, 1)
}

func TestListBackups(t *testing.T) {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	bc := NewBackupController(&mockLogger{}, &mockCoordinator{infos: []models.SnapshotInfo{
		{Filename: "backup_2026-01-01T00-00-00.json", CreatedAt: ts},
	}})

	rr := httptest.NewRecorder()
	bc.ListBackups(rr, httptest.NewRequest(http.MethodGet, "/backups", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody(t, rr)
	backups := resp["backups"].([]interface{})
	require.Len(t, backups, 1)
	entry := backups[0].(map[string]interface{})
	assert.Equal(t, "backup_2026-01-01T00-00-00.json", entry["filename"])
	assert.Equal(t, "2026-01-01T00:00:00Z", entry["timestamp"])
}

func TestListBackups_Empty(t *testing.T) {
	bc := NewBackupController(&mockLogger{}, &mockCoordinator{infos: []models.SnapshotInfo{}})

	rr := httptest.NewRecorder()
	bc.ListBackups(rr, httptest.NewRequest(http.MethodGet, "/backups", nil))

	assert.JSONEq(t, `{"status":"success","backups":[]}`, rr.Body.String())
}

func TestGetBackup(t *testing.T) {
	coord := &mockCoordinator{snapshot: &models.Snapshot{
		Students: []models.Document{models.NewDocument("s1", map[string]any{"name": "Ann"})},
	}}
	bc := NewBackupController(&mockLogger{}, coord)

	req := httptest.NewRequest(http.MethodGet, "/backup/backup_x.json", nil)
	req.SetPathValue("filename", "backup_x.json")
	rr := httptest.NewRecorder()
	bc.GetBackup(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "backup_x.json", coord.gotFilename)
	data := decodeBody(t, rr)["data"].(map[string]interface{})
	students := data["students"].([]interface{})
	assert.Equal(t, "s1", students[0].(map[string]interface{})["id"])
}

func TestGetBackup_NotFound(t *testing.T) {
	bc := NewBackupController(&mockLogger{}, &mockCoordinator{getErr: apperr.NotFound("backup", "nope.json")})

	req := httptest.NewRequest(http.MethodGet, "/backup/nope.json", nil)
	req.SetPathValue("filename", "nope.json")
	rr := httptest.NewRecorder()
	bc.GetBackup(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Backup not found.", decodeBody(t, rr)["message"])
}

func TestRestoreBackup(t *testing.T) {
	coord := &mockCoordinator{restoreCount: 3}
	bc := NewBackupController(&mockLogger{}, coord)

	req := httptest.NewRequest(http.MethodPost, "/restore-specific/backup_x.json", nil)
	req.SetPathValue("filename", "backup_x.json")
	rr := httptest.NewRecorder()
	bc.RestoreBackup(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody(t, rr)
	assert.Equal(t, float64(3), resp["restoredCount"])
	assert.Equal(t, "Data restored from backup_x.json successfully.", resp["message"])
	assert.Equal(t, "backup_x.json", coord.gotFilename)
}

func TestRestoreBackup_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"not found", apperr.NotFound("backup", "x"), http.StatusNotFound, "Backup not found."},
		{"partial", &apperr.PartialRestoreError{Deleted: 2, Err: errors.New("write")}, http.StatusInternalServerError, "Restore failed after existing data was deleted."},
		{"wrapped partial", fmt.Errorf("restore: %w", &apperr.PartialRestoreError{Deleted: 2, Err: errors.New("write")}), http.StatusInternalServerError, "Restore failed after existing data was deleted."},
		{"store", apperr.Store("replace", "students", errors.New("down")), http.StatusInternalServerError, "Failed to restore data from backup."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bc := NewBackupController(&mockLogger{}, &mockCoordinator{restoreErr: tt.err})
			req := httptest.NewRequest(http.MethodPost, "/restore-specific/x", nil)
			req.SetPathValue("filename", "x")
			rr := httptest.NewRecorder()
			bc.RestoreBackup(rr, req)

			assert.Equal(t, tt.code, rr.Code)
			assert.Equal(t, tt.msg, decodeBody(t, rr)["message"])
		})
	}
}
