package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"scorekeeper/internal/apperr"
	"scorekeeper/internal/backup"
	"scorekeeper/internal/models"
	"scorekeeper/internal/providers"
)

type BackupController struct {
	logger      providers.Logger
	coordinator backup.CoordinatorInterface
}

func NewBackupController(logger providers.Logger, coordinator backup.CoordinatorInterface) *BackupController {
	return &BackupController{
		logger:      logger,
		coordinator: coordinator,
	}
}

type createBackupResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

type listBackupsResponse struct {
	Status  string                `json:"status"`
	Backups []models.SnapshotInfo `json:"backups"`
}

type getBackupResponse struct {
	Status string           `json:"status"`
	Data   *models.Snapshot `json:"data"`
}

type restoreResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	RestoredCount int    `json:"restoredCount"`
}

func (bc *BackupController) CreateBackup(w http.ResponseWriter, r *http.Request) {
	name, err := bc.coordinator.CreateBackup(r.Context())
	if err != nil {
		writeError(w, r, bc.logger, err, map[int]string{
			http.StatusInternalServerError: "Failed to create backup.",
		})
		return
	}

	writeJSON(w, http.StatusOK, createBackupResponse{
		Status:   statusSuccess,
		Message:  "Backup created successfully.",
		Filename: name,
	})
}

func (bc *BackupController) ListBackups(w http.ResponseWriter, r *http.Request) {
	infos, err := bc.coordinator.List()
	if err != nil {
		writeError(w, r, bc.logger, err, map[int]string{
			http.StatusInternalServerError: "Failed to retrieve backup list.",
		})
		return
	}

	writeJSON(w, http.StatusOK, listBackupsResponse{Status: statusSuccess, Backups: infos})
}

func (bc *BackupController) GetBackup(w http.ResponseWriter, r *http.Request) {
	snapshot, err := bc.coordinator.Get(r.PathValue("filename"))
	if err != nil {
		writeError(w, r, bc.logger, err, map[int]string{
			http.StatusNotFound:            "Backup not found.",
			http.StatusInternalServerError: "Failed to retrieve backup data.",
		})
		return
	}

	writeJSON(w, http.StatusOK, getBackupResponse{Status: statusSuccess, Data: snapshot})
}

func (bc *BackupController) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	count, err := bc.coordinator.Restore(r.Context(), filename)
	if err != nil {
		failed := "Failed to restore data from backup."
		var partial *apperr.PartialRestoreError
		if errors.As(err, &partial) {
			failed = "Restore failed after existing data was deleted."
		}
		writeError(w, r, bc.logger, err, map[int]string{
			http.StatusNotFound:            "Backup not found.",
			http.StatusInternalServerError: failed,
		})
		return
	}

	writeJSON(w, http.StatusOK, restoreResponse{
		Status:        statusSuccess,
		Message:       fmt.Sprintf("Data restored from %s successfully.", filename),
		RestoredCount: count,
	})
}
