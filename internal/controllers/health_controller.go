package controllers

import (
	"fmt"
	"net/http"
	"scorekeeper/internal/backup"
	"time"
)

type HealthController struct {
	coordinator backup.CoordinatorInterface
	startTime   time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Backups       int     `json:"backups"`
	LastBackup    string  `json:"last_backup,omitempty"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
	}

	infos, err := hc.coordinator.List()
	if err != nil {
		resp.Status = "degraded"
	} else {
		resp.Backups = len(infos)
		if len(infos) > 0 {
			resp.LastBackup = infos[0].Filename
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(coordinator backup.CoordinatorInterface) *HealthController {
	return &HealthController{
		coordinator: coordinator,
		startTime:   time.Now(),
	}
}
