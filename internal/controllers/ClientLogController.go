package controllers

import (
	"net/http"
	"scorekeeper/internal/providers"

	json "github.com/goccy/go-json"
)

// ClientLogController stores error reports sent by the web frontend.
type ClientLogController struct {
	logger providers.Logger
}

func NewClientLogController(logger providers.Logger) *ClientLogController {
	return &ClientLogController{logger: logger}
}

func (cc *ClientLogController) LogError(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var report map[string]any
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Status: statusError, Message: "Error log must be a JSON object."})
		return
	}

	line, err := json.Marshal(report)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, messageResponse{Status: statusError, Message: "Failed to write log"})
		return
	}
	cc.logger.Errorf(providers.TypeClient, "%s", line)

	writeJSON(w, http.StatusOK, messageResponse{Status: statusSuccess, Message: "Error log received"})
}
