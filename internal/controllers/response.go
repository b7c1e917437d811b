package controllers

import (
	"errors"
	"net/http"
	"scorekeeper/internal/apperr"
	"scorekeeper/internal/providers"

	json "github.com/goccy/go-json"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type messageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(gson)
}

// writeError picks the status from the error type. messages overrides the
// client-facing text per status; a validation error otherwise speaks for
// itself and anything else gets the status text.
func writeError(w http.ResponseWriter, r *http.Request, logger providers.Logger, err error, messages map[int]string) {
	code := apperr.HTTPStatus(err)

	msg, ok := messages[code]
	if !ok {
		var ve *apperr.ValidationError
		if errors.As(err, &ve) {
			msg = ve.Message
		} else {
			msg = http.StatusText(code)
		}
	}

	logType := providers.GetLogTypeByRequestType(r.Method)
	if code >= http.StatusInternalServerError {
		logger.Errorf(logType, "%s %s: %s", r.Method, r.URL.Path, err)
	} else {
		logger.Infof(logType, "%s %s: %s", r.Method, r.URL.Path, err)
	}

	writeJSON(w, code, messageResponse{Status: statusError, Message: msg})
}
