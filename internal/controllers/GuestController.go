package controllers

import (
	"net/http"
	"scorekeeper/internal/models"
	"scorekeeper/internal/providers"
	"scorekeeper/internal/services"
	"strings"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type GuestController struct {
	logger  providers.Logger
	service services.GuestLinkServiceInterface
}

func NewGuestController(logger providers.Logger, service services.GuestLinkServiceInterface) *GuestController {
	return &GuestController{
		logger:  logger,
		service: service,
	}
}

type generateLinkRequest struct {
	ClassID string `json:"classId"`
}

type generateLinkResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

type guestViewResponse struct {
	Status  string                    `json:"status"`
	ClassID string                    `json:"classId"`
	Data    []models.GuestStudentView `json:"data"`
}

// requestOrigin rebuilds scheme://host as the client sees it.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	host := r.Host
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return scheme + "://" + host
}

func (gc *GuestController) GenerateLink(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload generateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Status: statusError, Message: "Request body must be JSON."})
		return
	}

	link, reused, err := gc.service.GenerateLink(r.Context(), requestOrigin(r), strings.TrimSpace(payload.ClassID))
	if err != nil {
		writeError(w, r, gc.logger, err, map[int]string{
			http.StatusInternalServerError: "Failed to generate guest link.",
		})
		return
	}

	msg := "Guest link generated."
	if reused {
		msg = "Existing valid link found."
	}
	writeJSON(w, http.StatusOK, generateLinkResponse{Status: statusSuccess, Message: msg, Link: link})
}

func (gc *GuestController) ViewData(w http.ResponseWriter, r *http.Request) {
	view, err := gc.service.ResolveToken(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, r, gc.logger, err, map[int]string{
			http.StatusNotFound:            "Invalid or expired guest link.",
			http.StatusUnauthorized:        "Guest link has expired.",
			http.StatusInternalServerError: "Failed to load guest data.",
		})
		return
	}

	writeJSON(w, http.StatusOK, guestViewResponse{Status: statusSuccess, ClassID: view.ClassID, Data: view.Data})
}
