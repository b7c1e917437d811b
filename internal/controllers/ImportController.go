package controllers

import (
	"fmt"
	"net/http"
	"scorekeeper/internal/providers"
	"scorekeeper/internal/services"
)

const maxTemplateSize = 5 << 20 // 5 MB

type ImportController struct {
	logger  providers.Logger
	service services.ImportServiceInterface
}

func NewImportController(logger providers.Logger, service services.ImportServiceInterface) *ImportController {
	return &ImportController{
		logger:  logger,
		service: service,
	}
}

func (ic *ImportController) UploadClassTemplate(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxTemplateSize)
	count, err := ic.service.ImportClassTemplate(r.Context(), body)
	if err != nil {
		writeError(w, r, ic.logger, err, map[int]string{
			http.StatusInternalServerError: "Failed to upload class template.",
		})
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Status:  statusSuccess,
		Message: fmt.Sprintf("%d entries added successfully.", count),
	})
}
