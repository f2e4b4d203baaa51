package httpd

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/talentshive/training-site/internal/models"
	"github.com/talentshive/training-site/internal/service"
	"github.com/talentshive/training-site/internal/validation"
)

func (h *Handler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req models.CreateApplicationRequest
	if !h.decode(w, r, &req, "Invalid application data") {
		return
	}

	application, err := h.applicationService.Submit(r.Context(), &req)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			writeValidationError(w, "Invalid application data", verrs)
			return
		}
		h.logger.Error().Err(err).Msg("Failed to submit application")
		writeError(w, http.StatusInternalServerError, "Failed to submit application")
		return
	}

	writeJSON(w, http.StatusCreated, models.ApplicationResponse{
		Message:     "Application submitted successfully",
		Application: application,
	})
	flush(w)

	h.dispatcher.ApplicationCreated(application)
}

func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := h.applicationService.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch applications")
		writeError(w, http.StatusInternalServerError, "Failed to fetch applications")
		return
	}

	writeJSON(w, http.StatusOK, applications)
}

func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateApplicationStatusRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	application, err := h.applicationService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.handleApplicationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ApplicationResponse{
		Message:     "Application status updated",
		Application: application,
	})
}

func (h *Handler) handleApplicationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "Invalid status")
	case errors.Is(err, service.ErrApplicationNotFound):
		writeError(w, http.StatusNotFound, "Application not found")
	case errors.Is(err, service.ErrStatusFinal):
		writeError(w, http.StatusConflict, "Application status can no longer be changed")
	default:
		h.logger.Error().Err(err).Msg("Application service error")
		writeError(w, http.StatusInternalServerError, "Failed to update application status")
	}
}
