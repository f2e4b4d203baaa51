package httpd

import (
	"errors"
	"net/http"

	"github.com/talentshive/training-site/internal/models"
	"github.com/talentshive/training-site/internal/validation"
)

func (h *Handler) SubmitContactMessage(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContactMessageRequest
	if !h.decode(w, r, &req, "Invalid contact data") {
		return
	}

	message, err := h.contactService.Submit(r.Context(), &req)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			writeValidationError(w, "Invalid contact data", verrs)
			return
		}
		h.logger.Error().Err(err).Msg("Failed to send contact message")
		writeError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	writeJSON(w, http.StatusCreated, models.ContactMessageResponse{
		Message:        "Contact message sent successfully",
		ContactMessage: message,
	})
	flush(w)

	h.dispatcher.ContactCreated(message)
}

func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactService.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch contact messages")
		writeError(w, http.StatusInternalServerError, "Failed to fetch contact messages")
		return
	}

	writeJSON(w, http.StatusOK, messages)
}
