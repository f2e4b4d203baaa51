package httpd

import "net/http"

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Get(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch stats")
		writeError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
