package httpd

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/talentshive/training-site/internal/notification"
	"github.com/talentshive/training-site/internal/service"
	"github.com/talentshive/training-site/internal/validation"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	catalogService     service.CatalogService
	applicationService service.ApplicationService
	contactService     service.ContactService
	statsService       service.StatsService
	dispatcher         notification.Dispatcher
	validator          *validation.Validator
	logger             zerolog.Logger
}

func NewHandler(
	catalogService service.CatalogService,
	applicationService service.ApplicationService,
	contactService service.ContactService,
	statsService service.StatsService,
	dispatcher notification.Dispatcher,
	validator *validation.Validator,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		catalogService:     catalogService,
		applicationService: applicationService,
		contactService:     contactService,
		statsService:       statsService,
		dispatcher:         dispatcher,
		validator:          validator,
		logger:             logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api", func(api chi.Router) {
		api.Route("/courses", func(r chi.Router) {
			r.Get("/", h.ListCourses)
			r.Get("/{id}", h.GetCourse)
		})

		api.Route("/instructors", func(r chi.Router) {
			r.Get("/", h.ListInstructors)
			r.Get("/{id}", h.GetInstructor)
		})

		api.Route("/testimonials", func(r chi.Router) {
			r.Get("/", h.ListTestimonials)
			r.Get("/course/{courseId}", h.ListTestimonialsByCourse)
		})

		api.Route("/applications", func(r chi.Router) {
			r.Post("/", h.SubmitApplication)
			r.Get("/", h.ListApplications)
			r.Patch("/{id}/status", h.UpdateApplicationStatus)
		})

		api.Route("/contact", func(r chi.Router) {
			r.Post("/", h.SubmitContactMessage)
			r.Get("/", h.ListContactMessages)
		})

		api.Get("/stats", h.GetStats)
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "training-site",
		"timestamp": time.Now().UTC(),
	}

	writeJSON(w, http.StatusOK, response)
}

// decode reads the request body into dst. It writes the 400 response itself and
// reports false when the body is malformed or violates dst's schema.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}, invalidMessage string) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	err = h.validator.Decode(body, dst)
	if err == nil {
		return true
	}

	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		writeValidationError(w, invalidMessage, verrs)
	case errors.Is(err, validation.ErrInvalidBody):
		writeError(w, http.StatusBadRequest, "Invalid request body")
	default:
		h.logger.Error().Err(err).Msg("Failed to decode request body")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"message": message,
	})
}

func writeValidationError(w http.ResponseWriter, message string, errs validation.Errors) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"message": message,
		"errors":  errs,
	})
}

// flush pushes the written response to the client before any follow-up work runs
// on the handler goroutine.
func flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
