package httpd

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/talentshive/training-site/internal/service"
)

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.catalogService.ListCourses(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch courses")
		writeError(w, http.StatusInternalServerError, "Failed to fetch courses")
		return
	}

	writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.catalogService.GetCourse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleCatalogError(w, err, "Failed to fetch course")
		return
	}

	writeJSON(w, http.StatusOK, course)
}

func (h *Handler) ListInstructors(w http.ResponseWriter, r *http.Request) {
	instructors, err := h.catalogService.ListInstructors(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch instructors")
		writeError(w, http.StatusInternalServerError, "Failed to fetch instructors")
		return
	}

	writeJSON(w, http.StatusOK, instructors)
}

func (h *Handler) GetInstructor(w http.ResponseWriter, r *http.Request) {
	instructor, err := h.catalogService.GetInstructor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleCatalogError(w, err, "Failed to fetch instructor")
		return
	}

	writeJSON(w, http.StatusOK, instructor)
}

func (h *Handler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.catalogService.ListTestimonials(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch testimonials")
		writeError(w, http.StatusInternalServerError, "Failed to fetch testimonials")
		return
	}

	writeJSON(w, http.StatusOK, testimonials)
}

func (h *Handler) ListTestimonialsByCourse(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.catalogService.ListTestimonialsByCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch testimonials for course")
		writeError(w, http.StatusInternalServerError, "Failed to fetch testimonials for course")
		return
	}

	writeJSON(w, http.StatusOK, testimonials)
}

func (h *Handler) handleCatalogError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		writeError(w, http.StatusNotFound, "Course not found")
	case errors.Is(err, service.ErrInstructorNotFound):
		writeError(w, http.StatusNotFound, "Instructor not found")
	default:
		h.logger.Error().Err(err).Msg("Catalog service error")
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
