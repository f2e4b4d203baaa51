package httpd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentshive/training-site/internal/middleware"
	"github.com/talentshive/training-site/internal/models"
	"github.com/talentshive/training-site/internal/repository"
	"github.com/talentshive/training-site/internal/service"
	"github.com/talentshive/training-site/internal/validation"
)

type recordingDispatcher struct {
	mu           sync.Mutex
	applications []string
	contacts     []string
}

func (d *recordingDispatcher) ApplicationCreated(app *models.Application) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.applications = append(d.applications, app.ID)
}

func (d *recordingDispatcher) ContactCreated(msg *models.ContactMessage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.contacts = append(d.contacts, msg.ID)
}

type testServer struct {
	router     chi.Router
	dispatcher *recordingDispatcher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repos := repository.NewMemoryRepositories()
	require.NoError(t, repository.Seed(context.Background(), repos, time.Now()))

	v := validation.New()
	log := zerolog.Nop()
	dispatcher := &recordingDispatcher{}

	h := NewHandler(
		service.NewCatalogService(repos, v, log),
		service.NewApplicationService(repos.Applications, v, log),
		service.NewContactService(repos.ContactMessages, v, log),
		service.NewStatsService(repos),
		dispatcher,
		v,
		log,
	)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	h.RegisterRoutes(router)

	return &testServer{router: router, dispatcher: dispatcher}
}

func (s *testServer) do(t *testing.T, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func applicationPayload(overrides map[string]interface{}) string {
	payload := map[string]interface{}{
		"firstName":         "Ada",
		"lastName":          "Obi",
		"email":             "ada@example.com",
		"phone":             "08012345678",
		"course":            "cybersecurity",
		"plan":              "standard",
		"startDate":         "2025-01-15",
		"experience":        "beginner",
		"motivation":        strings.Repeat("m", 50),
		"previousEducation": "BSc Physics",
		"expectations":      strings.Repeat("e", 30),
	}
	for k, v := range overrides {
		if v == nil {
			delete(payload, k)
			continue
		}
		payload[k] = v
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

type errorBody struct {
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors"`
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCourseEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/courses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var courses []map[string]interface{}
	decodeBody(t, rec, &courses)
	require.Len(t, courses, 3)
	assert.Equal(t, "cyber-001", courses[0]["id"])
	assert.Contains(t, courses[0], "standardPrice")
	assert.Contains(t, courses[0], "maxStudents")

	again := s.do(t, http.MethodGet, "/api/courses", "")
	assert.Equal(t, rec.Body.Bytes(), again.Body.Bytes())

	rec = s.do(t, http.MethodGet, "/api/courses/webdev-001", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var course models.Course
	decodeBody(t, rec, &course)
	assert.Equal(t, "webdev-001", course.ID)

	rec = s.do(t, http.MethodGet, "/api/courses/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, "Course not found", body.Message)
}

func TestInstructorEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/instructors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var instructors []models.Instructor
	decodeBody(t, rec, &instructors)
	assert.Len(t, instructors, 3)

	rec = s.do(t, http.MethodGet, "/api/instructors/instructor-002", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/instructors/instructor-999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, "Instructor not found", body.Message)
}

func TestTestimonialEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/testimonials", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.Testimonial
	decodeBody(t, rec, &all)
	require.Len(t, all, 3)

	courseID := all[0].CourseID
	rec = s.do(t, http.MethodGet, "/api/testimonials/course/"+courseID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var filtered []models.Testimonial
	decodeBody(t, rec, &filtered)
	require.NotEmpty(t, filtered)
	for _, tm := range filtered {
		assert.Equal(t, courseID, tm.CourseID)
	}

	rec = s.do(t, http.MethodGet, "/api/testimonials/course/nonexistent", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestSubmitApplication(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/applications", applicationPayload(map[string]interface{}{
		"motivation": strings.Repeat("m", 49),
	}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var invalid errorBody
	decodeBody(t, rec, &invalid)
	assert.Equal(t, "Invalid application data", invalid.Message)
	require.Len(t, invalid.Errors, 1)
	assert.Equal(t, "motivation", invalid.Errors[0].Field)
	assert.Empty(t, s.dispatcher.applications)

	rec = s.do(t, http.MethodPost, "/api/applications", applicationPayload(map[string]interface{}{
		"id":        "client-chosen",
		"status":    "approved",
		"createdAt": "1999-01-01T00:00:00Z",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.ApplicationResponse
	decodeBody(t, rec, &created)
	assert.Equal(t, "Application submitted successfully", created.Message)
	require.NotNil(t, created.Application)
	assert.NotEqual(t, "client-chosen", created.Application.ID)
	assert.Equal(t, "pending", created.Application.Status)
	assert.WithinDuration(t, time.Now(), created.Application.CreatedAt, time.Minute)
	assert.Equal(t, []string{created.Application.ID}, s.dispatcher.applications)

	rec = s.do(t, http.MethodGet, "/api/applications", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Application
	decodeBody(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, created.Application.ID, list[0].ID)
}

func TestSubmitApplicationListsEveryViolation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/applications", applicationPayload(map[string]interface{}{
		"firstName":    "A",
		"email":        "not-an-email",
		"phone":        12345,
		"expectations": nil,
	}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	decodeBody(t, rec, &body)
	fields := make([]string, 0, len(body.Errors))
	for _, fe := range body.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"firstName", "email", "phone", "expectations"}, fields)
}

func TestSubmitApplicationMalformedBody(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{"{not json", "[]", ""} {
		rec := s.do(t, http.MethodPost, "/api/applications", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		var eb errorBody
		decodeBody(t, rec, &eb)
		assert.Equal(t, "Invalid request body", eb.Message)
	}
}

func TestUpdateApplicationStatus(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/applications", applicationPayload(nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.ApplicationResponse
	decodeBody(t, rec, &created)
	id := created.Application.ID

	tests := []struct {
		name       string
		id         string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"value outside enum", id, `{"status":"archived"}`, http.StatusBadRequest, "Invalid status"},
		{"missing status", id, `{}`, http.StatusBadRequest, "Invalid status"},
		{"malformed body", id, `{`, http.StatusBadRequest, "Invalid request body"},
		{"unknown id", "missing", `{"status":"approved"}`, http.StatusNotFound, "Application not found"},
		{"approve", id, `{"status":"approved"}`, http.StatusOK, "Application status updated"},
		{"approve again", id, `{"status":"approved"}`, http.StatusOK, "Application status updated"},
		{"reject after approval", id, `{"status":"rejected"}`, http.StatusConflict, "Application status can no longer be changed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPatch, "/api/applications/"+tt.id+"/status", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]interface{}
			decodeBody(t, rec, &body)
			assert.Equal(t, tt.wantMsg, body["message"])
			if tt.wantStatus == http.StatusOK {
				app := body["application"].(map[string]interface{})
				assert.Equal(t, "approved", app["status"])
			}
		})
	}
}

func TestSubmitContactMessage(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/contact", `{"firstName":"Ngozi","lastName":"Eze","email":"ngozi@example.com","message":"Hello"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.ContactMessageResponse
	decodeBody(t, rec, &created)
	assert.Equal(t, "Contact message sent successfully", created.Message)
	require.NotNil(t, created.ContactMessage)
	assert.Equal(t, "new", created.ContactMessage.Status)
	assert.Nil(t, created.ContactMessage.Phone)
	assert.Equal(t, []string{created.ContactMessage.ID}, s.dispatcher.contacts)

	rec = s.do(t, http.MethodPost, "/api/contact", `{"firstName":"N","email":"bad"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var invalid errorBody
	decodeBody(t, rec, &invalid)
	assert.Equal(t, "Invalid contact data", invalid.Message)
	assert.Len(t, invalid.Errors, 4)

	rec = s.do(t, http.MethodGet, "/api/contact", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.ContactMessage
	decodeBody(t, rec, &list)
	assert.Len(t, list, 1)
}

func TestStatsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats models.Stats
	decodeBody(t, rec, &stats)
	assert.Equal(t, 9500, stats.StudentsEnrolled)
	assert.Equal(t, 3, stats.CoursesOffered)
	assert.Equal(t, 3, stats.InstructorsCount)
	assert.Equal(t, 95, stats.SuccessRate)
	assert.Equal(t, 0, stats.TotalApplications)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/applications", applicationPayload(nil)).Code)
	}

	rec = s.do(t, http.MethodGet, "/api/stats", "")
	decodeBody(t, rec, &stats)
	assert.Equal(t, 9502, stats.StudentsEnrolled)
	assert.Equal(t, 2, stats.PendingApplications)
}

func TestConcurrentSubmissions(t *testing.T) {
	s := newTestServer(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/applications", bytes.NewBufferString(applicationPayload(nil)))
			rec := httptest.NewRecorder()
			s.router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusCreated, rec.Code)
		}()
	}
	wg.Wait()

	rec := s.do(t, http.MethodGet, "/api/applications", "")
	var list []models.Application
	decodeBody(t, rec, &list)
	assert.Len(t, list, 20)

	ids := make(map[string]struct{}, len(list))
	for _, a := range list {
		ids[a.ID] = struct{}{}
	}
	assert.Len(t, ids, 20)
}
