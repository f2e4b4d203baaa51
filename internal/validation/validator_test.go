package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentshive/training-site/internal/models"
)

func validApplication() map[string]interface{} {
	return map[string]interface{}{
		"firstName":         "Ada",
		"lastName":          "Obi",
		"email":             "ada@example.com",
		"phone":             "+2348012345678",
		"course":            "cyber-001",
		"plan":              "standard",
		"startDate":         "2026-11-01",
		"experience":        "beginner",
		"motivation":        strings.Repeat("m", 50),
		"previousEducation": "BSc Computer Science",
		"expectations":      strings.Repeat("e", 30),
	}
}

func encode(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func requireErrors(t *testing.T, err error) Errors {
	t.Helper()
	require.Error(t, err)
	var errs Errors
	require.ErrorAs(t, err, &errs)
	require.NotEmpty(t, errs)
	return errs
}

func TestDecodeValidApplication(t *testing.T) {
	v := New()
	payload := validApplication()
	payload["workExperience"] = "2 years helpdesk"

	var req models.CreateApplicationRequest
	require.NoError(t, v.Decode(encode(t, payload), &req))

	assert.Equal(t, "Ada", req.FirstName)
	assert.Equal(t, strings.Repeat("m", 50), req.Motivation)
	require.NotNil(t, req.WorkExperience)
	assert.Equal(t, "2 years helpdesk", *req.WorkExperience)
}

func TestDecodeMotivationBoundary(t *testing.T) {
	v := New()
	payload := validApplication()
	payload["motivation"] = strings.Repeat("m", 49)

	var req models.CreateApplicationRequest
	errs := requireErrors(t, v.Decode(encode(t, payload), &req))

	assert.Len(t, errs, 1)
	assert.Equal(t, "min", errs.Rule("motivation"))
	assert.Contains(t, errs[0].Message, "50")
}

func TestDecodeReportsEveryViolation(t *testing.T) {
	v := New()
	payload := validApplication()
	delete(payload, "firstName")
	payload["lastName"] = "O"
	payload["email"] = "not-an-email"
	payload["phone"] = "12345"
	payload["expectations"] = "short"

	var req models.CreateApplicationRequest
	errs := requireErrors(t, v.Decode(encode(t, payload), &req))

	assert.Equal(t, "required", errs.Rule("firstName"))
	assert.Equal(t, "min", errs.Rule("lastName"))
	assert.Equal(t, "email", errs.Rule("email"))
	assert.Equal(t, "min", errs.Rule("phone"))
	assert.Equal(t, "min", errs.Rule("expectations"))
	assert.Len(t, errs, 5)

	// listed in schema order
	assert.Equal(t, "firstName", errs[0].Field)
	assert.Equal(t, "expectations", errs[len(errs)-1].Field)
}

func TestDecodeWrongTypeReportedOnce(t *testing.T) {
	v := New()
	payload := validApplication()
	payload["firstName"] = 42
	payload["email"] = []string{"a@b.c"}

	var req models.CreateApplicationRequest
	errs := requireErrors(t, v.Decode(encode(t, payload), &req))

	assert.Len(t, errs, 2)
	assert.Equal(t, "type", errs.Rule("firstName"))
	assert.Equal(t, "type", errs.Rule("email"))
	assert.Equal(t, "firstName must be a string", errs[0].Message)
}

func TestDecodeIgnoresServerAssignedFields(t *testing.T) {
	v := New()
	payload := validContact()
	payload["id"] = "client-chosen"
	payload["status"] = "closed"
	payload["createdAt"] = "1999-01-01T00:00:00Z"

	var req models.CreateContactMessageRequest
	require.NoError(t, v.Decode(encode(t, payload), &req))
	assert.Equal(t, "Hello there", req.Message)
}

func validContact() map[string]interface{} {
	return map[string]interface{}{
		"firstName": "Tolu",
		"lastName":  "Ade",
		"email":     "tolu@example.com",
		"message":   "Hello there",
	}
}

func TestDecodeRejectsNonObjectBodies(t *testing.T) {
	v := New()

	for _, body := range []string{"", "null", "[]", `"text"`, "{broken"} {
		var req models.CreateContactMessageRequest
		err := v.Decode([]byte(body), &req)
		assert.ErrorIs(t, err, ErrInvalidBody, "body %q", body)
	}
}

func TestDecodeRejectsNonStructDestination(t *testing.T) {
	v := New()
	var s string
	err := v.Decode([]byte(`{}`), &s)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidBody)
}

func validCourse() map[string]interface{} {
	return map[string]interface{}{
		"title":             "Cloud Fundamentals",
		"description":       "Intro to cloud computing",
		"duration":          "4 weeks",
		"level":             "Beginner",
		"category":          "other",
		"standardPrice":     "150000",
		"professionalPrice": 180000,
		"curriculum":        []string{"IaaS", "PaaS"},
		"prerequisites":     []string{},
	}
}

func TestDecodeCourseDecimals(t *testing.T) {
	v := New()

	var req models.CreateCourseRequest
	require.NoError(t, v.Decode(encode(t, validCourse()), &req))
	require.NotNil(t, req.StandardPrice)
	assert.Equal(t, "150000", req.StandardPrice.String())
	assert.Equal(t, "180000", req.ProfessionalPrice.String())
	assert.Nil(t, req.MaxStudents)

	payload := validCourse()
	payload["standardPrice"] = "-1"
	payload["professionalPrice"] = "abc"
	payload["category"] = "cooking"
	payload["maxStudents"] = 0
	delete(payload, "curriculum")

	req = models.CreateCourseRequest{}
	errs := requireErrors(t, v.Decode(encode(t, payload), &req))

	assert.Equal(t, "gte", errs.Rule("standardPrice"))
	assert.Equal(t, "type", errs.Rule("professionalPrice"))
	assert.Equal(t, "oneof", errs.Rule("category"))
	assert.Equal(t, "gt", errs.Rule("maxStudents"))
	assert.Equal(t, "required", errs.Rule("curriculum"))
}

func TestDecodeZeroPriceIsAllowed(t *testing.T) {
	v := New()
	payload := validCourse()
	payload["standardPrice"] = "0"

	var req models.CreateCourseRequest
	require.NoError(t, v.Decode(encode(t, payload), &req))
}

func TestStruct(t *testing.T) {
	v := New()

	err := v.Struct(&models.CreateTestimonialRequest{
		StudentName:  "Kemi",
		StudentTitle: "Engineer",
		Content:      "Great",
		Rating:       6,
	})
	errs := requireErrors(t, err)
	assert.Equal(t, "max", errs.Rule("rating"))
	assert.False(t, errs.Has("courseId"))

	assert.NoError(t, v.Struct(&models.CreateTestimonialRequest{
		StudentName:  "Kemi",
		StudentTitle: "Engineer",
		Content:      "Great",
		CourseID:     "does-not-exist",
		Rating:       5,
	}))
}

func TestErrorsError(t *testing.T) {
	errs := Errors{
		{Field: "a", Rule: "required", Message: "a is required"},
		{Field: "b", Rule: "min", Message: "b must be at least 2 characters"},
	}
	assert.Equal(t, "validation failed: a is required; b must be at least 2 characters", errs.Error())
}
