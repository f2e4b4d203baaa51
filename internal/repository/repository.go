package repository

import (
	"database/sql"

	"github.com/rs/zerolog"
)

// Repositories bundles the per-entity stores so they can be handed to the service
// layer as one value.
type Repositories struct {
	Courses         CourseRepository
	Instructors     InstructorRepository
	Testimonials    TestimonialRepository
	Applications    ApplicationRepository
	ContactMessages ContactMessageRepository
}

func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Courses:         NewMemoryCourseRepository(),
		Instructors:     NewMemoryInstructorRepository(),
		Testimonials:    NewMemoryTestimonialRepository(),
		Applications:    NewMemoryApplicationRepository(),
		ContactMessages: NewMemoryContactMessageRepository(),
	}
}

func NewPostgresRepositories(db *sql.DB, logger zerolog.Logger) *Repositories {
	return &Repositories{
		Courses:         NewCourseRepository(db, logger),
		Instructors:     NewInstructorRepository(db, logger),
		Testimonials:    NewTestimonialRepository(db, logger),
		Applications:    NewApplicationRepository(db, logger),
		ContactMessages: NewContactMessageRepository(db, logger),
	}
}
