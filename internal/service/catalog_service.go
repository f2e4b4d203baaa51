package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/talentshive/training-site/internal/models"
	"github.com/talentshive/training-site/internal/repository"
	"github.com/talentshive/training-site/internal/validation"
)

type CatalogService interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error)

	ListInstructors(ctx context.Context) ([]models.Instructor, error)
	GetInstructor(ctx context.Context, id string) (*models.Instructor, error)
	CreateInstructor(ctx context.Context, req *models.CreateInstructorRequest) (*models.Instructor, error)

	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	ListTestimonialsByCourse(ctx context.Context, courseID string) ([]models.Testimonial, error)
	CreateTestimonial(ctx context.Context, req *models.CreateTestimonialRequest) (*models.Testimonial, error)
}

type catalogService struct {
	courseRepo      repository.CourseRepository
	instructorRepo  repository.InstructorRepository
	testimonialRepo repository.TestimonialRepository
	validator       *validation.Validator
	logger          zerolog.Logger
	now             func() time.Time
}

func NewCatalogService(repos *repository.Repositories, validator *validation.Validator, logger zerolog.Logger) CatalogService {
	return &catalogService{
		courseRepo:      repos.Courses,
		instructorRepo:  repos.Instructors,
		testimonialRepo: repos.Testimonials,
		validator:       validator,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *catalogService) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (s *catalogService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

func (s *catalogService) CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	course := &models.Course{
		ID:                uuid.New().String(),
		Title:             req.Title,
		Description:       req.Description,
		Duration:          req.Duration,
		Level:             req.Level,
		Category:          req.Category,
		StandardPrice:     *req.StandardPrice,
		ProfessionalPrice: *req.ProfessionalPrice,
		Curriculum:        req.Curriculum,
		Prerequisites:     req.Prerequisites,
		ImageURL:          req.ImageURL,
		MaxStudents:       models.DefaultMaxStudents,
		CreatedAt:         s.now(),
	}
	if req.IsPopular != nil {
		course.IsPopular = *req.IsPopular
	}
	if req.MaxStudents != nil {
		course.MaxStudents = *req.MaxStudents
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info().
		Str("course_id", course.ID).
		Str("title", course.Title).
		Msg("Course created")

	return course, nil
}

func (s *catalogService) ListInstructors(ctx context.Context) ([]models.Instructor, error) {
	instructors, err := s.instructorRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructors: %w", err)
	}
	return instructors, nil
}

func (s *catalogService) GetInstructor(ctx context.Context, id string) (*models.Instructor, error) {
	instructor, err := s.instructorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get instructor: %w", err)
	}
	if instructor == nil {
		return nil, ErrInstructorNotFound
	}
	return instructor, nil
}

func (s *catalogService) CreateInstructor(ctx context.Context, req *models.CreateInstructorRequest) (*models.Instructor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	instructor := &models.Instructor{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Title:          req.Title,
		Bio:            req.Bio,
		ImageURL:       req.ImageURL,
		Expertise:      req.Expertise,
		Experience:     req.Experience,
		Certifications: req.Certifications,
		Rating:         models.DefaultInstructorRating,
	}
	if req.StudentsCount != nil {
		instructor.StudentsCount = *req.StudentsCount
	}
	if req.Rating != nil {
		instructor.Rating = *req.Rating
	}

	if err := s.instructorRepo.Create(ctx, instructor); err != nil {
		return nil, fmt.Errorf("failed to create instructor: %w", err)
	}

	s.logger.Info().
		Str("instructor_id", instructor.ID).
		Str("name", instructor.Name).
		Msg("Instructor created")

	return instructor, nil
}

func (s *catalogService) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	testimonials, err := s.testimonialRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonials, nil
}

// ListTestimonialsByCourse does not check that courseID names a known course; an
// unknown id simply yields an empty list.
func (s *catalogService) ListTestimonialsByCourse(ctx context.Context, courseID string) ([]models.Testimonial, error) {
	testimonials, err := s.testimonialRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials by course: %w", err)
	}
	if testimonials == nil {
		testimonials = []models.Testimonial{}
	}
	return testimonials, nil
}

func (s *catalogService) CreateTestimonial(ctx context.Context, req *models.CreateTestimonialRequest) (*models.Testimonial, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	testimonial := &models.Testimonial{
		ID:           uuid.New().String(),
		StudentName:  req.StudentName,
		StudentTitle: req.StudentTitle,
		Content:      req.Content,
		CourseID:     req.CourseID,
		Rating:       req.Rating,
		CreatedAt:    s.now(),
	}

	if err := s.testimonialRepo.Create(ctx, testimonial); err != nil {
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}

	s.logger.Info().
		Str("testimonial_id", testimonial.ID).
		Str("course_id", testimonial.CourseID).
		Msg("Testimonial created")

	return testimonial, nil
}
