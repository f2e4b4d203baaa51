package repository

import (
	"context"
	"sync"

	"github.com/talentshive/training-site/internal/models"
)

// record is an entity that can produce a deep copy of itself.
type record[T any] interface {
	Clone() T
}

// collection is an insertion-ordered map. Values are deep-copied on the way in and
// on the way out, so callers never share slices or pointers with stored records.
type collection[T record[T]] struct {
	mu    sync.RWMutex
	order []string
	items map[string]T
}

func newCollection[T record[T]]() *collection[T] {
	return &collection[T]{items: make(map[string]T)}
}

func (c *collection[T]) insert(id string, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[id]; exists {
		return ErrDuplicateID
	}

	c.items[id] = item.Clone()
	c.order = append(c.order, id)
	return nil
}

func (c *collection[T]) get(id string) (*T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok {
		return nil, false
	}
	item = item.Clone()
	return &item, true
}

func (c *collection[T]) list(keep func(*T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		item := c.items[id]
		if keep == nil || keep(&item) {
			out = append(out, item.Clone())
		}
	}
	return out
}

func (c *collection[T]) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// update applies fn to a copy of the stored item and stores the result when fn
// returns nil. It reports false for an unknown id.
func (c *collection[T]) update(id string, fn func(*T) error) (*T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[id]
	if !ok {
		return nil, false, nil
	}
	item = item.Clone()
	if err := fn(&item); err != nil {
		return nil, true, err
	}

	c.items[id] = item
	out := item.Clone()
	return &out, true, nil
}

type memoryCourseRepository struct {
	courses *collection[models.Course]
}

func NewMemoryCourseRepository() CourseRepository {
	return &memoryCourseRepository{courses: newCollection[models.Course]()}
}

func (r *memoryCourseRepository) Create(_ context.Context, course *models.Course) error {
	return r.courses.insert(course.ID, *course)
}

func (r *memoryCourseRepository) GetByID(_ context.Context, id string) (*models.Course, error) {
	course, _ := r.courses.get(id)
	return course, nil
}

func (r *memoryCourseRepository) GetAll(_ context.Context) ([]models.Course, error) {
	return r.courses.list(nil), nil
}

func (r *memoryCourseRepository) Count(_ context.Context) (int, error) {
	return r.courses.size(), nil
}

type memoryInstructorRepository struct {
	instructors *collection[models.Instructor]
}

func NewMemoryInstructorRepository() InstructorRepository {
	return &memoryInstructorRepository{instructors: newCollection[models.Instructor]()}
}

func (r *memoryInstructorRepository) Create(_ context.Context, instructor *models.Instructor) error {
	return r.instructors.insert(instructor.ID, *instructor)
}

func (r *memoryInstructorRepository) GetByID(_ context.Context, id string) (*models.Instructor, error) {
	instructor, _ := r.instructors.get(id)
	return instructor, nil
}

func (r *memoryInstructorRepository) GetAll(_ context.Context) ([]models.Instructor, error) {
	return r.instructors.list(nil), nil
}

func (r *memoryInstructorRepository) Count(_ context.Context) (int, error) {
	return r.instructors.size(), nil
}

type memoryTestimonialRepository struct {
	testimonials *collection[models.Testimonial]
}

func NewMemoryTestimonialRepository() TestimonialRepository {
	return &memoryTestimonialRepository{testimonials: newCollection[models.Testimonial]()}
}

func (r *memoryTestimonialRepository) Create(_ context.Context, testimonial *models.Testimonial) error {
	return r.testimonials.insert(testimonial.ID, *testimonial)
}

func (r *memoryTestimonialRepository) GetAll(_ context.Context) ([]models.Testimonial, error) {
	return r.testimonials.list(nil), nil
}

func (r *memoryTestimonialRepository) GetByCourseID(_ context.Context, courseID string) ([]models.Testimonial, error) {
	return r.testimonials.list(func(t *models.Testimonial) bool {
		return t.CourseID == courseID
	}), nil
}

type memoryApplicationRepository struct {
	applications *collection[models.Application]
}

func NewMemoryApplicationRepository() ApplicationRepository {
	return &memoryApplicationRepository{applications: newCollection[models.Application]()}
}

func (r *memoryApplicationRepository) Create(_ context.Context, application *models.Application) error {
	return r.applications.insert(application.ID, *application)
}

func (r *memoryApplicationRepository) GetByID(_ context.Context, id string) (*models.Application, error) {
	application, _ := r.applications.get(id)
	return application, nil
}

func (r *memoryApplicationRepository) GetAll(_ context.Context) ([]models.Application, error) {
	return r.applications.list(nil), nil
}

func (r *memoryApplicationRepository) UpdateStatus(_ context.Context, id, expected, status string) (*models.Application, error) {
	application, _, err := r.applications.update(id, func(a *models.Application) error {
		if a.Status != expected {
			return ErrStatusChanged
		}
		a.Status = status
		return nil
	})

	return application, err
}

func (r *memoryApplicationRepository) CountByStatus(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, a := range r.applications.list(nil) {
		counts[a.Status]++
	}
	return counts, nil
}

type memoryContactMessageRepository struct {
	messages *collection[models.ContactMessage]
}

func NewMemoryContactMessageRepository() ContactMessageRepository {
	return &memoryContactMessageRepository{messages: newCollection[models.ContactMessage]()}
}

func (r *memoryContactMessageRepository) Create(_ context.Context, message *models.ContactMessage) error {
	return r.messages.insert(message.ID, *message)
}

func (r *memoryContactMessageRepository) GetByID(_ context.Context, id string) (*models.ContactMessage, error) {
	message, _ := r.messages.get(id)
	return message, nil
}

func (r *memoryContactMessageRepository) GetAll(_ context.Context) ([]models.ContactMessage, error) {
	return r.messages.list(nil), nil
}
