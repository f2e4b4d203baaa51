package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/talentshive/training-site/internal/models"
)

type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *models.Testimonial) error
	GetAll(ctx context.Context) ([]models.Testimonial, error)
	GetByCourseID(ctx context.Context, courseID string) ([]models.Testimonial, error)
}

type testimonialRepository struct {
	*PostgresRepository
}

func NewTestimonialRepository(db *sql.DB, logger zerolog.Logger) TestimonialRepository {
	return &testimonialRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const testimonialColumns = `id, student_name, student_title, content, course_id, rating, created_at`

// course_id has no foreign key: testimonials may point at courses that do not exist.
func (r *testimonialRepository) Create(ctx context.Context, testimonial *models.Testimonial) error {
	query := `
		INSERT INTO testimonials (` + testimonialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		testimonial.ID,
		testimonial.StudentName,
		testimonial.StudentTitle,
		testimonial.Content,
		testimonial.CourseID,
		testimonial.Rating,
		testimonial.CreatedAt,
	)

	return mapInsertError(err)
}

func (r *testimonialRepository) GetAll(ctx context.Context) ([]models.Testimonial, error) {
	return r.query(ctx, `SELECT `+testimonialColumns+` FROM testimonials ORDER BY seq`)
}

func (r *testimonialRepository) GetByCourseID(ctx context.Context, courseID string) ([]models.Testimonial, error) {
	return r.query(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials WHERE course_id = $1 ORDER BY seq`,
		courseID,
	)
}

func (r *testimonialRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.Testimonial, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	testimonials := []models.Testimonial{}
	for rows.Next() {
		var t models.Testimonial
		err := rows.Scan(
			&t.ID,
			&t.StudentName,
			&t.StudentTitle,
			&t.Content,
			&t.CourseID,
			&t.Rating,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}

	return testimonials, rows.Err()
}
