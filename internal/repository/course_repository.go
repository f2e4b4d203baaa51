package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/talentshive/training-site/internal/models"
)

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	GetAll(ctx context.Context) ([]models.Course, error)
	Count(ctx context.Context) (int, error)
}

type courseRepository struct {
	*PostgresRepository
}

func NewCourseRepository(db *sql.DB, logger zerolog.Logger) CourseRepository {
	return &courseRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const courseColumns = `id, title, description, duration, level, category,
	standard_price, professional_price, curriculum, prerequisites,
	image_url, is_popular, max_students, created_at`

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (` + courseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		course.Duration,
		course.Level,
		course.Category,
		course.StandardPrice,
		course.ProfessionalPrice,
		pq.Array(course.Curriculum),
		pq.Array(course.Prerequisites),
		course.ImageURL,
		course.IsPopular,
		course.MaxStudents,
		course.CreatedAt,
	)

	return mapInsertError(err)
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	course, err := scanCourse(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return course, err
}

func (r *courseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}

	return courses, rows.Err()
}

func (r *courseRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM courses`)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCourse(row rowScanner) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Duration,
		&course.Level,
		&course.Category,
		&course.StandardPrice,
		&course.ProfessionalPrice,
		pq.Array(&course.Curriculum),
		pq.Array(&course.Prerequisites),
		&course.ImageURL,
		&course.IsPopular,
		&course.MaxStudents,
		&course.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return course, nil
}
