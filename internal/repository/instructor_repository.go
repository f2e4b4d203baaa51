package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/talentshive/training-site/internal/models"
)

type InstructorRepository interface {
	Create(ctx context.Context, instructor *models.Instructor) error
	GetByID(ctx context.Context, id string) (*models.Instructor, error)
	GetAll(ctx context.Context) ([]models.Instructor, error)
	Count(ctx context.Context) (int, error)
}

type instructorRepository struct {
	*PostgresRepository
}

func NewInstructorRepository(db *sql.DB, logger zerolog.Logger) InstructorRepository {
	return &instructorRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const instructorColumns = `id, name, title, bio, image_url, expertise, experience,
	certifications, students_count, rating`

func (r *instructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	query := `
		INSERT INTO instructors (` + instructorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		instructor.ID,
		instructor.Name,
		instructor.Title,
		instructor.Bio,
		instructor.ImageURL,
		pq.Array(instructor.Expertise),
		instructor.Experience,
		pq.Array(instructor.Certifications),
		instructor.StudentsCount,
		instructor.Rating,
	)

	return mapInsertError(err)
}

func (r *instructorRepository) GetByID(ctx context.Context, id string) (*models.Instructor, error) {
	query := `SELECT ` + instructorColumns + ` FROM instructors WHERE id = $1`

	instructor, err := scanInstructor(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return instructor, err
}

func (r *instructorRepository) GetAll(ctx context.Context) ([]models.Instructor, error) {
	query := `SELECT ` + instructorColumns + ` FROM instructors ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instructors := []models.Instructor{}
	for rows.Next() {
		instructor, err := scanInstructor(rows)
		if err != nil {
			return nil, err
		}
		instructors = append(instructors, *instructor)
	}

	return instructors, rows.Err()
}

func (r *instructorRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM instructors`)
}

func scanInstructor(row rowScanner) (*models.Instructor, error) {
	instructor := &models.Instructor{}
	err := row.Scan(
		&instructor.ID,
		&instructor.Name,
		&instructor.Title,
		&instructor.Bio,
		&instructor.ImageURL,
		pq.Array(&instructor.Expertise),
		&instructor.Experience,
		pq.Array(&instructor.Certifications),
		&instructor.StudentsCount,
		&instructor.Rating,
	)
	if err != nil {
		return nil, err
	}

	return instructor, nil
}
