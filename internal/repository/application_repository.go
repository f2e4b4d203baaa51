package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/talentshive/training-site/internal/models"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	GetAll(ctx context.Context) ([]models.Application, error)
	// UpdateStatus sets the status of application id to status, but only while its
	// stored status still equals expected. It returns (nil, nil) for an unknown id
	// and ErrStatusChanged when the stored status differs from expected.
	UpdateStatus(ctx context.Context, id, expected, status string) (*models.Application, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type applicationRepository struct {
	*PostgresRepository
}

func NewApplicationRepository(db *sql.DB, logger zerolog.Logger) ApplicationRepository {
	return &applicationRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const applicationColumns = `id, first_name, last_name, email, phone, course, plan,
	start_date, experience, motivation, previous_education, work_experience,
	expectations, status, created_at`

func (r *applicationRepository) Create(ctx context.Context, application *models.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(ctx, query,
		application.ID,
		application.FirstName,
		application.LastName,
		application.Email,
		application.Phone,
		application.Course,
		application.Plan,
		application.StartDate,
		application.Experience,
		application.Motivation,
		application.PreviousEducation,
		application.WorkExperience,
		application.Expectations,
		application.Status,
		application.CreatedAt,
	)

	return mapInsertError(err)
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	application, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return application, err
}

func (r *applicationRepository) GetAll(ctx context.Context) ([]models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []models.Application{}
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, *application)
	}

	return applications, rows.Err()
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id, expected, status string) (*models.Application, error) {
	query := `
		UPDATE applications
		SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING ` + applicationColumns

	application, err := scanApplication(r.db.QueryRowContext(ctx, query, status, id, expected))
	if err == nil {
		return application, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	return nil, ErrStatusChanged
}

func (r *applicationRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM applications GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			total  int
		)
		if err := rows.Scan(&status, &total); err != nil {
			return nil, err
		}
		counts[status] = total
	}

	return counts, rows.Err()
}

func scanApplication(row rowScanner) (*models.Application, error) {
	application := &models.Application{}
	err := row.Scan(
		&application.ID,
		&application.FirstName,
		&application.LastName,
		&application.Email,
		&application.Phone,
		&application.Course,
		&application.Plan,
		&application.StartDate,
		&application.Experience,
		&application.Motivation,
		&application.PreviousEducation,
		&application.WorkExperience,
		&application.Expectations,
		&application.Status,
		&application.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return application, nil
}
