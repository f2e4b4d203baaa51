package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/talentshive/training-site/internal/models"
)

type ContactMessageRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	GetByID(ctx context.Context, id string) (*models.ContactMessage, error)
	GetAll(ctx context.Context) ([]models.ContactMessage, error)
}

type contactMessageRepository struct {
	*PostgresRepository
}

func NewContactMessageRepository(db *sql.DB, logger zerolog.Logger) ContactMessageRepository {
	return &contactMessageRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const contactMessageColumns = `id, first_name, last_name, email, phone, course_interest,
	message, status, created_at`

func (r *contactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (` + contactMessageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		message.ID,
		message.FirstName,
		message.LastName,
		message.Email,
		message.Phone,
		message.CourseInterest,
		message.Message,
		message.Status,
		message.CreatedAt,
	)

	return mapInsertError(err)
}

func (r *contactMessageRepository) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	query := `SELECT ` + contactMessageColumns + ` FROM contact_messages WHERE id = $1`

	message, err := scanContactMessage(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return message, err
}

func (r *contactMessageRepository) GetAll(ctx context.Context) ([]models.ContactMessage, error) {
	query := `SELECT ` + contactMessageColumns + ` FROM contact_messages ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.ContactMessage{}
	for rows.Next() {
		message, err := scanContactMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *message)
	}

	return messages, rows.Err()
}

func scanContactMessage(row rowScanner) (*models.ContactMessage, error) {
	message := &models.ContactMessage{}
	err := row.Scan(
		&message.ID,
		&message.FirstName,
		&message.LastName,
		&message.Email,
		&message.Phone,
		&message.CourseInterest,
		&message.Message,
		&message.Status,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return message, nil
}
