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

type ContactService interface {
	Submit(ctx context.Context, req *models.CreateContactMessageRequest) (*models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
	Get(ctx context.Context, id string) (*models.ContactMessage, error)
}

type contactService struct {
	contactRepo repository.ContactMessageRepository
	validator   *validation.Validator
	logger      zerolog.Logger
	now         func() time.Time
}

func NewContactService(contactRepo repository.ContactMessageRepository, validator *validation.Validator, logger zerolog.Logger) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		validator:   validator,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *contactService) Submit(ctx context.Context, req *models.CreateContactMessageRequest) (*models.ContactMessage, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	message := &models.ContactMessage{
		ID:             uuid.New().String(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		CourseInterest: req.CourseInterest,
		Message:        req.Message,
		Status:         models.ContactStatusNew.String(),
		CreatedAt:      s.now(),
	}

	if err := s.contactRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}

	s.logger.Info().
		Str("contact_id", message.ID).
		Msg("Contact message received")

	return message, nil
}

func (s *contactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	messages, err := s.contactRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return messages, nil
}

func (s *contactService) Get(ctx context.Context, id string) (*models.ContactMessage, error) {
	message, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact message: %w", err)
	}
	if message == nil {
		return nil, ErrContactNotFound
	}
	return message, nil
}
