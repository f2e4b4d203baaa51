package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/talentshive/training-site/internal/models"
	"github.com/talentshive/training-site/internal/repository"
	"github.com/talentshive/training-site/internal/validation"
)

// maxStatusAttempts bounds how often UpdateStatus re-reads an application whose
// status was changed by a concurrent request.
const maxStatusAttempts = 3

type ApplicationService interface {
	Submit(ctx context.Context, req *models.CreateApplicationRequest) (*models.Application, error)
	List(ctx context.Context) ([]models.Application, error)
	Get(ctx context.Context, id string) (*models.Application, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Application, error)
}

type applicationService struct {
	applicationRepo repository.ApplicationRepository
	validator       *validation.Validator
	logger          zerolog.Logger
	now             func() time.Time
}

func NewApplicationService(applicationRepo repository.ApplicationRepository, validator *validation.Validator, logger zerolog.Logger) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		validator:       validator,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *applicationService) Submit(ctx context.Context, req *models.CreateApplicationRequest) (*models.Application, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	application := &models.Application{
		ID:                uuid.New().String(),
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		Course:            req.Course,
		Plan:              req.Plan,
		StartDate:         req.StartDate,
		Experience:        req.Experience,
		Motivation:        req.Motivation,
		PreviousEducation: req.PreviousEducation,
		WorkExperience:    req.WorkExperience,
		Expectations:      req.Expectations,
		Status:            models.ApplicationStatusPending.String(),
		CreatedAt:         s.now(),
	}

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.logger.Info().
		Str("application_id", application.ID).
		Str("course", application.Course).
		Str("plan", application.Plan).
		Msg("Application submitted")

	return application, nil
}

func (s *applicationService) List(ctx context.Context) ([]models.Application, error) {
	applications, err := s.applicationRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}

func (s *applicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	application, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}
	return application, nil
}

// UpdateStatus moves a pending application to approved or rejected. Approved and
// rejected are terminal; asking for the status an application already has succeeds
// without writing.
func (s *applicationService) UpdateStatus(ctx context.Context, id, status string) (*models.Application, error) {
	if !models.IsValidApplicationStatus(status) {
		return nil, ErrInvalidStatus
	}

	for attempt := 0; attempt < maxStatusAttempts; attempt++ {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.Status == status {
			return current, nil
		}
		if models.ApplicationStatus(current.Status).IsFinal() {
			return nil, ErrStatusFinal
		}

		updated, err := s.applicationRepo.UpdateStatus(ctx, id, current.Status, status)
		if errors.Is(err, repository.ErrStatusChanged) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to update application status: %w", err)
		}
		if updated == nil {
			return nil, ErrApplicationNotFound
		}

		s.logger.Info().
			Str("application_id", id).
			Str("from", current.Status).
			Str("to", updated.Status).
			Msg("Application status updated")

		return updated, nil
	}

	return nil, fmt.Errorf("failed to update application status: %w", repository.ErrStatusChanged)
}
