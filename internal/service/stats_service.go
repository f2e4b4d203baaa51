package service

import (
	"context"
	"fmt"

	"github.com/talentshive/training-site/internal/models"
	"github.com/talentshive/training-site/internal/repository"
)

type StatsService interface {
	Get(ctx context.Context) (*models.Stats, error)
}

type statsService struct {
	courseRepo      repository.CourseRepository
	instructorRepo  repository.InstructorRepository
	applicationRepo repository.ApplicationRepository
}

func NewStatsService(repos *repository.Repositories) StatsService {
	return &statsService{
		courseRepo:      repos.Courses,
		instructorRepo:  repos.Instructors,
		applicationRepo: repos.Applications,
	}
}

// Get recomputes the counters on every call.
func (s *statsService) Get(ctx context.Context) (*models.Stats, error) {
	courses, err := s.courseRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}

	instructors, err := s.instructorRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count instructors: %w", err)
	}

	byStatus, err := s.applicationRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}

	return &models.Stats{
		StudentsEnrolled:     total + models.BaseEnrollment,
		CoursesOffered:       courses,
		InstructorsCount:     instructors,
		SuccessRate:          models.SuccessRate,
		TotalApplications:    total,
		PendingApplications:  byStatus[models.ApplicationStatusPending.String()],
		ApprovedApplications: byStatus[models.ApplicationStatusApproved.String()],
		RejectedApplications: byStatus[models.ApplicationStatusRejected.String()],
	}, nil
}
