package services

import (
	"context"
	"fmt"

	"campusevents/internal/domain"
)

type reportService struct {
	reportRepo domain.ReportRepository
}

// NewReportService creates a ReportService with the given repository.
func NewReportService(reportRepo domain.ReportRepository) domain.ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) EventPopularity(ctx context.Context) ([]*domain.PopularityRow, error) {
	rows, err := s.reportRepo.EventPopularity(ctx)
	if err != nil {
		return nil, fmt.Errorf("event popularity: %w", err)
	}
	if rows == nil {
		rows = []*domain.PopularityRow{}
	}
	return rows, nil
}

func (s *reportService) StudentParticipation(ctx context.Context) ([]*domain.ParticipationRow, error) {
	rows, err := s.reportRepo.StudentParticipation(ctx)
	if err != nil {
		return nil, fmt.Errorf("student participation: %w", err)
	}
	if rows == nil {
		rows = []*domain.ParticipationRow{}
	}
	return rows, nil
}

func (s *reportService) EventFeedback(ctx context.Context) ([]*domain.FeedbackRow, error) {
	rows, err := s.reportRepo.EventFeedback(ctx)
	if err != nil {
		return nil, fmt.Errorf("event feedback: %w", err)
	}
	if rows == nil {
		rows = []*domain.FeedbackRow{}
	}
	return rows, nil
}
