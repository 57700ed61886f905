package service

import (
	"context"

	"github.com/messkit/meal-access-service/internal/domain"
	"github.com/messkit/meal-access-service/internal/repository"
)

// MealLogService exposes the audit log query surface: a student reads their
// own history, administrators read everything.
type MealLogService struct {
	logs repository.MealLogRepository
}

// NewMealLogService constructs the service.
func NewMealLogService(logs repository.MealLogRepository) *MealLogService {
	return &MealLogService{logs: logs}
}

// HistoryForUser returns a user's entries, newest first.
func (s *MealLogService) HistoryForUser(ctx context.Context, accountID string, limit, offset int) ([]domain.MealLog, error) {
	return s.logs.ListByUser(ctx, accountID, limit, offset)
}

// AllLogs returns every entry, newest first.
func (s *MealLogService) AllLogs(ctx context.Context, limit, offset int) ([]domain.MealLog, error) {
	return s.logs.ListAll(ctx, limit, offset)
}
