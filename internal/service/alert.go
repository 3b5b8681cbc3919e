package service

import (
	"context"
	"fmt"

	"github.com/safewords/safewords_backend/internal/models"
	"github.com/sirupsen/logrus"
)

// AlertRepository определяет контракт append-only журнала тревог
type AlertRepository interface {
	Append(ctx context.Context, message string, fix *models.LocationFix) error
	// List возвращает записи от новых к старым
	List(ctx context.Context, limit int) ([]*models.AlertEntry, error)
}

// AlertService определяет контракт чтения истории тревог
type AlertService interface {
	History(ctx context.Context, limit int) ([]*models.AlertEntry, error)
}

type alertService struct {
	repo   AlertRepository
	logger *logrus.Logger
}

func NewAlertService(repo AlertRepository, logger *logrus.Logger) AlertService {
	return &alertService{
		repo:   repo,
		logger: logger,
	}
}

// History возвращает журнал тревог, самые свежие первыми
func (s *alertService) History(ctx context.Context, limit int) ([]*models.AlertEntry, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}

	entries, err := s.repo.List(ctx, limit)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "alert",
			"method":  "History",
		}).WithError(err).Error("Failed to list alerts from repository")
		return nil, fmt.Errorf("service: could not list alerts: %w", err)
	}
	return entries, nil
}
