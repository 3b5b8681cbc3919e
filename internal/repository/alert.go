package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/safewords/safewords_backend/internal/models"
	"github.com/safewords/safewords_backend/internal/service"
)

type AlertRepository struct {
	db *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) service.AlertRepository {
	return &AlertRepository{db: db}
}

// Append добавляет запись в журнал тревог. Записи не изменяются и не
// удаляются.
func (r *AlertRepository) Append(ctx context.Context, message string, fix *models.LocationFix) error {
	query := `
		INSERT INTO alerts (message, latitude, longitude)
		VALUES ($1, $2, $3);
	`
	var lat, lon *float64
	if fix != nil {
		lat = &fix.Latitude
		lon = &fix.Longitude
	}
	if _, err := r.db.Exec(ctx, query, message, lat, lon); err != nil {
		return fmt.Errorf("failed to append alert: %w", err)
	}
	return nil
}

// List возвращает записи журнала от новых к старым
func (r *AlertRepository) List(ctx context.Context, limit int) ([]*models.AlertEntry, error) {
	query := `
		SELECT id, message, latitude, longitude, created_at
		FROM alerts
		ORDER BY id DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.AlertEntry, 0)
	for rows.Next() {
		entry := &models.AlertEntry{}
		var lat, lon *float64
		err := rows.Scan(&entry.ID, &entry.Message, &lat, &lon, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		if lat != nil && lon != nil {
			entry.Location = &models.LocationFix{
				Latitude:  *lat,
				Longitude: *lon,
				Timestamp: entry.CreatedAt,
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return entries, nil
}
