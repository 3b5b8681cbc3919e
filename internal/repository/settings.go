package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/safewords/safewords_backend/internal/service"
)

const accessCodeKey = "access_code"

type SettingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) service.SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetAccessCode возвращает сохраненный код доступа или "", если кода нет
func (r *SettingsRepository) GetAccessCode(ctx context.Context) (string, error) {
	var code string
	query := `SELECT value FROM app_settings WHERE key = $1;`
	err := r.db.QueryRow(ctx, query, accessCodeKey).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get access code: %w", err)
	}
	return code, nil
}

// SetAccessCode сохраняет новый код доступа
func (r *SettingsRepository) SetAccessCode(ctx context.Context, code string) error {
	query := `
		INSERT INTO app_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW();
	`
	if _, err := r.db.Exec(ctx, query, accessCodeKey, code); err != nil {
		return fmt.Errorf("failed to set access code: %w", err)
	}
	return nil
}
