package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/safewords/safewords_backend/internal/models"
	"github.com/safewords/safewords_backend/internal/service"
)

const trustedSnapshotKey = "trusted_contacts"

type ContactRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewContactRepository(db *pgxpool.Pool, redisClient *redis.Client) service.ContactRepository {
	return &ContactRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// List возвращает контакты в порядке добавления
func (r *ContactRepository) List(ctx context.Context) ([]*models.Contact, error) {
	query := `
		SELECT id, name, number, verified, created_at, updated_at
		FROM user_contacts
		ORDER BY created_at, id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*models.Contact, 0)
	for rows.Next() {
		contact := &models.Contact{}
		err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Number,
			&contact.Verified,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return contacts, nil
}

// GetByID возвращает контакт по его UUID
func (r *ContactRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	contact := &models.Contact{}
	query := `
		SELECT id, name, number, verified, created_at, updated_at
		FROM user_contacts
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&contact.ID,
		&contact.Name,
		&contact.Number,
		&contact.Verified,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("contact with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get contact by id: %w", err)
	}
	return contact, nil
}

// GetByNormalizedNumber ищет контакт по нормализованному номеру.
// Возвращает (nil, nil), если номера нет.
func (r *ContactRepository) GetByNormalizedNumber(ctx context.Context, normalized string) (*models.Contact, error) {
	contact := &models.Contact{}
	query := `
		SELECT id, name, number, verified, created_at, updated_at
		FROM user_contacts
		WHERE normalized_number = $1;
	`
	err := r.db.QueryRow(ctx, query, normalized).Scan(
		&contact.ID,
		&contact.Name,
		&contact.Number,
		&contact.Verified,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contact by number: %w", err)
	}
	return contact, nil
}

// Create создает новую запись о контакте
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO user_contacts (name, number, normalized_number, verified)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		contact.Name,
		contact.Number,
		models.NormalizeNumber(contact.Number),
		contact.Verified,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// Update обновляет существующий контакт
func (r *ContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	query := `
		UPDATE user_contacts SET
			name = $1,
			number = $2,
			normalized_number = $3,
			verified = $4,
			updated_at = NOW()
		WHERE id = $5;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		contact.Name,
		contact.Number,
		models.NormalizeNumber(contact.Number),
		contact.Verified,
		contact.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("contact with id %s not found for update", contact.ID)
	}
	return nil
}

// Delete удаляет контакт
func (r *ContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM user_contacts WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("contact with id %s not found for delete", id)
	}
	return nil
}

// SetTrustedSnapshot сохраняет опубликованный доверенный список в Redis
func (r *ContactRepository) SetTrustedSnapshot(ctx context.Context, numbers []string) error {
	val, err := json.Marshal(numbers)
	if err != nil {
		return fmt.Errorf("failed to marshal trusted snapshot: %w", err)
	}
	if err := r.redisClient.Set(ctx, trustedSnapshotKey, val, 0).Err(); err != nil {
		return fmt.Errorf("failed to set trusted snapshot: %w", err)
	}
	return nil
}

// GetTrustedSnapshot читает последний опубликованный доверенный список.
// Пустой список, если публикаций еще не было.
func (r *ContactRepository) GetTrustedSnapshot(ctx context.Context) ([]string, error) {
	val, err := r.redisClient.Get(ctx, trustedSnapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to get trusted snapshot: %w", err)
	}

	numbers := make([]string, 0)
	if err := json.Unmarshal(val, &numbers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trusted snapshot: %w", err)
	}
	return numbers, nil
}
