package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/safewords/safewords_backend/internal/config"
	"github.com/safewords/safewords_backend/internal/models"
	"github.com/sirupsen/logrus"
)

// ContactRepository определяет контракт для работы с хранилищем контактов.
// Доверенный снапшот живет отдельно от пользовательского списка: правки после
// публикации не меняют активный набор, пока не опубликованы заново.
type ContactRepository interface {
	List(ctx context.Context) ([]*models.Contact, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	// GetByNormalizedNumber возвращает (nil, nil), если номера нет
	GetByNormalizedNumber(ctx context.Context, normalized string) (*models.Contact, error)
	Create(ctx context.Context, contact *models.Contact) error
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetTrustedSnapshot(ctx context.Context, numbers []string) error
	GetTrustedSnapshot(ctx context.Context) ([]string, error)
}

// ContactService определяет контракт для бизнес-логики доверенных контактов
type ContactService interface {
	List(ctx context.Context) ([]*models.Contact, error)
	AddOrUpdate(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	Remove(ctx context.Context, id uuid.UUID) error
	PredefinedList(ctx context.Context) ([]*models.PredefinedStatus, error)
	TogglePredefined(ctx context.Context, number string) (bool, error)
	TrustedNumbers(ctx context.Context) ([]string, error)
	Publish(ctx context.Context) ([]string, error)
	ActiveNumbers(ctx context.Context) ([]string, error)
}

type contactService struct {
	repo   ContactRepository
	logger *logrus.Logger
	cfg    *config.Config
}

func NewContactService(repo ContactRepository, logger *logrus.Logger, cfg *config.Config) ContactService {
	return &contactService{
		repo:   repo,
		logger: logger,
		cfg:    cfg,
	}
}

// List возвращает сохраненные контакты в порядке добавления
func (s *contactService) List(ctx context.Context) ([]*models.Contact, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list contacts: %w", err)
	}
	return contacts, nil
}

// AddOrUpdate вставляет новый контакт или заменяет существующий (по ID).
// Отклоняет номер, который уже занят другим контактом.
func (s *contactService) AddOrUpdate(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "contact",
		"method":  "AddOrUpdate",
		"number":  contact.Number,
	})

	normalized := models.NormalizeNumber(contact.Number)
	if normalized == "" {
		return nil, fmt.Errorf("service: %w", ErrInvalidNumber)
	}

	existing, err := s.repo.GetByNormalizedNumber(ctx, normalized)
	if err != nil {
		log.WithError(err).Error("Failed to check for duplicate number")
		return nil, fmt.Errorf("service: could not check for duplicate: %w", err)
	}
	if existing != nil && existing.ID != contact.ID {
		log.Warn("Rejected duplicate contact number")
		return nil, fmt.Errorf("service: %w", ErrDuplicateContact)
	}

	if contact.ID == uuid.Nil {
		if err := s.repo.Create(ctx, contact); err != nil {
			log.WithError(err).Error("Failed to create contact in repository")
			return nil, fmt.Errorf("service: could not create contact: %w", err)
		}
		log.WithField("contact_id", contact.ID).Info("Contact created successfully")
		return contact, nil
	}

	current, err := s.repo.GetByID(ctx, contact.ID)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent contact")
		return nil, fmt.Errorf("service: %w", ErrContactNotFound)
	}
	current.Name = contact.Name
	current.Number = contact.Number
	current.Verified = contact.Verified
	if err := s.repo.Update(ctx, current); err != nil {
		log.WithError(err).Error("Failed to update contact in repository")
		return nil, fmt.Errorf("service: could not update contact: %w", err)
	}
	log.WithField("contact_id", current.ID).Info("Contact updated successfully")
	return current, nil
}

// Remove удаляет контакт. Подтверждение удаления - забота UI,
// хранилище доверяет вызывающему.
func (s *contactService) Remove(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "contact",
		"method":     "Remove",
		"contact_id": id,
	})

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		log.WithError(err).Warn("Attempted to remove a non-existent contact")
		return fmt.Errorf("service: %w", ErrContactNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Error("Failed to delete contact in repository")
		return fmt.Errorf("service: could not delete contact: %w", err)
	}
	log.Info("Contact removed successfully")
	return nil
}

// PredefinedList возвращает фиксированные экстренные номера с признаком,
// включены ли они в доверенный список
func (s *contactService) PredefinedList(ctx context.Context) ([]*models.PredefinedStatus, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list contacts: %w", err)
	}

	stored := make(map[string]bool, len(contacts))
	for _, c := range contacts {
		stored[models.NormalizeNumber(c.Number)] = true
	}

	statuses := make([]*models.PredefinedStatus, 0, len(s.cfg.PredefinedContacts))
	for _, pre := range s.cfg.PredefinedContacts {
		statuses = append(statuses, &models.PredefinedStatus{
			Name:   pre.Name,
			Number: pre.Number,
			Added:  stored[models.NormalizeNumber(pre.Number)],
		})
	}
	return statuses, nil
}

// TogglePredefined добавляет фиксированный номер как верифицированный контакт,
// если его нет, и удаляет, если есть. Верификация для фиксированных номеров
// не требуется. Возвращает true, если номер был добавлен.
func (s *contactService) TogglePredefined(ctx context.Context, number string) (bool, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "contact",
		"method":  "TogglePredefined",
		"number":  number,
	})

	var predefined *config.PredefinedContact
	normalized := models.NormalizeNumber(number)
	for i := range s.cfg.PredefinedContacts {
		if models.NormalizeNumber(s.cfg.PredefinedContacts[i].Number) == normalized {
			predefined = &s.cfg.PredefinedContacts[i]
			break
		}
	}
	if predefined == nil {
		log.Warn("Toggle requested for a number that is not predefined")
		return false, fmt.Errorf("service: %w", ErrContactNotFound)
	}

	existing, err := s.repo.GetByNormalizedNumber(ctx, normalized)
	if err != nil {
		log.WithError(err).Error("Failed to look up predefined contact")
		return false, fmt.Errorf("service: could not toggle predefined contact: %w", err)
	}

	if existing != nil {
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			log.WithError(err).Error("Failed to remove predefined contact")
			return false, fmt.Errorf("service: could not toggle predefined contact: %w", err)
		}
		log.Info("Predefined contact removed")
		return false, nil
	}

	contact := &models.Contact{
		Name:     predefined.Name,
		Number:   predefined.Number,
		Verified: true,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		log.WithError(err).Error("Failed to add predefined contact")
		return false, fmt.Errorf("service: could not toggle predefined contact: %w", err)
	}
	log.Info("Predefined contact added")
	return true, nil
}

// TrustedNumbers возвращает дедуплицированный список номеров в порядке
// добавления, только строки номеров, пустые отфильтрованы
func (s *contactService) TrustedNumbers(ctx context.Context) ([]string, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list contacts: %w", err)
	}

	seen := make(map[string]bool, len(contacts))
	numbers := make([]string, 0, len(contacts))
	for _, c := range contacts {
		normalized := models.NormalizeNumber(c.Number)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		numbers = append(numbers, c.Number)
	}
	return numbers, nil
}

// Publish снимает снапшот TrustedNumbers в активный список, который читает
// конвейер рассылки. Правки после публикации не меняют активный набор.
func (s *contactService) Publish(ctx context.Context) ([]string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "contact",
		"method":  "Publish",
	})

	numbers, err := s.TrustedNumbers(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetTrustedSnapshot(ctx, numbers); err != nil {
		log.WithError(err).Error("Failed to publish trusted snapshot")
		return nil, fmt.Errorf("service: could not publish trusted contacts: %w", err)
	}
	log.WithField("count", len(numbers)).Info("Trusted contacts published")
	return numbers, nil
}

// ActiveNumbers возвращает последний опубликованный снапшот
func (s *contactService) ActiveNumbers(ctx context.Context) ([]string, error) {
	numbers, err := s.repo.GetTrustedSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not read trusted snapshot: %w", err)
	}
	return numbers, nil
}
