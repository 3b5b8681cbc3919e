package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"github.com/safewords/safewords_backend/internal/models"
	"github.com/sirupsen/logrus"
)

// SMSSender определяет контракт SMS-возможности платформы.
// SendMany - групповая отправка одним сообщением, SendOne используется
// последовательным fallback-циклом конвейера рассылки.
type SMSSender interface {
	IsAvailable(ctx context.Context) bool
	SendMany(ctx context.Context, numbers []string, text string) (models.SendOutcome, error)
	SendOne(ctx context.Context, number string, text string) (models.SendOutcome, error)
}

// VerificationService определяет контракт процесса верификации номера перед
// включением его в доверенный список
type VerificationService interface {
	RequestCode(ctx context.Context, number, name string, editingID *uuid.UUID) error
	SubmitCode(ctx context.Context, code string) (*models.Contact, error)
	Cancel()
	State() models.VerificationState
}

type verificationService struct {
	sms      SMSSender
	contacts ContactService
	logger   *logrus.Logger

	mu      sync.Mutex
	session *models.VerificationSession
}

func NewVerificationService(sms SMSSender, contacts ContactService, logger *logrus.Logger) VerificationService {
	return &verificationService{
		sms:      sms,
		contacts: contacts,
		logger:   logger,
	}
}

// generateCode - равномерный 6-значный код из [100000, 999999]
func generateCode() string {
	return fmt.Sprintf("%06d", 100000+rand.IntN(900000))
}

// RequestCode генерирует одноразовый код и отправляет его на целевой номер.
// Код живет только в памяти; выпуск нового кода аннулирует предыдущий, даже
// если тот не был использован. Исход "unknown" считается успехом, чтобы не
// блокировать легитимные отправки.
func (s *verificationService) RequestCode(ctx context.Context, number, name string, editingID *uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "verification",
		"method":  "RequestCode",
		"number":  number,
	})

	if models.NormalizeNumber(number) == "" {
		return fmt.Errorf("service: %w", ErrInvalidNumber)
	}
	if !s.sms.IsAvailable(ctx) {
		log.Warn("SMS capability is not available")
		return fmt.Errorf("service: %w", ErrSMSUnavailable)
	}

	code := generateCode()
	outcome, err := s.sms.SendMany(ctx, []string{number}, fmt.Sprintf("Your SafeWords verification code: %s", code))
	if err != nil {
		log.WithError(err).Error("Failed to send verification code")
		return fmt.Errorf("service: failed to send verification code, please try again: %w", ErrSendFailed)
	}
	if outcome != models.SendSent && outcome != models.SendUnknown {
		log.WithField("outcome", outcome).Error("Verification SMS was not sent")
		return fmt.Errorf("service: failed to send verification code, please try again: %w", ErrSendFailed)
	}

	s.mu.Lock()
	s.session = &models.VerificationSession{
		TargetNumber:  number,
		ContactName:   name,
		GeneratedCode: code,
		EditingID:     editingID,
	}
	s.mu.Unlock()

	log.Info("Verification code sent")
	return nil
}

// SubmitCode сравнивает введенный код со сгенерированным (точное совпадение
// строк цифр). Несовпадение оставляет сессию живой, чтобы пользователь мог
// повторить ввод без повторной отправки. Совпадение передает
// верифицированный контакт хранилищу и закрывает сессию.
func (s *verificationService) SubmitCode(ctx context.Context, code string) (*models.Contact, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "verification",
		"method":  "SubmitCode",
	})

	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	if session == nil {
		log.Warn("Submit without a live verification session")
		return nil, fmt.Errorf("service: %w", ErrNoVerificationSession)
	}
	if code != session.GeneratedCode {
		log.Warn("Verification code mismatch")
		return nil, fmt.Errorf("service: %w", ErrVerificationMismatch)
	}

	contact := &models.Contact{
		Name:     session.ContactName,
		Number:   session.TargetNumber,
		Verified: true,
	}
	if session.EditingID != nil {
		contact.ID = *session.EditingID
	}
	if contact.Name == "" {
		contact.Name = fmt.Sprintf("Contact %s", models.NormalizeNumber(session.TargetNumber))
	}

	stored, err := s.contacts.AddOrUpdate(ctx, contact)
	if err != nil {
		log.WithError(err).Error("Failed to store verified contact")
		return nil, err
	}

	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	log.WithField("contact_id", stored.ID).Info("Contact verified successfully")
	return stored, nil
}

// Cancel закрывает сессию из любого состояния, сбрасывая код и цель
func (s *verificationService) Cancel() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
}

// State возвращает текущее состояние процесса верификации
func (s *verificationService) State() models.VerificationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		return models.VerificationCodeSent
	}
	return models.VerificationIdle
}
