package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/safewords/safewords_backend/internal/config"
	"github.com/safewords/safewords_backend/internal/models"
	"github.com/sirupsen/logrus"
)

// DispatchPublisher определяет контракт публикации заданий на рассылку.
// Рассылку выполняет фоновый воркер: обработчик жеста никогда не ждет отправки.
type DispatchPublisher interface {
	Publish(ctx context.Context, job models.DispatchJob) error
}

// PanicService определяет контракт машины паники: жест удержания, отменяемый
// отсчет, запуск рассылки и непрерывного трекинга по истечении отсчета
type PanicService interface {
	PressStart() error
	PressEnd()
	StartTracking(ctx context.Context) error
	StopTracking(ctx context.Context) error
	Exit(ctx context.Context) error
	Status(ctx context.Context) (*models.PanicStatus, error)
}

type panicService struct {
	contacts  ContactService
	location  LocationService
	publisher DispatchPublisher
	alerts    AlertRepository
	sms       SMSSender
	logger    *logrus.Logger
	cfg       *config.Config

	mu    sync.Mutex
	state models.PanicState
	timer *time.Timer
	watch LocationWatch
}

func NewPanicService(
	contacts ContactService,
	location LocationService,
	publisher DispatchPublisher,
	alerts AlertRepository,
	sms SMSSender,
	logger *logrus.Logger,
	cfg *config.Config,
) PanicService {
	return &panicService{
		contacts:  contacts,
		location:  location,
		publisher: publisher,
		alerts:    alerts,
		sms:       sms,
		logger:    logger,
		cfg:       cfg,
		state:     models.PanicIdle,
	}
}

// PressStart начинает отсчет. Валиден только из Idle; никаких промежуточных
// тиков - одно отложенное действие.
func (s *panicService) PressStart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.PanicIdle {
		return fmt.Errorf("service: %w", ErrPanicBusy)
	}
	s.state = models.PanicCounting
	s.timer = time.AfterFunc(s.cfg.PanicCountdown, s.countdownExpired)

	s.logger.WithFields(logrus.Fields{
		"service":   "panic",
		"method":    "PressStart",
		"countdown": s.cfg.PanicCountdown,
	}).Info("Panic countdown started")
	return nil
}

// PressEnd - отпускание до истечения отсчета. Отменяет таймер и возвращает
// Idle без каких-либо наблюдаемых эффектов: это штатный выход при случайном
// касании.
func (s *panicService) PressEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.PanicCounting {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.state = models.PanicIdle

	s.logger.WithFields(logrus.Fields{
		"service": "panic",
		"method":  "PressEnd",
	}).Info("Panic countdown cancelled")
}

// countdownExpired выполняется по истечении отсчета: (a) обновить снапшот
// контактов, (b) опубликовать задание на рассылку с текущими координатами,
// (c) запустить трекинг. Состояние возвращается в Idle сразу после
// инициирования - сама рассылка идет в фоне и с этого момента не отменяется.
func (s *panicService) countdownExpired() {
	s.mu.Lock()
	if s.state != models.PanicCounting {
		s.mu.Unlock()
		return
	}
	s.state = models.PanicDispatching
	s.timer = nil
	s.mu.Unlock()

	log := s.logger.WithFields(logrus.Fields{
		"service": "panic",
		"method":  "countdownExpired",
	})
	log.Warn("Panic countdown expired, dispatching emergency alert")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	numbers, err := s.contacts.ActiveNumbers(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to refresh contact snapshot")
		numbers = nil
	}

	var fix *models.LocationFix
	if s.location.Permission() == models.PermissionGranted {
		fix, err = s.location.CurrentFix(ctx)
		if err != nil {
			log.WithError(err).Warn("Location unavailable, dispatching without a fix")
			fix = s.location.LastFix()
		}
	} else {
		fix = s.location.LastFix()
	}

	job := models.DispatchJob{
		ID:          uuid.New(),
		Numbers:     numbers,
		Fix:         fix,
		RequestedAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, job); err != nil {
		log.WithError(err).Error("Failed to publish dispatch job")
	}

	if err := s.beginTracking(ctx); err != nil {
		log.WithError(err).Warn("Could not start tracking after dispatch")
	}

	s.mu.Lock()
	s.state = models.PanicIdle
	s.mu.Unlock()
}

// StartTracking запускает непрерывный трекинг. Требует уже выданного
// разрешения на геолокацию; повторный запуск - no-op.
func (s *panicService) StartTracking(ctx context.Context) error {
	return s.beginTracking(ctx)
}

func (s *panicService) beginTracking(ctx context.Context) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "panic",
		"method":  "StartTracking",
	})

	s.mu.Lock()
	if s.watch != nil {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if s.location.Permission() != models.PermissionGranted {
		log.Warn("Tracking requires location permission")
		return fmt.Errorf("service: %w", ErrPermissionDenied)
	}

	watch, err := s.location.Watch(func(fix models.LocationFix) {
		s.appendAlert(context.Background(), "Location update", &fix)
	})
	if err != nil {
		log.WithError(err).Error("Failed to start location watch")
		return fmt.Errorf("service: could not start tracking: %w", err)
	}

	s.mu.Lock()
	if s.watch != nil {
		// Гонка двух запусков: вторая подписка лишняя
		s.mu.Unlock()
		watch.Stop()
		return nil
	}
	s.watch = watch
	s.mu.Unlock()

	s.appendAlert(ctx, "Tracking started", s.location.LastFix())
	log.Info("Tracking started")
	return nil
}

// StopTracking останавливает трекинг и пишет запись в журнал.
// Остановка без активной подписки - no-op без записи.
func (s *panicService) StopTracking(ctx context.Context) error {
	s.mu.Lock()
	watch := s.watch
	s.watch = nil
	s.mu.Unlock()

	if watch == nil {
		return nil
	}
	watch.Stop()

	s.appendAlert(ctx, "Tracking stopped", nil)
	s.logger.WithFields(logrus.Fields{
		"service": "panic",
		"method":  "StopTracking",
	}).Info("Tracking stopped")
	return nil
}

// Exit - защитная очистка при возврате к маскировке: останавливает трекинг,
// если тот активен, и всегда завершается успешно
func (s *panicService) Exit(ctx context.Context) error {
	if err := s.StopTracking(ctx); err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "panic",
			"method":  "Exit",
		}).WithError(err).Warn("Failed to stop tracking on exit")
	}
	s.PressEnd()
	return nil
}

// Status возвращает срез состояния экстренного экрана
func (s *panicService) Status(ctx context.Context) (*models.PanicStatus, error) {
	numbers, err := s.contacts.ActiveNumbers(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	state := s.state
	tracking := s.watch != nil
	s.mu.Unlock()

	return &models.PanicStatus{
		State:        state,
		Tracking:     tracking,
		Permission:   s.location.Permission(),
		LastFix:      s.location.LastFix(),
		ContactCount: len(numbers),
		SMSAvailable: s.sms.IsAvailable(ctx),
	}, nil
}

// appendAlert пишет запись журнала best-effort: сбой хранилища логируется
// и не мешает остальному
func (s *panicService) appendAlert(ctx context.Context, message string, fix *models.LocationFix) {
	if err := s.alerts.Append(ctx, message, fix); err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "panic",
			"message": message,
		}).WithError(err).Error("Failed to append alert entry")
	}
}
