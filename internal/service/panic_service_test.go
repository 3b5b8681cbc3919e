package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/safewords/safewords_backend/internal/config"
	"github.com/safewords/safewords_backend/internal/models"
	"github.com/safewords/safewords_backend/internal/service"
	"github.com/safewords/safewords_backend/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type panicServiceMocks struct {
	contacts  *mocks.MockContactService
	location  *mocks.MockLocationService
	publisher *mocks.MockDispatchPublisher
	alerts    *mocks.MockAlertRepository
	sms       *mocks.MockSMSSender
}

// newTestPanicService — вспомогательная функция для создания сервиса с моками
// и коротким отсчетом, чтобы тесты не ждали реальные секунды
func newTestPanicService(t *testing.T, countdown time.Duration) (service.PanicService, *panicServiceMocks) {
	ctrl := gomock.NewController(t)
	m := &panicServiceMocks{
		contacts:  mocks.NewMockContactService(ctrl),
		location:  mocks.NewMockLocationService(ctrl),
		publisher: mocks.NewMockDispatchPublisher(ctrl),
		alerts:    mocks.NewMockAlertRepository(ctrl),
		sms:       mocks.NewMockSMSSender(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		PanicCountdown: countdown,
	}

	svc := service.NewPanicService(m.contacts, m.location, m.publisher, m.alerts, m.sms, logger, cfg)
	return svc, m
}

func TestPressEnd_CancelsCountdownWithoutSideEffects(t *testing.T) {
	// Подготовка: никаких ожиданий на publisher/alerts — любое обращение
	// после отмены провалит тест
	svc, _ := newTestPanicService(t, 50*time.Millisecond)

	// Действие
	require.NoError(t, svc.PressStart())
	svc.PressEnd()

	// Проверки: ждем дольше отсчета, рассылка не должна стартовать
	time.Sleep(150 * time.Millisecond)
}

func TestPressStart_RejectedWhileCounting(t *testing.T) {
	// Подготовка
	svc, _ := newTestPanicService(t, time.Minute)

	// Действие
	require.NoError(t, svc.PressStart())
	err := svc.PressStart()

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrPanicBusy)

	svc.PressEnd()
}

func TestCountdownExpiry_PublishesDispatchJobAndStartsTracking(t *testing.T) {
	// Подготовка
	svc, m := newTestPanicService(t, 20*time.Millisecond)
	fix := &models.LocationFix{Latitude: 47.4979, Longitude: 19.0402, Timestamp: time.Now()}
	numbers := []string{"+36201234567", "104"}
	watchMock := mocks.NewMockLocationWatch(gomock.NewController(t))

	dispatched := make(chan models.DispatchJob, 1)
	trackingStarted := make(chan struct{})

	// Ожидания
	m.contacts.EXPECT().ActiveNumbers(gomock.Any()).Return(numbers, nil).Times(1)
	m.location.EXPECT().Permission().Return(models.PermissionGranted).AnyTimes()
	m.location.EXPECT().CurrentFix(gomock.Any()).Return(fix, nil).Times(1)
	m.location.EXPECT().LastFix().Return(fix).AnyTimes()
	m.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job models.DispatchJob) error {
			dispatched <- job
			return nil
		}).Times(1)
	m.location.EXPECT().Watch(gomock.Any()).Return(watchMock, nil).Times(1)
	m.alerts.EXPECT().
		Append(gomock.Any(), "Tracking started", gomock.Any()).
		DoAndReturn(func(context.Context, string, *models.LocationFix) error {
			close(trackingStarted)
			return nil
		}).Times(1)

	// Действие: удержание не прерывается до истечения отсчета
	require.NoError(t, svc.PressStart())

	// Проверки
	select {
	case job := <-dispatched:
		assert.Equal(t, numbers, job.Numbers)
		require.NotNil(t, job.Fix)
		assert.Equal(t, fix.Latitude, job.Fix.Latitude)
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch job was not published")
	}

	select {
	case <-trackingStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("tracking did not start after dispatch")
	}
}

func TestCountdownExpiry_FallsBackToLastFix(t *testing.T) {
	// Подготовка
	svc, m := newTestPanicService(t, 20*time.Millisecond)
	lastFix := &models.LocationFix{Latitude: 47.5, Longitude: 19.05, Timestamp: time.Now()}
	dispatched := make(chan models.DispatchJob, 1)

	// Ожидания: разрешение не выдано — свежее измерение не запрашивается,
	// рассылка идет с последним известным, трекинг не стартует
	m.contacts.EXPECT().ActiveNumbers(gomock.Any()).Return([]string{"104"}, nil).Times(1)
	m.location.EXPECT().Permission().Return(models.PermissionDenied).AnyTimes()
	m.location.EXPECT().LastFix().Return(lastFix).AnyTimes()
	m.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job models.DispatchJob) error {
			dispatched <- job
			return nil
		}).Times(1)

	// Действие
	require.NoError(t, svc.PressStart())

	// Проверки
	select {
	case job := <-dispatched:
		require.NotNil(t, job.Fix)
		assert.Equal(t, lastFix.Latitude, job.Fix.Latitude)
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch job was not published")
	}
}

func TestStartTracking_RequiresPermission(t *testing.T) {
	// Подготовка
	svc, m := newTestPanicService(t, time.Second)

	// Ожидания
	m.location.EXPECT().Permission().Return(models.PermissionDenied).Times(1)

	// Действие
	err := svc.StartTracking(context.Background())

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}

func TestTracking_StartLogUpdateStop(t *testing.T) {
	// Подготовка
	svc, m := newTestPanicService(t, time.Second)
	ctrl := gomock.NewController(t)
	watchMock := mocks.NewMockLocationWatch(ctrl)
	fix := &models.LocationFix{Latitude: 47.4979, Longitude: 19.0402, Timestamp: time.Now()}

	var onUpdate func(models.LocationFix)

	// Ожидания
	m.location.EXPECT().Permission().Return(models.PermissionGranted).Times(1)
	m.location.EXPECT().LastFix().Return(fix).Times(1)
	m.location.EXPECT().
		Watch(gomock.Any()).
		DoAndReturn(func(cb func(models.LocationFix)) (service.LocationWatch, error) {
			onUpdate = cb
			return watchMock, nil
		}).Times(1)
	m.alerts.EXPECT().Append(gomock.Any(), "Tracking started", fix).Return(nil).Times(1)

	// Действие
	require.NoError(t, svc.StartTracking(context.Background()))

	// Повторный запуск — no-op, вторая подписка не создается
	require.NoError(t, svc.StartTracking(context.Background()))

	// Обновление координат пишется в журнал
	m.alerts.EXPECT().Append(gomock.Any(), "Location update", gomock.Any()).Return(nil).Times(1)
	onUpdate(*fix)

	// Остановка: подписка гасится, в журнале остается запись
	watchMock.EXPECT().Stop().Times(1)
	m.alerts.EXPECT().Append(gomock.Any(), "Tracking stopped", nil).Return(nil).Times(1)
	require.NoError(t, svc.StopTracking(context.Background()))

	// Повторная остановка — no-op без записи
	require.NoError(t, svc.StopTracking(context.Background()))
}

func TestExit_StopsTrackingAndAlwaysSucceeds(t *testing.T) {
	// Подготовка
	svc, m := newTestPanicService(t, time.Minute)
	ctrl := gomock.NewController(t)
	watchMock := mocks.NewMockLocationWatch(ctrl)
	fix := &models.LocationFix{Latitude: 47.5, Longitude: 19.05, Timestamp: time.Now()}

	m.location.EXPECT().Permission().Return(models.PermissionGranted).Times(1)
	m.location.EXPECT().LastFix().Return(fix).Times(1)
	m.location.EXPECT().Watch(gomock.Any()).Return(watchMock, nil).Times(1)
	m.alerts.EXPECT().Append(gomock.Any(), "Tracking started", fix).Return(nil).Times(1)
	require.NoError(t, svc.StartTracking(context.Background()))

	// Ожидания: выход гасит трекинг и отменяет незавершенный отсчет
	watchMock.EXPECT().Stop().Times(1)
	m.alerts.EXPECT().Append(gomock.Any(), "Tracking stopped", nil).Return(nil).Times(1)
	require.NoError(t, svc.PressStart())

	// Действие
	err := svc.Exit(context.Background())

	// Проверки
	require.NoError(t, err)

	status := statusOf(t, svc, m)
	assert.Equal(t, models.PanicIdle, status.State)
	assert.False(t, status.Tracking)
}

// statusOf снимает срез состояния с минимальными ожиданиями на моках
func statusOf(t *testing.T, svc service.PanicService, m *panicServiceMocks) *models.PanicStatus {
	t.Helper()

	m.contacts.EXPECT().ActiveNumbers(gomock.Any()).Return([]string{"104"}, nil).Times(1)
	m.location.EXPECT().Permission().Return(models.PermissionGranted).Times(1)
	m.location.EXPECT().LastFix().Return(nil).Times(1)
	m.sms.EXPECT().IsAvailable(gomock.Any()).Return(true).Times(1)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	return status
}
