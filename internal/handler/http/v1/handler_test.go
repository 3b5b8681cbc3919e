package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/safewords/safewords_backend/internal/config"
	"github.com/safewords/safewords_backend/internal/models"
	"github.com/safewords/safewords_backend/internal/service"
	"github.com/safewords/safewords_backend/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type handlerMocks struct {
	access       *mocks.MockAccessService
	contacts     *mocks.MockContactService
	verification *mocks.MockVerificationService
	panicSvc     *mocks.MockPanicService
	alerts       *mocks.MockAlertService
	location     *mocks.MockLocationService
}

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*handlerMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := &handlerMocks{
		access:       mocks.NewMockAccessService(ctrl),
		contacts:     mocks.NewMockContactService(ctrl),
		verification: mocks.NewMockVerificationService(ctrl),
		panicSvc:     mocks.NewMockPanicService(ctrl),
		alerts:       mocks.NewMockAlertService(ctrl),
		location:     mocks.NewMockLocationService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		DefaultAccessCode: "1234",
	}

	handler := NewHandler(m.access, m.contacts, m.verification, m.panicSvc, m.alerts, m.location, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterSystemRoutes(api)
	handler.RegisterRoutes(api)

	return m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGateCheck_Authorized(t *testing.T) {
	m, router := newTestHandler(t)

	m.access.EXPECT().Check(gomock.Any(), "1234").Return(true, "", nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/gate/check", bytes.NewBufferString(`{"digits":"1234"}`))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp GateCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Authorized)
	assert.Empty(t, resp.Result)
}

func TestGateCheck_MismatchReturnsCalculatorResult(t *testing.T) {
	m, router := newTestHandler(t)

	m.access.EXPECT().Check(gomock.Any(), "12+3*4").Return(false, "24", nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/gate/check", bytes.NewBufferString(`{"digits":"12+3*4"}`))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp GateCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Authorized)
	assert.Equal(t, "24", resp.Result)
}

func TestGateCheck_InvalidJSON(t *testing.T) {
	m, router := newTestHandler(t)

	m.access.EXPECT().Check(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/gate/check", bytes.NewBufferString(`{"digits":`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestChangeAccessCode_Success(t *testing.T) {
	m, router := newTestHandler(t)

	m.access.EXPECT().ChangeCode(gomock.Any(), "1234", "5678", "5678").Return(nil).Times(1)

	w := makeRequest(router, "PUT", "/api/v1/gate/code", bytes.NewBufferString(`{"current":"1234","next":"5678","confirm":"5678"}`))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestChangeAccessCode_Rejected(t *testing.T) {
	m, router := newTestHandler(t)

	m.access.EXPECT().
		ChangeCode(gomock.Any(), "1234", "5678", "8765").
		Return(fmt.Errorf("service: %w", service.ErrInvalidAccessCodeChange)).Times(1)

	w := makeRequest(router, "PUT", "/api/v1/gate/code", bytes.NewBufferString(`{"current":"1234","next":"5678","confirm":"8765"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateContact_Success(t *testing.T) {
	m, router := newTestHandler(t)
	contactID := uuid.New()

	m.contacts.EXPECT().
		AddOrUpdate(gomock.Any(), gomock.Any()).
		Return(&models.Contact{
			ID:        contactID,
			Name:      "Anna",
			Number:    "+36201234567",
			Verified:  true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/contacts", bytes.NewBufferString(`{"name":"Anna","number":"+36201234567"}`))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, contactID, resp.ID)
	assert.True(t, resp.Verified)
}

func TestCreateContact_Duplicate(t *testing.T) {
	m, router := newTestHandler(t)

	m.contacts.EXPECT().
		AddOrUpdate(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("service: %w", service.ErrDuplicateContact)).Times(1)

	w := makeRequest(router, "POST", "/api/v1/contacts", bytes.NewBufferString(`{"name":"Copy","number":"+36201234567"}`))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateContact_MissingNumber(t *testing.T) {
	m, router := newTestHandler(t)

	m.contacts.EXPECT().AddOrUpdate(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/contacts", bytes.NewBufferString(`{"name":"Anna"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteContact_NotFound(t *testing.T) {
	m, router := newTestHandler(t)
	contactID := uuid.New()

	m.contacts.EXPECT().
		Remove(gomock.Any(), contactID).
		Return(fmt.Errorf("service: %w", service.ErrContactNotFound)).Times(1)

	w := makeRequest(router, "DELETE", "/api/v1/contacts/"+contactID.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteContact_InvalidID(t *testing.T) {
	m, router := newTestHandler(t)

	m.contacts.EXPECT().Remove(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "DELETE", "/api/v1/contacts/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTogglePredefined_Added(t *testing.T) {
	m, router := newTestHandler(t)

	m.contacts.EXPECT().TogglePredefined(gomock.Any(), "104").Return(true, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/contacts/predefined/toggle", bytes.NewBufferString(`{"number":"104"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"added":true`)
}

func TestPublishContacts_Success(t *testing.T) {
	m, router := newTestHandler(t)

	m.contacts.EXPECT().Publish(gomock.Any()).Return([]string{"+36201234567", "104"}, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/contacts/publish", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp PublishResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestRequestVerification_Accepted(t *testing.T) {
	m, router := newTestHandler(t)

	m.verification.EXPECT().
		RequestCode(gomock.Any(), "+36201234567", "Anna", gomock.Nil()).
		Return(nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/verification/request", bytes.NewBufferString(`{"number":"+36201234567","name":"Anna"}`))

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestRequestVerification_SMSUnavailable(t *testing.T) {
	m, router := newTestHandler(t)

	m.verification.EXPECT().
		RequestCode(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("service: %w", service.ErrSMSUnavailable)).Times(1)

	w := makeRequest(router, "POST", "/api/v1/verification/request", bytes.NewBufferString(`{"number":"+36201234567"}`))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSubmitVerification_Mismatch(t *testing.T) {
	m, router := newTestHandler(t)

	m.verification.EXPECT().
		SubmitCode(gomock.Any(), "123456").
		Return(nil, fmt.Errorf("service: %w", service.ErrVerificationMismatch)).Times(1)

	w := makeRequest(router, "POST", "/api/v1/verification/submit", bytes.NewBufferString(`{"code":"123456"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitVerification_MalformedCode(t *testing.T) {
	m, router := newTestHandler(t)

	m.verification.EXPECT().SubmitCode(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/verification/submit", bytes.NewBufferString(`{"code":"12a4"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPanicPress_Accepted(t *testing.T) {
	m, router := newTestHandler(t)

	m.panicSvc.EXPECT().PressStart().Return(nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/panic/press", nil)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestPanicPress_Busy(t *testing.T) {
	m, router := newTestHandler(t)

	m.panicSvc.EXPECT().PressStart().Return(fmt.Errorf("service: %w", service.ErrPanicBusy)).Times(1)

	w := makeRequest(router, "POST", "/api/v1/panic/press", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPanicRelease_NoContent(t *testing.T) {
	m, router := newTestHandler(t)

	m.panicSvc.EXPECT().PressEnd().Times(1)

	w := makeRequest(router, "POST", "/api/v1/panic/release", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPanicStatus_Success(t *testing.T) {
	m, router := newTestHandler(t)

	m.panicSvc.EXPECT().Status(gomock.Any()).Return(&models.PanicStatus{
		State:        models.PanicIdle,
		Tracking:     true,
		Permission:   models.PermissionGranted,
		LastFix:      &models.LocationFix{Latitude: 47.5, Longitude: 19.05, Timestamp: time.Now()},
		ContactCount: 2,
		SMSAvailable: true,
	}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/panic/status", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(models.PanicIdle), resp.State)
	assert.True(t, resp.Tracking)
	assert.Equal(t, 2, resp.ContactCount)
	require.NotNil(t, resp.LastFix)
}

func TestPanicExit_AlwaysNoContent(t *testing.T) {
	m, router := newTestHandler(t)

	m.panicSvc.EXPECT().Exit(gomock.Any()).Return(nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/panic/exit", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestStartTracking_PermissionDenied(t *testing.T) {
	m, router := newTestHandler(t)

	m.panicSvc.EXPECT().
		StartTracking(gomock.Any()).
		Return(fmt.Errorf("service: %w", service.ErrPermissionDenied)).Times(1)

	w := makeRequest(router, "POST", "/api/v1/tracking/start", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStopTracking_NoContent(t *testing.T) {
	m, router := newTestHandler(t)

	m.panicSvc.EXPECT().StopTracking(gomock.Any()).Return(nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/tracking/stop", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestPermission_Granted(t *testing.T) {
	m, router := newTestHandler(t)

	m.location.EXPECT().RequestPermission(gomock.Any()).Return(models.PermissionGranted, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/location/permission", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(models.PermissionGranted))
}

func TestCurrentLocation_NoData(t *testing.T) {
	m, router := newTestHandler(t)

	m.location.EXPECT().LastFix().Return(nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/location/current", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAlerts_WithLimit(t *testing.T) {
	m, router := newTestHandler(t)

	m.alerts.EXPECT().
		History(gomock.Any(), 5).
		Return([]*models.AlertEntry{
			{ID: 2, Message: "Tracking stopped", CreatedAt: time.Now()},
			{ID: 1, Message: "Alert sent to 2 contacts", CreatedAt: time.Now()},
		}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/alerts?limit=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*AlertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, int64(2), resp[0].ID)
}

func TestHealthCheck(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestAPIKeyAuthMiddleware_ProtectsRoutesButNotHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := &handlerMocks{
		access:       mocks.NewMockAccessService(ctrl),
		contacts:     mocks.NewMockContactService(ctrl),
		verification: mocks.NewMockVerificationService(ctrl),
		panicSvc:     mocks.NewMockPanicService(ctrl),
		alerts:       mocks.NewMockAlertService(ctrl),
		location:     mocks.NewMockLocationService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{APIKeys: []string{"test-api-key"}}
	handler := NewHandler(m.access, m.contacts, m.verification, m.panicSvc, m.alerts, m.location, logger, cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterSystemRoutes(api)
	api.Use(APIKeyAuthMiddleware(cfg, logger))
	handler.RegisterRoutes(api)

	// Health открыт без ключа
	w := makeRequest(router, "GET", "/api/v1/system/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Остальные маршруты без ключа закрыты
	w = makeRequest(router, "GET", "/api/v1/contacts", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// С ключом в заголовке запрос проходит до сервиса
	m.contacts.EXPECT().List(gomock.Any()).Return([]*models.Contact{}, nil).Times(1)
	req := httptest.NewRequest("GET", "/api/v1/contacts", nil)
	req.Header.Set("X-API-Key", "test-api-key")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Bearer-форма тоже принимается
	m.contacts.EXPECT().List(gomock.Any()).Return([]*models.Contact{}, nil).Times(1)
	req = httptest.NewRequest("GET", "/api/v1/contacts", nil)
	req.Header.Set("Authorization", "Bearer test-api-key")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
