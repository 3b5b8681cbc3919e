package sms

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/safewords/safewords_backend/internal/config"
	"github.com/safewords/safewords_backend/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGateway поднимает httptest-сервер вместо реального шлюза
func newTestGateway(t *testing.T, handler http.HandlerFunc, secret string) *GatewayClient {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		SMSGatewayURL:     server.URL,
		SMSGatewaySecret:  secret,
		SMSGatewayTimeout: 5 * time.Second,
	}

	return NewGatewayClient(cfg, logger).(*GatewayClient)
}

func TestSendMany_SignsAndDeliversPayload(t *testing.T) {
	// Подготовка
	secret := "test-secret"
	var gotBody []byte
	var gotSignature string

	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/send", r.URL.Path)
		gotSignature = r.Header.Get("X-Gateway-Signature")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"result": "sent"})
	}, secret)

	// Действие
	outcome, err := client.SendMany(context.Background(), []string{"104", "107"}, "help")

	// Проверки: подпись считается от того же тела, что ушло на провод
	require.NoError(t, err)
	assert.Equal(t, models.SendSent, outcome)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(gotBody)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), gotSignature)

	var req sendRequest
	require.NoError(t, json.Unmarshal(gotBody, &req))
	assert.Equal(t, []string{"104", "107"}, req.Numbers)
	assert.Equal(t, "help", req.Message)
}

func TestSend_Non2xxIsFailureWithoutError(t *testing.T) {
	// Подготовка
	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, "")

	// Действие
	outcome, err := client.SendOne(context.Background(), "104", "help")

	// Проверки: отказ шлюза - обычный исход, а не ошибка транспорта
	require.NoError(t, err)
	assert.Equal(t, models.SendFailed, outcome)
}

func TestSend_UndecodableBodyIsUnknown(t *testing.T) {
	// Подготовка
	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	}, "")

	// Действие
	outcome, err := client.SendOne(context.Background(), "104", "help")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.SendUnknown, outcome)
}

func TestIsAvailable_RequiresConfiguredURL(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	client := NewGatewayClient(&config.Config{}, logger)
	assert.False(t, client.IsAvailable(context.Background()))
}
