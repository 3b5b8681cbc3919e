package sms

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/safewords/safewords_backend/internal/config"
	"github.com/safewords/safewords_backend/internal/models"
	"github.com/safewords/safewords_backend/internal/service"
	"github.com/sirupsen/logrus"
)

// GatewayClient - реализация service.SMSSender поверх внешнего SMS-шлюза.
// Шлюз принимает групповую отправку одним запросом; одиночная отправка
// используется fallback-циклом конвейера рассылки.
type GatewayClient struct {
	cfg        *config.Config
	logger     *logrus.Logger
	httpClient *http.Client
}

func NewGatewayClient(cfg *config.Config, logger *logrus.Logger) service.SMSSender {
	return &GatewayClient{
		cfg:    cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: cfg.SMSGatewayTimeout,
		},
	}
}

type sendRequest struct {
	Numbers []string `json:"numbers"`
	Message string   `json:"message"`
}

type sendResponse struct {
	Result string `json:"result"`
}

// IsAvailable сообщает, настроена ли SMS-возможность
func (c *GatewayClient) IsAvailable(ctx context.Context) bool {
	return c.cfg.SMSGatewayURL != ""
}

// SendMany отправляет одно сообщение группе получателей
func (c *GatewayClient) SendMany(ctx context.Context, numbers []string, text string) (models.SendOutcome, error) {
	return c.send(ctx, numbers, text)
}

// SendOne отправляет сообщение одному получателю
func (c *GatewayClient) SendOne(ctx context.Context, number string, text string) (models.SendOutcome, error) {
	return c.send(ctx, []string{number}, text)
}

func (c *GatewayClient) send(ctx context.Context, numbers []string, text string) (models.SendOutcome, error) {
	log := c.logger.WithFields(logrus.Fields{
		"component":  "sms_gateway",
		"recipients": len(numbers),
	})

	if c.cfg.SMSGatewayURL == "" {
		return models.SendFailed, fmt.Errorf("sms gateway is not configured")
	}

	payload, err := json.Marshal(sendRequest{Numbers: numbers, Message: text})
	if err != nil {
		return models.SendFailed, fmt.Errorf("failed to marshal sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.SMSGatewayURL+"/send", bytes.NewBuffer(payload))
	if err != nil {
		return models.SendFailed, fmt.Errorf("failed to create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Добавляем HMAC подпись, если SMS_GATEWAY_SECRET задан
	if c.cfg.SMSGatewaySecret != "" {
		req.Header.Set("X-Gateway-Signature", generateHMACSHA256(payload, c.cfg.SMSGatewaySecret))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("SMS gateway request failed")
		return models.SendFailed, fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warnf("SMS gateway responded with status code %d", resp.StatusCode)
		return models.SendFailed, nil
	}

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.WithError(err).Warn("Failed to decode SMS gateway response")
		// Шлюз принял запрос, но итог неизвестен
		return models.SendUnknown, nil
	}

	switch models.SendOutcome(result.Result) {
	case models.SendSent:
		return models.SendSent, nil
	case models.SendUnknown:
		return models.SendUnknown, nil
	default:
		return models.SendFailed, nil
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
