package v1

import (
	"time"

	"github.com/google/uuid"
)

// GateCheckRequest DTO для проверки ввода калькуляторного шлюза
// @Description DTO для проверки ввода калькуляторного шлюза
type GateCheckRequest struct {
	Digits string `json:"digits" validate:"required,max=64"`
}

// GateCheckResponse DTO для ответа шлюза: авторизация либо результат
// вычисления для дисплея калькулятора
type GateCheckResponse struct {
	Authorized bool   `json:"authorized"`
	Result     string `json:"result,omitempty"`
}

// ChangeCodeRequest DTO для смены кода доступа
// @Description DTO для смены кода доступа
type ChangeCodeRequest struct {
	Current string `json:"current" validate:"required"`
	Next    string `json:"next" validate:"required"`
	Confirm string `json:"confirm" validate:"required"`
}

// ContactRequest DTO для создания/обновления контакта
// @Description DTO для создания/обновления контакта
type ContactRequest struct {
	Name   string `json:"name,omitempty" validate:"max=255"`
	Number string `json:"number" validate:"required,max=32"`
}

// ContactResponse DTO для ответа с информацией о контакте
// @Description DTO для ответа с информацией о контакте
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Number    string    `json:"number"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PredefinedContactResponse DTO для фиксированного экстренного номера
type PredefinedContactResponse struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Added  bool   `json:"added"`
}

// TogglePredefinedRequest DTO для переключения фиксированного номера
type TogglePredefinedRequest struct {
	Number string `json:"number" validate:"required,max=32"`
}

// PublishResponse DTO для ответа публикации доверенного списка
type PublishResponse struct {
	Numbers []string `json:"numbers"`
	Count   int      `json:"count"`
}

// VerificationRequest DTO для запроса кода верификации
// @Description DTO для запроса кода верификации
type VerificationRequest struct {
	Number    string     `json:"number" validate:"required,max=32"`
	Name      string     `json:"name,omitempty" validate:"max=255"`
	EditingID *uuid.UUID `json:"editing_id,omitempty"`
}

// VerificationSubmitRequest DTO для проверки кода верификации
type VerificationSubmitRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// AlertResponse DTO для записи журнала тревог
// @Description DTO для записи журнала тревог
type AlertResponse struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LocationResponse DTO для измерения координат
type LocationResponse struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// PermissionResponse DTO для состояния разрешения на геолокацию
type PermissionResponse struct {
	State string `json:"state"`
}

// StatusResponse DTO для среза состояния экстренного экрана
// @Description DTO для среза состояния экстренного экрана
type StatusResponse struct {
	State        string            `json:"state"`
	Tracking     bool              `json:"tracking"`
	Permission   string            `json:"permission"`
	LastFix      *LocationResponse `json:"last_fix,omitempty"`
	ContactCount int               `json:"contact_count"`
	SMSAvailable bool              `json:"sms_available"`
}
