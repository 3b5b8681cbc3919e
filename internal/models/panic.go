package models

// PanicState - состояние машины паники.
// Idle - начальное состояние и состояние покоя после отмены или завершения.
type PanicState string

const (
	PanicIdle        PanicState = "idle"
	PanicCounting    PanicState = "counting"
	PanicDispatching PanicState = "dispatching"
)

// PanicStatus - срез состояния экстренного экрана
type PanicStatus struct {
	State        PanicState      `json:"state"`
	Tracking     bool            `json:"tracking"`
	Permission   PermissionState `json:"permission"`
	LastFix      *LocationFix    `json:"last_fix,omitempty"`
	ContactCount int             `json:"contact_count"`
	SMSAvailable bool            `json:"sms_available"`
}
