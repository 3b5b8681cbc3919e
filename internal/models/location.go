package models

import "time"

// PermissionState - состояние разрешения на геолокацию.
// Меняется только результатами запросов разрешения, никогда не выводится косвенно.
type PermissionState string

const (
	PermissionUnknown PermissionState = "unknown"
	PermissionDenied  PermissionState = "denied"
	PermissionGranted PermissionState = "granted"
)

// LocationFix - одиночное измерение координат
type LocationFix struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}
