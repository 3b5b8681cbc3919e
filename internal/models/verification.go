package models

import "github.com/google/uuid"

// VerificationState - состояние процесса верификации номера
type VerificationState string

const (
	VerificationIdle     VerificationState = "idle"
	VerificationCodeSent VerificationState = "code_sent"
)

// VerificationSession - живая сессия верификации. Код хранится только в
// памяти и никогда не персистится; одновременно существует не более одной
// сессии, выпуск нового кода аннулирует предыдущий.
type VerificationSession struct {
	TargetNumber  string
	ContactName   string
	GeneratedCode string
	EditingID     *uuid.UUID
}
