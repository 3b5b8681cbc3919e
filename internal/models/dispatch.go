package models

import (
	"time"

	"github.com/google/uuid"
)

// DispatchOutcome - итоговая классификация попытки рассылки
type DispatchOutcome string

const (
	// DispatchSuccess - все получатели получили сообщение
	DispatchSuccess DispatchOutcome = "success"
	// DispatchPartial - часть отправок не удалась, неудачные номера перечислены
	DispatchPartial DispatchOutcome = "partial"
	// DispatchFailed - ни одна отправка не удалась
	DispatchFailed DispatchOutcome = "failed"
	// DispatchUnknown - шлюз принял сообщение, но итог доставки неизвестен
	DispatchUnknown DispatchOutcome = "unknown"
	// DispatchNoContacts - рассылка не выполнялась: нет активных контактов
	DispatchNoContacts DispatchOutcome = "no_contacts"
	// DispatchNoLocation - рассылка не выполнялась: нет данных о местоположении
	DispatchNoLocation DispatchOutcome = "no_location"
)

// DispatchReport - отчет о рассылке экстренного сообщения
type DispatchReport struct {
	Outcome       DispatchOutcome `json:"outcome"`
	Attempted     int             `json:"attempted"`
	Succeeded     int             `json:"succeeded"`
	FailedNumbers []string        `json:"failed_numbers,omitempty"`
}

// DispatchJob - задание на рассылку, публикуемое в очередь при срабатывании
// паники. Воркер выполняет конвейер рассылки в фоне.
type DispatchJob struct {
	ID          uuid.UUID    `json:"id"`
	Numbers     []string     `json:"numbers"`
	Fix         *LocationFix `json:"fix,omitempty"`
	RequestedAt time.Time    `json:"requested_at"`
}
