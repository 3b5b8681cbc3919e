package models

import "time"

// AlertEntry - запись журнала тревог. После добавления не изменяется;
// журнал хранится в порядке добавления и отдается от новых к старым.
type AlertEntry struct {
	ID        int64        `json:"id"`
	Message   string       `json:"message"`
	Location  *LocationFix `json:"location,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
