package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact - доверенный контакт, получающий экстренные сообщения
type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Number    string    `json:"number"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PredefinedStatus - фиксированный экстренный номер и признак того,
// включил ли его пользователь в доверенный список
type PredefinedStatus struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Added  bool   `json:"added"`
}

// NormalizeNumber приводит номер телефона к каноническому виду:
// остаются только цифры и ведущий "+". Идентичность контакта определяется
// нормализованным номером.
func NormalizeNumber(number string) string {
	var b strings.Builder
	for i, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
