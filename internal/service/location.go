package service

import (
	"context"

	"github.com/safewords/safewords_backend/internal/models"
)

// LocationWatch - подписка на непрерывные обновления координат.
// Stop идемпотентен: повторная остановка - no-op, не ошибка.
type LocationWatch interface {
	Stop()
}

// LocationService определяет контракт адаптера геолокации. Ошибки разрешений
// и позиционирования сообщаются как ErrPermissionDenied/ErrLocationUnavailable
// и никогда не роняют машину паники: та деградирует до "нет данных о
// местоположении".
type LocationService interface {
	// RequestPermission запрашивает разрешение у платформы; при Granted
	// сразу берет одно измерение координат
	RequestPermission(ctx context.Context) (models.PermissionState, error)
	// Permission возвращает последнее известное состояние разрешения
	Permission() models.PermissionState
	// CurrentFix запрашивает свежее измерение у провайдера
	CurrentFix(ctx context.Context) (*models.LocationFix, error)
	// LastFix возвращает последнее известное измерение или nil
	LastFix() *models.LocationFix
	// Watch начинает непрерывные обновления; одновременно допустима
	// только одна подписка
	Watch(onUpdate func(models.LocationFix)) (LocationWatch, error)
}
