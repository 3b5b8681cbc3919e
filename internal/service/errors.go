package service

import "errors"

// Ошибки уровня сервисов. Хэндлеры сопоставляют их с HTTP-статусами через
// errors.Is; ни одна из них не фатальна для процесса.
var (
	// ErrDuplicateContact - номер уже есть в доверенном списке
	ErrDuplicateContact = errors.New("contact with this number already exists")
	// ErrContactNotFound - контакт с таким id не найден
	ErrContactNotFound = errors.New("contact not found")
	// ErrInvalidNumber - номер пуст после нормализации
	ErrInvalidNumber = errors.New("phone number required")
	// ErrVerificationMismatch - введенный код не совпал со сгенерированным
	ErrVerificationMismatch = errors.New("invalid verification code")
	// ErrNoVerificationSession - нет живой сессии верификации
	ErrNoVerificationSession = errors.New("no verification session in progress")
	// ErrSMSUnavailable - SMS-шлюз не настроен или недоступен
	ErrSMSUnavailable = errors.New("sms capability unavailable")
	// ErrSendFailed - отправка SMS не удалась
	ErrSendFailed = errors.New("failed to send sms")
	// ErrPermissionDenied - нет разрешения на геолокацию
	ErrPermissionDenied = errors.New("location permission required")
	// ErrLocationUnavailable - провайдер позиционирования не дал координаты
	ErrLocationUnavailable = errors.New("location unavailable")
	// ErrInvalidAccessCodeChange - смена кода доступа отклонена, состояние не изменено
	ErrInvalidAccessCodeChange = errors.New("invalid access code change")
	// ErrPanicBusy - жест валиден только из состояния Idle
	ErrPanicBusy = errors.New("panic countdown already in progress")
)
