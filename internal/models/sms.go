package models

// SendOutcome - результат операции отправки SMS, как его сообщает шлюз
type SendOutcome string

const (
	// SendSent - шлюз подтвердил отправку
	SendSent SendOutcome = "sent"
	// SendFailed - шлюз сообщил об отказе
	SendFailed SendOutcome = "failed"
	// SendUnknown - шлюз принял сообщение, итог неоднозначен
	SendUnknown SendOutcome = "unknown"
)
