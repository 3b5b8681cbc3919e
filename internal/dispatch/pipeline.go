package dispatch

import (
	"context"
	"fmt"
	"strconv"

	"github.com/safewords/safewords_backend/internal/models"
	"github.com/safewords/safewords_backend/internal/service"
	"github.com/sirupsen/logrus"
)

// Pipeline - конвейер рассылки экстренного сообщения: сначала групповая
// отправка, при неудаче - последовательный перебор получателей по одному.
// Частичный отказ не прерывает перебор: неудача по контакту A не должна
// помешать успеху по контакту B.
type Pipeline struct {
	sms    service.SMSSender
	alerts service.AlertRepository
	logger *logrus.Logger
}

func NewPipeline(sms service.SMSSender, alerts service.AlertRepository, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		sms:    sms,
		alerts: alerts,
		logger: logger,
	}
}

// composeMessage встраивает координаты дословно, без дополнительного
// округления, и фиксированный суффикс приложения
func composeMessage(fix *models.LocationFix) string {
	return fmt.Sprintf(
		"EMERGENCY ALERT! I need immediate help! My location: %s, %s. Sent via SafeWords App",
		strconv.FormatFloat(fix.Latitude, 'f', -1, 64),
		strconv.FormatFloat(fix.Longitude, 'f', -1, 64),
	)
}

// Dispatch выполняет рассылку и возвращает отчет. Предусловия проверяет
// вызывающий; здесь только защитная обработка пустого списка и отсутствия
// координат - такие вызовы возвращают отчет без единой попытки отправки.
func (p *Pipeline) Dispatch(ctx context.Context, numbers []string, fix *models.LocationFix) *models.DispatchReport {
	log := p.logger.WithFields(logrus.Fields{
		"component":  "dispatch",
		"recipients": len(numbers),
	})

	if len(numbers) == 0 {
		log.Warn("Dispatch requested without any trusted contacts")
		return &models.DispatchReport{Outcome: models.DispatchNoContacts}
	}
	if fix == nil {
		log.Warn("Dispatch requested without location data")
		return &models.DispatchReport{Outcome: models.DispatchNoLocation}
	}

	message := composeMessage(fix)
	p.appendAlert(ctx, fmt.Sprintf("Initiating alert to %d contacts", len(numbers)), fix)

	report := p.send(ctx, numbers, message, log)
	p.appendAlert(ctx, terminalMessage(report), nil)
	return report
}

func (p *Pipeline) send(ctx context.Context, numbers []string, message string, log *logrus.Entry) *models.DispatchReport {
	report := &models.DispatchReport{Attempted: len(numbers)}

	// Групповая отправка одним сообщением, если шлюз ее поддерживает
	outcome, err := p.sms.SendMany(ctx, numbers, message)
	if err == nil && outcome == models.SendSent {
		log.Info("Group send succeeded")
		report.Outcome = models.DispatchSuccess
		report.Succeeded = len(numbers)
		return report
	}
	if err == nil && outcome == models.SendUnknown {
		// Шлюз принял сообщение, итог доставки неоднозначен
		log.Warn("Group send accepted with unknown delivery outcome")
		report.Outcome = models.DispatchUnknown
		report.Succeeded = len(numbers)
		return report
	}
	if err != nil {
		log.WithError(err).Warn("Group send faulted, falling back to individual sends")
	} else {
		log.WithField("outcome", outcome).Warn("Group send failed, falling back to individual sends")
	}

	// Последовательный перебор: отправка N+1 начинается только после
	// исхода отправки N, журнал пополняется по мере прохода
	for _, number := range numbers {
		outcome, err := p.sms.SendOne(ctx, number, message)
		if err != nil || outcome == models.SendFailed {
			if err != nil {
				log.WithError(err).WithField("number", number).Error("Individual send faulted")
			}
			report.FailedNumbers = append(report.FailedNumbers, number)
			p.appendAlert(ctx, fmt.Sprintf("Failed to send alert to %s", number), nil)
			continue
		}
		report.Succeeded++
		p.appendAlert(ctx, fmt.Sprintf("Alert sent to %s", number), nil)
	}

	switch {
	case report.Succeeded == report.Attempted:
		report.Outcome = models.DispatchSuccess
	case report.Succeeded == 0:
		report.Outcome = models.DispatchFailed
	default:
		report.Outcome = models.DispatchPartial
	}
	return report
}

// terminalMessage - итоговая запись журнала по отчету
func terminalMessage(report *models.DispatchReport) string {
	switch report.Outcome {
	case models.DispatchSuccess:
		return fmt.Sprintf("Alert sent to %d contacts", report.Succeeded)
	case models.DispatchUnknown:
		return fmt.Sprintf("Alert dispatched to %d contacts, delivery outcome unknown", report.Attempted)
	case models.DispatchPartial:
		return fmt.Sprintf("Alert partially sent: %d of %d (failed: %v)",
			report.Succeeded, report.Attempted, report.FailedNumbers)
	default:
		return "Failed to send emergency alert"
	}
}

// appendAlert пишет запись best-effort: сбой хранилища не должен помешать
// самой отправке
func (p *Pipeline) appendAlert(ctx context.Context, message string, fix *models.LocationFix) {
	if err := p.alerts.Append(ctx, message, fix); err != nil {
		p.logger.WithField("component", "dispatch").WithError(err).Error("Failed to append alert entry")
	}
}
