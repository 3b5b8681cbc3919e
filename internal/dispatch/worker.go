package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/safewords/safewords_backend/internal/models"
	"github.com/sirupsen/logrus"
)

const popRetryDelay = 5 * time.Second

// Worker извлекает задания на рассылку из очереди Redis и выполняет конвейер
// в фоне. Начавшаяся рассылка не отменяется: экстренный сигнал в пути не
// должен быть отзываем последующим действием UI.
type Worker struct {
	redisClient *redis.Client
	pipeline    *Pipeline
	logger      *logrus.Logger
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, pipeline *Pipeline, logger *logrus.Logger) *Worker {
	return &Worker{
		redisClient: redisClient,
		pipeline:    pipeline,
		logger:      logger,
	}
}

// Start запускает горутину для обработки очереди рассылки
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting dispatch worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping dispatch worker.")
				return
			default:
				// BRPOP - блокирующее извлечение из правой части списка (очереди)
				// 0 означает бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, dispatchQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue // Контекст отменен, но не ошибка Redis
					}
					w.logger.WithError(err).Error("Failed to pop dispatch job from Redis")
					time.Sleep(popRetryDelay) // Ждем перед повторной попыткой
					continue
				}

				// result[0] - ключ, result[1] - значение
				var job models.DispatchJob
				if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal dispatch job from Redis")
					continue
				}

				w.processJob(ctx, job)
			}
		}
	}()
}

func (w *Worker) processJob(ctx context.Context, job models.DispatchJob) {
	log := w.logger.WithFields(logrus.Fields{
		"job_id":     job.ID,
		"recipients": len(job.Numbers),
	})
	log.Warn("Processing emergency dispatch job")

	report := w.pipeline.Dispatch(ctx, job.Numbers, job.Fix)

	log.WithFields(logrus.Fields{
		"outcome":   report.Outcome,
		"attempted": report.Attempted,
		"succeeded": report.Succeeded,
		"failed":    report.FailedNumbers,
	}).Info("Dispatch job completed")
}
