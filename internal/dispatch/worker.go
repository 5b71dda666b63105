package dispatch

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Cyros-Sachin/Rescue-app/internal/config"
	"github.com/Cyros-Sachin/Rescue-app/internal/models"
)

// Worker - фоновый обработчик очереди уведомлений о назначениях
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *Worker {
	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.NotifyTimeout,
		},
	}
}

// Start запускает горутину для обработки очереди уведомлений
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting dispatch notification worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping dispatch notification worker.")
				return
			default:
				// BRPop - блокирующее извлечение из правой части списка (очереди),
				// 0 означает бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, dispatchQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop dispatch record from Redis")
					time.Sleep(w.cfg.NotifyTimeout)
					continue
				}

				// result[0] - ключ, result[1] - значение
				payload := result[1]
				var record models.DispatchRecord
				if err := json.Unmarshal([]byte(payload), &record); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal dispatch record from Redis")
					continue
				}

				w.deliver(ctx, record, payload)
			}
		}
	}()
}

func (w *Worker) deliver(ctx context.Context, record models.DispatchRecord, rawPayload string) {
	log := w.logger.WithField("incident_id", record.IncidentID).WithField("teams", len(record.AssignedResources))
	log.Debug("Delivering dispatch record...")

	if w.cfg.NotifyWebhookURL == "" {
		log.Warn("Notification webhook URL is not configured. Skipping delivery.")
		return
	}

	maxRetries := w.cfg.NotifyMaxRetries
	baseDelay := w.cfg.NotifyBaseDelay

	for i := 0; i < maxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, "POST", w.cfg.NotifyWebhookURL, bytes.NewBufferString(rawPayload))
		if err != nil {
			log.WithError(err).Errorf("Failed to create notification request. Retries left: %d", maxRetries-1-i)
			continue
		}

		req.Header.Set("Content-Type", "application/json")

		// HMAC подпись, если NOTIFY_WEBHOOK_SECRET задан
		if w.cfg.NotifyWebhookSecret != "" {
			signature := generateHMACSHA256(rawPayload, w.cfg.NotifyWebhookSecret)
			req.Header.Set("X-Webhook-Signature", signature)
		}

		resp, err := w.httpClient.Do(req)
		if err != nil {
			log.WithError(err).Warnf("Failed to deliver dispatch record. Retrying in %v. Retries left: %d", baseDelay, maxRetries-1-i)
			time.Sleep(baseDelay)
			baseDelay *= 2
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			log.Info("Dispatch record delivered successfully.")
			return
		}

		log.Warnf("Dispatch delivery failed with status code %d. Retrying in %v. Retries left: %d", resp.StatusCode, baseDelay, maxRetries-1-i)
		time.Sleep(baseDelay)
		baseDelay *= 2
	}

	log.Errorf("Failed to deliver dispatch record after %d retries.", maxRetries)
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
