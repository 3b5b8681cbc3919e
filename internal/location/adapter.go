package location

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/safewords/safewords_backend/internal/config"
	"github.com/safewords/safewords_backend/internal/models"
	"github.com/safewords/safewords_backend/internal/service"
	"github.com/sirupsen/logrus"
)

// Adapter - реализация service.LocationService поверх внешнего провайдера
// позиционирования. Держит состояние разрешения, последнее известное
// измерение и единственную активную подписку на обновления.
type Adapter struct {
	cfg        *config.Config
	logger     *logrus.Logger
	httpClient *http.Client

	mu          sync.Mutex
	permission  models.PermissionState
	lastFix     *models.LocationFix
	watchActive bool
}

func NewAdapter(cfg *config.Config, logger *logrus.Logger) *Adapter {
	return &Adapter{
		cfg:    cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: cfg.LocationProviderTimeout,
		},
		permission: models.PermissionUnknown,
	}
}

type permissionResponse struct {
	Status string `json:"status"`
}

type positionResponse struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// RequestPermission запрашивает разрешение у провайдера. Состояние меняется
// только результатом запроса; при Granted сразу берется одно измерение.
func (a *Adapter) RequestPermission(ctx context.Context) (models.PermissionState, error) {
	log := a.logger.WithFields(logrus.Fields{
		"component": "location",
		"method":    "RequestPermission",
	})

	if a.cfg.LocationProviderURL == "" {
		return models.PermissionUnknown, fmt.Errorf("location provider is not configured: %w", service.ErrLocationUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.cfg.LocationProviderURL+"/permission", nil)
	if err != nil {
		return models.PermissionUnknown, fmt.Errorf("failed to create permission request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("Permission request failed")
		return models.PermissionUnknown, fmt.Errorf("permission request failed: %w", service.ErrLocationUnavailable)
	}
	defer resp.Body.Close()

	var result permissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.WithError(err).Error("Failed to decode permission response")
		return models.PermissionUnknown, fmt.Errorf("invalid permission response: %w", service.ErrLocationUnavailable)
	}

	state := models.PermissionDenied
	if result.Status == "granted" {
		state = models.PermissionGranted
	}

	a.mu.Lock()
	a.permission = state
	a.mu.Unlock()

	log.WithField("state", state).Info("Location permission updated")

	if state == models.PermissionGranted {
		if _, err := a.CurrentFix(ctx); err != nil {
			log.WithError(err).Warn("Initial position fix failed")
		}
	}
	return state, nil
}

// Permission возвращает последнее известное состояние разрешения
func (a *Adapter) Permission() models.PermissionState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.permission
}

// CurrentFix запрашивает свежее измерение координат у провайдера
func (a *Adapter) CurrentFix(ctx context.Context) (*models.LocationFix, error) {
	if a.cfg.LocationProviderURL == "" {
		return nil, fmt.Errorf("location provider is not configured: %w", service.ErrLocationUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", a.cfg.LocationProviderURL+"/position", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create position request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("position request failed: %w", service.ErrLocationUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("position request returned status %d: %w", resp.StatusCode, service.ErrLocationUnavailable)
	}

	var result positionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("invalid position response: %w", service.ErrLocationUnavailable)
	}

	fix := &models.LocationFix{
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
		Timestamp: result.Timestamp,
	}
	if fix.Timestamp.IsZero() {
		fix.Timestamp = time.Now().UTC()
	}

	a.mu.Lock()
	a.lastFix = fix
	a.mu.Unlock()
	return fix, nil
}

// LastFix возвращает последнее известное измерение или nil
func (a *Adapter) LastFix() *models.LocationFix {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastFix
}

// Watch начинает непрерывные обновления: опрос провайдера с интервалом
// TRACKING_INTERVAL, callback вызывается для первого измерения и далее при
// смещении не меньше TRACKING_MIN_DISTANCE_M. Вторая подписка без остановки
// первой - ошибка вызывающего.
func (a *Adapter) Watch(onUpdate func(models.LocationFix)) (service.LocationWatch, error) {
	a.mu.Lock()
	if a.watchActive {
		a.mu.Unlock()
		return nil, fmt.Errorf("location watch is already active")
	}
	a.watchActive = true
	a.mu.Unlock()

	w := &watch{
		adapter:  a,
		onUpdate: onUpdate,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

type watch struct {
	adapter  *Adapter
	onUpdate func(models.LocationFix)
	done     chan struct{}
	stopOnce sync.Once
}

func (w *watch) run() {
	a := w.adapter
	log := a.logger.WithField("component", "location_watch")

	ticker := time.NewTicker(a.cfg.TrackingInterval)
	defer ticker.Stop()

	var lastEmitted *models.LocationFix
	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), a.cfg.LocationProviderTimeout)
			fix, err := a.CurrentFix(ctx)
			cancel()
			if err != nil {
				log.WithError(err).Warn("Position poll failed")
				continue
			}
			if lastEmitted != nil && haversineMeters(lastEmitted, fix) < a.cfg.TrackingMinDistanceM {
				continue
			}
			lastEmitted = fix
			w.onUpdate(*fix)
		}
	}
}

// Stop идемпотентен: повторная остановка - no-op
func (w *watch) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.adapter.mu.Lock()
		w.adapter.watchActive = false
		w.adapter.mu.Unlock()
	})
}

// haversineMeters - расстояние между двумя измерениями в метрах
func haversineMeters(a, b *models.LocationFix) float64 {
	const earthRadiusM = 6371000.0

	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(h))
}
