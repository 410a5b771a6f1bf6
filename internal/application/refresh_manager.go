// Package application contains the refresh orchestration: gating, debounce,
// concurrent provider fan-out and audit record emission.
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/cdnflush/internal/domain/models"
	"github.com/turtacn/cdnflush/internal/domain/service"
	"github.com/turtacn/cdnflush/internal/infrastructure/cdn"
	"github.com/turtacn/cdnflush/internal/infrastructure/monitoring"
	"github.com/turtacn/cdnflush/pkg/errors"
	"github.com/turtacn/cdnflush/pkg/logger"
)

// FeatureGate reports whether the purge feature as a whole is switched on at
// the host level. It is checked before the per-settings enable flag.
type FeatureGate func() bool

// ProviderOutcome pairs a provider label with its purge result, for the
// synchronous manual-refresh path.
type ProviderOutcome struct {
	Provider string             `json:"provider"`
	Result   models.PurgeResult `json:"result"`
}

// RefreshManager is the entry point for every purge trigger. It validates
// enablement, filters debounced URLs, fans the remainder out to every enabled
// provider concurrently, and forwards one audit record per provider to the
// sink. No provider error ever escapes a refresh.
type RefreshManager struct {
	gate      FeatureGate
	settings  service.SettingsSource
	factory   *cdn.Factory
	sink      service.AuditSink
	debouncer *Debouncer
	metrics   *monitoring.Metrics
	logger    logger.Logger
	now       func() time.Time
}

// NewRefreshManager wires the orchestrator.
func NewRefreshManager(
	gate FeatureGate,
	settings service.SettingsSource,
	factory *cdn.Factory,
	sink service.AuditSink,
	debouncer *Debouncer,
	metrics *monitoring.Metrics,
	log logger.Logger,
) *RefreshManager {
	return &RefreshManager{
		gate:      gate,
		settings:  settings,
		factory:   factory,
		sink:      sink,
		debouncer: debouncer,
		metrics:   metrics,
		logger:    log.WithComponent("RefreshManager"),
		now:       time.Now,
	}
}

// Refresh purges the given URLs on every enabled provider. It blocks until
// all providers have settled but reports nothing back: every outcome,
// including adapter panics, becomes an audit record. Trigger paths that must
// not wait call it in a goroutine.
func (m *RefreshManager) Refresh(ctx context.Context, urls []string, trigger models.TriggerType, contentID, contentTitle string) {
	if len(urls) == 0 {
		return
	}

	if !m.gate() {
		m.logger.Debug(ctx, "purge feature disabled, skipping refresh")
		return
	}

	settings := m.settings.Snapshot()
	if !settings.Enabled {
		m.logger.Debug(ctx, "purge disabled in settings, skipping refresh")
		return
	}

	providers := settings.EnabledProviders()
	if len(providers) == 0 {
		m.logger.Warn(ctx, "no valid cdn providers configured, skipping refresh")
		return
	}

	filtered := m.debouncer.Filter(ctx, urls)
	m.metrics.RecordDebounced(len(urls) - len(filtered))
	if len(filtered) == 0 {
		m.logger.Info(ctx, "all urls inside debounce window, skipping refresh",
			logger.Int("url_count", len(urls)))
		return
	}

	m.logger.Info(ctx, "refreshing urls on cdn providers",
		logger.Int("url_count", len(filtered)),
		logger.Int("provider_count", len(providers)),
		logger.String("trigger", string(trigger)))

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range providers {
		g.Go(func() error {
			m.refreshProvider(gctx, p, filtered, trigger, contentID, contentTitle)
			return nil
		})
	}
	// Provider outcomes are audit records, never errors.
	_ = g.Wait()
}

// RefreshSync backs the manual HTTP endpoint: it runs the same fan-out but
// returns the per-provider outcomes to the caller and skips the debounce
// filter, since an operator-initiated purge is explicit. Audit records are
// still written. The error return covers only the pre-flight gates.
func (m *RefreshManager) RefreshSync(ctx context.Context, urls []string, trigger models.TriggerType) ([]ProviderOutcome, error) {
	if len(urls) == 0 {
		return nil, errors.New(errors.CodeInvalidArgument, "url list must not be empty")
	}

	settings := m.settings.Snapshot()
	if !m.gate() || !settings.Enabled {
		return nil, errors.New(errors.CodeInvalidArgument, "cdn cache purge is not enabled")
	}

	providers := settings.EnabledProviders()
	if len(providers) == 0 {
		return nil, errors.New(errors.CodeInvalidArgument, "no valid cdn providers configured")
	}

	outcomes := make([]ProviderOutcome, len(providers))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		g.Go(func() error {
			result := m.refreshProvider(gctx, p, urls, trigger, "", "")
			outcomes[i] = ProviderOutcome{Provider: p.Label(), Result: result}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes, nil
}

// refreshProvider runs one provider purge, records metrics and writes the
// audit record. It never returns an error; adapter-level panics are caught
// and downgraded to a failure result.
func (m *RefreshManager) refreshProvider(ctx context.Context, p models.ProviderConfig, urls []string, trigger models.TriggerType, contentID, contentTitle string) models.PurgeResult {
	requestTime := m.now()
	result := m.callProvider(ctx, p, urls)
	responseTime := m.now()

	m.metrics.RecordPurge(string(p.Kind), result.Success, responseTime.Sub(requestTime))
	m.logger.Info(ctx, "provider refresh finished",
		logger.String("provider", p.Label()),
		logger.Bool("success", result.Success),
		logger.Duration("duration", responseTime.Sub(requestTime)))

	record := &models.RefreshLog{
		ID:             uuid.NewString(),
		Provider:       p.Label(),
		TriggerType:    trigger,
		ContentID:      contentID,
		ContentTitle:   contentTitle,
		Success:        result.Success,
		TaskID:         result.TaskID,
		Message:        result.Message,
		RequestTime:    requestTime,
		ResponseTime:   responseTime,
		DurationMillis: responseTime.Sub(requestTime).Milliseconds(),
	}
	record.SetURLList(urls)

	if err := m.sink.Save(ctx, record); err != nil {
		m.logger.Error(ctx, "failed to save refresh log", err,
			logger.String("provider", p.Label()))
	}
	return result
}

func (m *RefreshManager) callProvider(ctx context.Context, p models.ProviderConfig, urls []string) (result models.PurgeResult) {
	defer func() {
		if r := recover(); r != nil {
			result = models.Failed(fmt.Sprintf("refresh panic: %v", r))
		}
	}()

	svc, err := m.factory.Create(&p)
	if err != nil {
		return models.Failed("create adapter failed: " + err.Error())
	}
	return svc.RefreshURLs(ctx, urls)
}
