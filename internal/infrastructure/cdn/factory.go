// Package cdn implements the provider purge adapters and their factory.
package cdn

import (
	"net/http"

	"github.com/turtacn/cdnflush/internal/domain/models"
	"github.com/turtacn/cdnflush/internal/domain/service"
	"github.com/turtacn/cdnflush/pkg/errors"
	"github.com/turtacn/cdnflush/pkg/logger"
)

// Factory builds provider adapters from stored configuration. It is pure and
// stateless; the HTTP client and logger are shared across all adapters it
// produces.
type Factory struct {
	client *http.Client
	logger logger.Logger
}

// NewFactory creates an adapter factory.
func NewFactory(client *http.Client, log logger.Logger) *Factory {
	return &Factory{client: client, logger: log}
}

// Create returns the purge adapter matching cfg's kind. A nil config or an
// unset kind is a programming-contract violation, not an operational failure.
func (f *Factory) Create(cfg *models.ProviderConfig) (service.PurgeService, error) {
	if cfg == nil {
		return nil, errors.New(errors.CodeInvalidArgument, "provider config is nil")
	}

	switch cfg.Kind {
	case models.ProviderAliyun:
		return NewAliyunService(*cfg, f.client, f.logger), nil
	case models.ProviderAliyunESA:
		return NewAliyunESAService(*cfg, f.client, f.logger), nil
	case models.ProviderTencent:
		return NewTencentService(*cfg, f.client, f.logger), nil
	case models.ProviderTencentEdgeOne:
		return NewTencentEdgeOneService(*cfg, f.client, f.logger), nil
	case models.ProviderCloudflare:
		return NewCloudflareService(*cfg, f.client, f.logger), nil
	case models.ProviderCustomPurge:
		return NewCustomPurgeService(*cfg, f.client, f.logger), nil
	default:
		return nil, errors.Newf(errors.CodeInvalidArgument, "unknown provider kind: %q", cfg.Kind)
	}
}
