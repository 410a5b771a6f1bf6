package cdn

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/turtacn/cdnflush/internal/domain/models"
	"github.com/turtacn/cdnflush/pkg/logger"
)

// Cloudflare zone purge API, bearer-token authenticated.
// The token needs the Zone.Cache Purge permission.
const cloudflareEndpoint = "https://api.cloudflare.com/client/v4"

type cloudflarePurgeFiles struct {
	Files []string `json:"files"`
}

type cloudflarePurgeEverything struct {
	PurgeEverything bool `json:"purge_everything"`
}

// CloudflareService purges a Cloudflare zone. Directory purge is not offered
// by the vendor and degrades to a full-zone purge.
type CloudflareService struct {
	cfg      models.ProviderConfig
	client   *http.Client
	logger   logger.Logger
	endpoint string
}

// NewCloudflareService creates a Cloudflare purge adapter bound to cfg.
func NewCloudflareService(cfg models.ProviderConfig, client *http.Client, log logger.Logger) *CloudflareService {
	return &CloudflareService{
		cfg:      cfg,
		client:   client,
		logger:   log.WithComponent("CloudflareService"),
		endpoint: cloudflareEndpoint,
	}
}

// RefreshURLs purges the given files from the zone cache.
func (s *CloudflareService) RefreshURLs(ctx context.Context, urls []string) models.PurgeResult {
	if len(urls) == 0 {
		return models.Failed("url list is empty")
	}
	if strings.TrimSpace(s.cfg.APIToken) == "" {
		return models.Failed("cloudflare api token is not configured")
	}
	if strings.TrimSpace(s.cfg.ZoneID) == "" {
		return models.Failed("cloudflare zone id is not configured")
	}

	payload, err := json.Marshal(cloudflarePurgeFiles{Files: urls})
	if err != nil {
		return models.Failed("build request failed: " + err.Error())
	}

	s.logger.Info(ctx, "cloudflare refresh request",
		logger.String("zone_id", s.cfg.ZoneID),
		logger.Int("url_count", len(urls)))

	result := s.purge(ctx, payload)
	if result.Success && result.TaskID == "" {
		result.TaskID = unknownValue
	}
	return result
}

// RefreshDirectories is not supported by the vendor; the zone cache is purged
// entirely instead, which is a broader operation than requested.
func (s *CloudflareService) RefreshDirectories(ctx context.Context, directories []string) models.PurgeResult {
	if len(directories) == 0 {
		return models.Failed("directory list is empty")
	}
	if strings.TrimSpace(s.cfg.APIToken) == "" {
		return models.Failed("cloudflare api token is not configured")
	}
	if strings.TrimSpace(s.cfg.ZoneID) == "" {
		return models.Failed("cloudflare zone id is not configured")
	}

	s.logger.Warn(ctx, "cloudflare does not support directory purge, purging everything",
		logger.String("zone_id", s.cfg.ZoneID),
		logger.Int("directory_count", len(directories)))

	payload, err := json.Marshal(cloudflarePurgeEverything{PurgeEverything: true})
	if err != nil {
		return models.Failed("build request failed: " + err.Error())
	}

	result := s.purge(ctx, payload)
	if result.Success {
		result.TaskID = "purge_everything"
	}
	return result
}

func (s *CloudflareService) purge(ctx context.Context, payload []byte) models.PurgeResult {
	purgeURL := s.endpoint + "/zones/" + s.cfg.ZoneID + "/purge_cache"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, purgeURL, bytes.NewReader(payload))
	if err != nil {
		return models.Failed("build request failed: " + err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error(ctx, "cloudflare refresh failed", err)
		return models.Failed("refresh error: " + err.Error())
	}

	body := readBody(resp)
	s.logger.Info(ctx, "cloudflare response",
		logger.Int("status", resp.StatusCode),
		logger.String("body", snippet(body)))

	if is2xx(resp.StatusCode) && strings.Contains(body, `"success":true`) {
		return models.Succeeded(extractJSONValue(body, "id"))
	}
	return models.Failed("refresh failed: " + body)
}
