package cdn

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/turtacn/cdnflush/internal/domain/models"
	"github.com/turtacn/cdnflush/pkg/logger"
)

// Tencent EdgeOne purge API, same TC3 signing as the CDN surface but a
// different host, service and payload shape.
// https://cloud.tencent.com/document/api/1552/70759
const (
	edgeOneEndpoint   = "https://teo.tencentcloudapi.com"
	edgeOneService    = "teo"
	edgeOneAPIVersion = "2022-09-01"
	edgeOneAction     = "CreatePurgeTask"
)

type edgeOnePurgeRequest struct {
	ZoneID  string   `json:"ZoneId"`
	Type    string   `json:"Type"`
	Targets []string `json:"Targets"`
}

// TencentEdgeOneService purges Tencent EdgeOne zones via CreatePurgeTask.
type TencentEdgeOneService struct {
	cfg      models.ProviderConfig
	client   *http.Client
	logger   logger.Logger
	endpoint string
	now      func() time.Time
}

// NewTencentEdgeOneService creates an EdgeOne purge adapter bound to cfg.
func NewTencentEdgeOneService(cfg models.ProviderConfig, client *http.Client, log logger.Logger) *TencentEdgeOneService {
	return &TencentEdgeOneService{
		cfg:      cfg,
		client:   client,
		logger:   log.WithComponent("TencentEdgeOneService"),
		endpoint: edgeOneEndpoint,
		now:      time.Now,
	}
}

// RefreshURLs purges individual URLs (Type purge_url).
func (s *TencentEdgeOneService) RefreshURLs(ctx context.Context, urls []string) models.PurgeResult {
	if len(urls) == 0 {
		return models.Failed("url list is empty")
	}
	return s.refresh(ctx, urls, "purge_url")
}

// RefreshDirectories purges prefixes (Type purge_prefix).
func (s *TencentEdgeOneService) RefreshDirectories(ctx context.Context, directories []string) models.PurgeResult {
	if len(directories) == 0 {
		return models.Failed("directory list is empty")
	}
	return s.refresh(ctx, directories, "purge_prefix")
}

func (s *TencentEdgeOneService) refresh(ctx context.Context, targets []string, purgeType string) models.PurgeResult {
	payload, err := json.Marshal(edgeOnePurgeRequest{
		ZoneID:  s.cfg.ZoneID,
		Type:    purgeType,
		Targets: targets,
	})
	if err != nil {
		return models.Failed("build request failed: " + err.Error())
	}

	return doTC3Refresh(ctx, tc3Call{
		client:    s.client,
		logger:    s.logger,
		endpoint:  s.endpoint,
		service:   edgeOneService,
		version:   edgeOneAPIVersion,
		action:    edgeOneAction,
		keyID:     s.cfg.AccessKeyID,
		keySecret: s.cfg.AccessKeySecret,
		payload:   payload,
		taskField: "JobId",
		now:       s.now,
	})
}
