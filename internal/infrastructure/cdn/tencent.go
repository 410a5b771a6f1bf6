package cdn

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/turtacn/cdnflush/internal/domain/models"
	"github.com/turtacn/cdnflush/pkg/logger"
)

// Tencent Cloud CDN purge API.
// https://cloud.tencent.com/document/api/228/37870
const (
	tencentCDNEndpoint   = "https://cdn.tencentcloudapi.com"
	tencentCDNService    = "cdn"
	tencentCDNAPIVersion = "2018-06-06"
)

type tencentPurgeURLs struct {
	URLs []string `json:"Urls"`
}

type tencentPurgePaths struct {
	Paths     []string `json:"Paths"`
	FlushType string   `json:"FlushType"`
}

// TencentService purges the Tencent Cloud CDN using TC3-HMAC-SHA256 signed
// POST requests.
type TencentService struct {
	cfg      models.ProviderConfig
	client   *http.Client
	logger   logger.Logger
	endpoint string
	now      func() time.Time
}

// NewTencentService creates a Tencent CDN purge adapter bound to cfg.
func NewTencentService(cfg models.ProviderConfig, client *http.Client, log logger.Logger) *TencentService {
	return &TencentService{
		cfg:      cfg,
		client:   client,
		logger:   log.WithComponent("TencentService"),
		endpoint: tencentCDNEndpoint,
		now:      time.Now,
	}
}

// RefreshURLs purges individual URLs via PurgeUrlsCache.
func (s *TencentService) RefreshURLs(ctx context.Context, urls []string) models.PurgeResult {
	if len(urls) == 0 {
		return models.Failed("url list is empty")
	}
	payload, err := json.Marshal(tencentPurgeURLs{URLs: urls})
	if err != nil {
		return models.Failed("build request failed: " + err.Error())
	}
	return s.refresh(ctx, "PurgeUrlsCache", payload, "TaskId")
}

// RefreshDirectories purges path prefixes via PurgePathCache.
func (s *TencentService) RefreshDirectories(ctx context.Context, directories []string) models.PurgeResult {
	if len(directories) == 0 {
		return models.Failed("directory list is empty")
	}
	payload, err := json.Marshal(tencentPurgePaths{Paths: directories, FlushType: "flush"})
	if err != nil {
		return models.Failed("build request failed: " + err.Error())
	}
	return s.refresh(ctx, "PurgePathCache", payload, "TaskId")
}

func (s *TencentService) refresh(ctx context.Context, action string, payload []byte, taskField string) models.PurgeResult {
	return doTC3Refresh(ctx, tc3Call{
		client:    s.client,
		logger:    s.logger,
		endpoint:  s.endpoint,
		service:   tencentCDNService,
		version:   tencentCDNAPIVersion,
		action:    action,
		keyID:     s.cfg.AccessKeyID,
		keySecret: s.cfg.AccessKeySecret,
		payload:   payload,
		taskField: taskField,
		now:       s.now,
	})
}

// tc3Call carries everything needed for one signed Tencent-style API call.
// The CDN and EdgeOne surfaces differ only in host, service, version, action
// and payload shape.
type tc3Call struct {
	client    *http.Client
	logger    logger.Logger
	endpoint  string
	service   string
	version   string
	action    string
	keyID     string
	keySecret string
	payload   []byte
	taskField string
	now       func() time.Time
}

func doTC3Refresh(ctx context.Context, call tc3Call) models.PurgeResult {
	t := call.now()
	host := hostOf(call.endpoint)
	authorization := tc3Authorization(call.keyID, call.keySecret, host, call.service, string(call.payload), t)

	call.logger.Info(ctx, "tencent api refresh request",
		logger.String("action", call.action),
		logger.Int("payload_bytes", len(call.payload)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, call.endpoint+"/", bytes.NewReader(call.payload))
	if err != nil {
		return models.Failed("build request failed: " + err.Error())
	}
	req.Header.Set("Authorization", authorization)
	req.Header.Set("Content-Type", tc3ContentType)
	req.Header.Set("X-TC-Action", call.action)
	req.Header.Set("X-TC-Timestamp", strconv.FormatInt(t.Unix(), 10))
	req.Header.Set("X-TC-Version", call.version)

	resp, err := call.client.Do(req)
	if err != nil {
		call.logger.Error(ctx, "tencent api refresh failed", err)
		return models.Failed("refresh error: " + err.Error())
	}

	body := readBody(resp)
	call.logger.Info(ctx, "tencent api response",
		logger.Int("status", resp.StatusCode),
		logger.String("body", snippet(body)))

	if strings.Contains(body, `"`+call.taskField+`"`) && !strings.Contains(body, `"Error"`) {
		return models.Succeeded(extractJSONValue(body, call.taskField))
	}
	return models.Failed("refresh failed: " + body)
}
