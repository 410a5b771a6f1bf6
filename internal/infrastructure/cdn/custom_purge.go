package cdn

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/cdnflush/internal/domain/models"
	"github.com/turtacn/cdnflush/pkg/logger"
)

// CustomPurgeService issues a non-standard HTTP "PURGE" request to each URL
// directly, for caches like Varnish or nginx proxy_cache_purge. Success is
// decided by keyword containment in the response body, configured by the
// operator.
type CustomPurgeService struct {
	cfg    models.ProviderConfig
	client *http.Client
	logger logger.Logger
	now    func() time.Time
}

// NewCustomPurgeService creates a generic PURGE adapter bound to cfg.
func NewCustomPurgeService(cfg models.ProviderConfig, client *http.Client, log logger.Logger) *CustomPurgeService {
	return &CustomPurgeService{
		cfg:    cfg,
		client: client,
		logger: log.WithComponent("CustomPurgeService"),
		now:    time.Now,
	}
}

// RefreshURLs PURGEs every URL concurrently and aggregates the outcomes:
// all succeeded, some succeeded (partial), or none.
func (s *CustomPurgeService) RefreshURLs(ctx context.Context, urls []string) models.PurgeResult {
	if len(urls) == 0 {
		return models.Failed("url list is empty")
	}

	keyword := strings.TrimSpace(s.cfg.SuccessKeyword)
	if keyword == "" {
		return models.Failed("success keyword is not configured")
	}

	s.logger.Info(ctx, "custom purge refresh request",
		logger.Int("url_count", len(urls)),
		logger.String("success_keyword", keyword))

	results := make([]bool, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			results[i] = s.purgeURL(gctx, u, keyword)
			return nil
		})
	}
	// Workers only record booleans, no errors to collect.
	_ = g.Wait()

	succeeded := 0
	for _, ok := range results {
		if ok {
			succeeded++
		}
	}

	stamp := strconv.FormatInt(s.now().UnixMilli(), 10)
	switch {
	case succeeded == len(urls):
		return models.Succeeded("purge-" + stamp)
	case succeeded > 0:
		return models.SucceededWithMessage("purge-partial-"+stamp,
			fmt.Sprintf("partial: %d/%d urls purged", succeeded, len(urls)))
	default:
		return models.Failed("all urls failed to purge")
	}
}

// RefreshDirectories is not meaningful for the PURGE verb; each directory
// string is purged as a URL instead.
func (s *CustomPurgeService) RefreshDirectories(ctx context.Context, directories []string) models.PurgeResult {
	if len(directories) == 0 {
		return models.Failed("directory list is empty")
	}
	s.logger.Warn(ctx, "custom purge does not support directory purge, treating entries as urls",
		logger.Int("directory_count", len(directories)))
	return s.RefreshURLs(ctx, directories)
}

func (s *CustomPurgeService) purgeURL(ctx context.Context, rawURL, keyword string) bool {
	req, err := http.NewRequestWithContext(ctx, "PURGE", rawURL, nil)
	if err != nil {
		s.logger.Error(ctx, "build purge request failed", err, logger.String("url", rawURL))
		return false
	}
	for _, h := range s.cfg.CustomHeaders() {
		req.Header.Set(h.Name, h.Value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error(ctx, "purge request failed", err, logger.String("url", rawURL))
		return false
	}

	body := readBody(resp)
	success := strings.Contains(body, keyword)
	s.logger.Info(ctx, "purge response",
		logger.String("url", rawURL),
		logger.Int("status", resp.StatusCode),
		logger.Bool("success", success),
		logger.String("body", snippet(body)))
	return success
}
