package cdn

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/turtacn/cdnflush/internal/domain/models"
	"github.com/turtacn/cdnflush/pkg/logger"
)

// Aliyun CDN RefreshObjectCaches, RPC-style signed GET.
// https://help.aliyun.com/zh/cdn/developer-reference/api-cdn-2018-05-10-refreshobjectcaches
const (
	aliyunEndpoint   = "https://cdn.aliyuncs.com"
	aliyunAPIVersion = "2018-05-10"
)

// AliyunService purges the Aliyun CDN by signing a flat query-parameter map
// with HMAC-SHA1 over the canonicalized query string.
type AliyunService struct {
	cfg      models.ProviderConfig
	client   *http.Client
	logger   logger.Logger
	endpoint string
	now      func() time.Time
	newNonce func() string
}

// NewAliyunService creates an Aliyun CDN purge adapter bound to cfg.
func NewAliyunService(cfg models.ProviderConfig, client *http.Client, log logger.Logger) *AliyunService {
	return &AliyunService{
		cfg:      cfg,
		client:   client,
		logger:   log.WithComponent("AliyunService"),
		endpoint: aliyunEndpoint,
		now:      time.Now,
		newNonce: uuid.NewString,
	}
}

// RefreshURLs purges individual files. URLs are newline-joined into a single
// ObjectPath parameter.
func (s *AliyunService) RefreshURLs(ctx context.Context, urls []string) models.PurgeResult {
	if len(urls) == 0 {
		return models.Failed("url list is empty")
	}
	return s.refresh(ctx, strings.Join(urls, "\n"), "File")
}

// RefreshDirectories purges path prefixes.
func (s *AliyunService) RefreshDirectories(ctx context.Context, directories []string) models.PurgeResult {
	if len(directories) == 0 {
		return models.Failed("directory list is empty")
	}
	return s.refresh(ctx, strings.Join(directories, "\n"), "Directory")
}

func (s *AliyunService) refresh(ctx context.Context, objectPath, objectType string) models.PurgeResult {
	params := map[string]string{
		"Format":           "JSON",
		"Version":          aliyunAPIVersion,
		"AccessKeyId":      s.cfg.AccessKeyID,
		"SignatureMethod":  "HMAC-SHA1",
		"SignatureVersion": "1.0",
		"SignatureNonce":   s.newNonce(),
		"Timestamp":        s.now().UTC().Format("2006-01-02T15:04:05Z"),
		"Action":           "RefreshObjectCaches",
		"ObjectPath":       objectPath,
		"ObjectType":       objectType,
	}

	canonicalQuery := canonicalizeQuery(params)
	signature := signRPCQuery(canonicalQuery, s.cfg.AccessKeySecret)
	fullURL := s.endpoint + "/?" + canonicalQuery + "&Signature=" + popEncode(signature)

	s.logger.Info(ctx, "aliyun cdn refresh request",
		logger.String("object_type", objectType),
		logger.Int("object_count", strings.Count(objectPath, "\n")+1))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return models.Failed("build request failed: " + err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error(ctx, "aliyun cdn refresh failed", err)
		return models.Failed("refresh error: " + err.Error())
	}

	body := readBody(resp)
	s.logger.Info(ctx, "aliyun cdn response",
		logger.Int("status", resp.StatusCode),
		logger.String("body", snippet(body)))

	if is2xx(resp.StatusCode) && strings.Contains(body, "RefreshTaskId") {
		return models.Succeeded(extractJSONValue(body, "RefreshTaskId"))
	}

	code := extractJSONValue(body, "Code")
	message := extractJSONValue(body, "Message")
	if code == unknownValue {
		return models.Failed("refresh failed: " + body)
	}
	return models.Failed("refresh failed: " + code + " - " + message)
}

// canonicalizeQuery builds the canonical query string: parameters sorted by
// name, each name and value POP-encoded, joined with "&".
func canonicalizeQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(popEncode(k))
		b.WriteByte('=')
		b.WriteString(popEncode(params[k]))
	}
	return b.String()
}

// signRPCQuery signs "GET&%2F&<encoded query>" with HMAC-SHA1 keyed by
// secret+"&" and returns the base64 MAC.
func signRPCQuery(canonicalQuery, secret string) string {
	stringToSign := "GET&" + popEncode("/") + "&" + popEncode(canonicalQuery)
	mac := hmac.New(sha1.New, []byte(secret+"&"))
	mac.Write([]byte(stringToSign))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// popEncode applies the POP RPC variant of RFC 3986 encoding: space becomes
// %20, '*' becomes %2A, and '~' stays literal.
func popEncode(value string) string {
	encoded := url.QueryEscape(value)
	encoded = strings.ReplaceAll(encoded, "+", "%20")
	encoded = strings.ReplaceAll(encoded, "*", "%2A")
	encoded = strings.ReplaceAll(encoded, "%7E", "~")
	return encoded
}
