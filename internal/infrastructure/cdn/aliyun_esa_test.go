package cdn

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/cdnflush/internal/domain/models"
	"github.com/turtacn/cdnflush/pkg/logger"
)

func TestACS3Authorization(t *testing.T) {
	bodyHash := sha256Hex(`{"SiteId":123,"Type":"file","Content":{"Files":["https://example.com/a.html"]}}`)
	require.Equal(t, "1a0d285d6313fa64bc73720b48f511bfa3d15eac17bd8dad29c973e0750eb5fd", bodyHash)

	headers := map[string]string{
		"host":                  "esa.cn-hangzhou.aliyuncs.com",
		"x-acs-action":          "PurgeCaches",
		"x-acs-content-sha256":  bodyHash,
		"x-acs-date":            "2024-01-02T03:04:05Z",
		"x-acs-signature-nonce": "nonce-1",
		"x-acs-version":         "2024-09-10",
	}

	auth := acs3Authorization(http.MethodPost, "/PurgeCaches", headers, bodyHash, "testid", "testsecret")

	assert.Equal(t,
		"ACS3-HMAC-SHA256 Credential=testid"+
			",SignedHeaders=host;x-acs-action;x-acs-content-sha256;x-acs-date;x-acs-signature-nonce;x-acs-version"+
			",Signature=e5c4b83ce57f79809bf879f7f0d1d5dd920b70f8ce1bdbef8b25cffefb2d745d",
		auth)
}

func TestHostOf(t *testing.T) {
	assert.Equal(t, "esa.cn-hangzhou.aliyuncs.com", hostOf("https://esa.cn-hangzhou.aliyuncs.com"))
	assert.Equal(t, "127.0.0.1:8080", hostOf("http://127.0.0.1:8080"))
}

func newESAForTest(endpoint, zoneID string) *AliyunESAService {
	svc := NewAliyunESAService(models.ProviderConfig{
		Kind:            models.ProviderAliyunESA,
		AccessKeyID:     "testid",
		AccessKeySecret: "testsecret",
		ZoneID:          zoneID,
	}, http.DefaultClient, logger.NewNoopLogger())
	svc.endpoint = endpoint
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	svc.newNonce = func() string { return "nonce-1" }
	return svc
}

func TestESARefreshURLs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/PurgeCaches", r.URL.Path)
		assert.Equal(t, "PurgeCaches", r.Header.Get("x-acs-action"))
		assert.Equal(t, "2024-09-10", r.Header.Get("x-acs-version"))
		assert.Contains(t, r.Header.Get("Authorization"), "ACS3-HMAC-SHA256 Credential=testid")

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t,
			`{"SiteId":123,"Type":"file","Content":{"Files":["https://example.com/a.html"]}}`,
			string(body))

		w.Write([]byte(`{"TaskId":"esa-task-1","RequestId":"req-1"}`))
	}))
	defer server.Close()

	svc := newESAForTest(server.URL, "123")
	result := svc.RefreshURLs(context.Background(), []string{"https://example.com/a.html"})

	require.True(t, result.Success, result.Message)
	assert.Equal(t, "esa-task-1", result.TaskID)
}

func TestESARefreshDirectories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t,
			`{"SiteId":123,"Type":"directory","Content":{"Directories":["https://example.com/blog/"]}}`,
			string(body))
		w.Write([]byte(`{"TaskId":"esa-task-2"}`))
	}))
	defer server.Close()

	svc := newESAForTest(server.URL, "123")
	result := svc.RefreshDirectories(context.Background(), []string{"https://example.com/blog/"})

	require.True(t, result.Success, result.Message)
	assert.Equal(t, "esa-task-2", result.TaskID)
}

func TestESARequiresNumericSiteID(t *testing.T) {
	svc := newESAForTest("http://unreachable.invalid", "not-a-number")
	result := svc.RefreshURLs(context.Background(), []string{"https://example.com/a.html"})

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "site id must be numeric")
}

func TestESARequiresSiteID(t *testing.T) {
	svc := newESAForTest("http://unreachable.invalid", "  ")
	result := svc.RefreshURLs(context.Background(), []string{"https://example.com/a.html"})

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "requires a site id")
}

func TestESAVendorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"Code":"Forbidden.Site","Message":"no permission"}`))
	}))
	defer server.Close()

	svc := newESAForTest(server.URL, "123")
	result := svc.RefreshURLs(context.Background(), []string{"https://example.com/a.html"})

	require.False(t, result.Success)
	assert.Equal(t, "refresh failed: Forbidden.Site - no permission", result.Message)
}
