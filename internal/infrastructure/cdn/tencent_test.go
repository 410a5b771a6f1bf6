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

func newTencentForTest(endpoint string) *TencentService {
	svc := NewTencentService(models.ProviderConfig{
		Kind:            models.ProviderTencent,
		AccessKeyID:     "testid",
		AccessKeySecret: "testsecret",
	}, http.DefaultClient, logger.NewNoopLogger())
	svc.endpoint = endpoint
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }
	return svc
}

func TestTencentRefreshURLs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PurgeUrlsCache", r.Header.Get("X-TC-Action"))
		assert.Equal(t, "2018-06-06", r.Header.Get("X-TC-Version"))
		assert.Equal(t, "1700000000", r.Header.Get("X-TC-Timestamp"))
		assert.Contains(t, r.Header.Get("Authorization"), "TC3-HMAC-SHA256 Credential=testid/2023-11-14/cdn/tc3_request")
		assert.Equal(t, tc3ContentType, r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"Urls":["https://example.com/a.html"]}`, string(body))

		w.Write([]byte(`{"Response":{"TaskId":"cdn-task-1","RequestId":"req-1"}}`))
	}))
	defer server.Close()

	svc := newTencentForTest(server.URL)
	result := svc.RefreshURLs(context.Background(), []string{"https://example.com/a.html"})

	require.True(t, result.Success, result.Message)
	assert.Equal(t, "cdn-task-1", result.TaskID)
}

func TestTencentRefreshDirectories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PurgePathCache", r.Header.Get("X-TC-Action"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"Paths":["https://example.com/blog/"],"FlushType":"flush"}`, string(body))

		w.Write([]byte(`{"Response":{"TaskId":"cdn-task-2"}}`))
	}))
	defer server.Close()

	svc := newTencentForTest(server.URL)
	result := svc.RefreshDirectories(context.Background(), []string{"https://example.com/blog/"})

	require.True(t, result.Success, result.Message)
	assert.Equal(t, "cdn-task-2", result.TaskID)
}

func TestTencentErrorBody(t *testing.T) {
	// 200 status with an API-level error object.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":{"Error":{"Code":"AuthFailure","Message":"signature expired"},"RequestId":"req-2"}}`))
	}))
	defer server.Close()

	svc := newTencentForTest(server.URL)
	result := svc.RefreshURLs(context.Background(), []string{"https://example.com/a.html"})

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "AuthFailure")
}

func TestTencentEmptyInput(t *testing.T) {
	svc := newTencentForTest("http://unreachable.invalid")
	assert.False(t, svc.RefreshURLs(context.Background(), nil).Success)
	assert.False(t, svc.RefreshDirectories(context.Background(), nil).Success)
}
