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

func newEdgeOneForTest(endpoint string) *TencentEdgeOneService {
	svc := NewTencentEdgeOneService(models.ProviderConfig{
		Kind:            models.ProviderTencentEdgeOne,
		AccessKeyID:     "testid",
		AccessKeySecret: "testsecret",
		ZoneID:          "zone-abc",
	}, http.DefaultClient, logger.NewNoopLogger())
	svc.endpoint = endpoint
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }
	return svc
}

func TestEdgeOneRefreshURLs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CreatePurgeTask", r.Header.Get("X-TC-Action"))
		assert.Equal(t, "2022-09-01", r.Header.Get("X-TC-Version"))
		assert.Contains(t, r.Header.Get("Authorization"), "/teo/tc3_request")

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t,
			`{"ZoneId":"zone-abc","Type":"purge_url","Targets":["https://example.com/a.html"]}`,
			string(body))

		w.Write([]byte(`{"Response":{"JobId":"job-1","RequestId":"req-1"}}`))
	}))
	defer server.Close()

	svc := newEdgeOneForTest(server.URL)
	result := svc.RefreshURLs(context.Background(), []string{"https://example.com/a.html"})

	require.True(t, result.Success, result.Message)
	assert.Equal(t, "job-1", result.TaskID)
}

func TestEdgeOneRefreshDirectories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t,
			`{"ZoneId":"zone-abc","Type":"purge_prefix","Targets":["https://example.com/blog/"]}`,
			string(body))
		w.Write([]byte(`{"Response":{"JobId":"job-2"}}`))
	}))
	defer server.Close()

	svc := newEdgeOneForTest(server.URL)
	result := svc.RefreshDirectories(context.Background(), []string{"https://example.com/blog/"})

	require.True(t, result.Success, result.Message)
	assert.Equal(t, "job-2", result.TaskID)
}

func TestEdgeOneErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":{"Error":{"Code":"ResourceNotFound.Zone","Message":"zone not found"}}}`))
	}))
	defer server.Close()

	svc := newEdgeOneForTest(server.URL)
	result := svc.RefreshURLs(context.Background(), []string{"https://example.com/a.html"})

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "ResourceNotFound.Zone")
}
