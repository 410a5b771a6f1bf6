package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/cdnflush/internal/domain/models"
	"github.com/turtacn/cdnflush/pkg/logger"
)

// MockAuditSink is a mock for the AuditSink.
type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) Save(ctx context.Context, log *models.RefreshLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditSink) List(ctx context.Context, limit int) ([]models.RefreshLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RefreshLog), args.Error(1)
}

func (m *MockAuditSink) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAuditSink) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newLogsEngine(sink *MockAuditSink) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewLogsHandler(sink, logger.NewNoopLogger())

	engine := gin.New()
	engine.GET("/api/v1/logs", handler.List)
	engine.DELETE("/api/v1/logs/:id", handler.Delete)
	engine.DELETE("/api/v1/logs", handler.Clear)
	return engine
}

func TestLogsList(t *testing.T) {
	sink := new(MockAuditSink)
	sink.On("List", mock.Anything, 50).Return([]models.RefreshLog{
		{ID: "1", Provider: "main (aliyun)", Success: true, RequestTime: time.Now()},
	}, nil)

	engine := newLogsEngine(sink)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Logs []models.RefreshLog `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Logs, 1)
	assert.Equal(t, "main (aliyun)", resp.Logs[0].Provider)
	sink.AssertExpectations(t)
}

func TestLogsListCustomLimit(t *testing.T) {
	sink := new(MockAuditSink)
	sink.On("List", mock.Anything, 10).Return([]models.RefreshLog{}, nil)

	engine := newLogsEngine(sink)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?limit=10", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	sink.AssertExpectations(t)
}

func TestLogsListBadLimit(t *testing.T) {
	engine := newLogsEngine(new(MockAuditSink))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?limit=zero", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?limit=-3", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogsDelete(t *testing.T) {
	sink := new(MockAuditSink)
	sink.On("Delete", mock.Anything, "log-1").Return(nil)

	engine := newLogsEngine(sink)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/logs/log-1", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	sink.AssertExpectations(t)
}

func TestLogsClear(t *testing.T) {
	sink := new(MockAuditSink)
	sink.On("Clear", mock.Anything).Return(nil)

	engine := newLogsEngine(sink)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/logs", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	sink.AssertExpectations(t)
}

func TestLogsListStorageError(t *testing.T) {
	sink := new(MockAuditSink)
	sink.On("List", mock.Anything, 50).Return(nil, assert.AnError)

	engine := newLogsEngine(sink)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
