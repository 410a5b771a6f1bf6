// Package audit implements the AuditSink interface using GORM.
package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/turtacn/cdnflush/internal/domain/models"
	"github.com/turtacn/cdnflush/internal/domain/service"
	"github.com/turtacn/cdnflush/pkg/errors"
)

// GormAuditSink provides a GORM-backed implementation of the AuditSink.
// It stores one refresh log per provider attempt in a relational database.
type GormAuditSink struct {
	db *gorm.DB
}

// NewGormAuditSink creates and configures a new GormAuditSink.
func NewGormAuditSink(db *gorm.DB) service.AuditSink {
	return &GormAuditSink{
		db: db,
	}
}

// Save persists one refresh log record.
func (s *GormAuditSink) Save(ctx context.Context, record *models.RefreshLog) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return errors.Wrap(errors.CodeStorage, "save refresh log", err)
	}
	return nil
}

// List returns the most recent refresh logs, newest first.
func (s *GormAuditSink) List(ctx context.Context, limit int) ([]models.RefreshLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []models.RefreshLog
	err := s.db.WithContext(ctx).
		Order("request_time DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeStorage, "list refresh logs", err)
	}
	return logs, nil
}

// Delete removes one refresh log by id.
func (s *GormAuditSink) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.RefreshLog{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(errors.CodeStorage, "delete refresh log", err)
	}
	return nil
}

// Clear removes all refresh logs.
func (s *GormAuditSink) Clear(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&models.RefreshLog{}).Error; err != nil {
		return errors.Wrap(errors.CodeStorage, "clear refresh logs", err)
	}
	return nil
}
