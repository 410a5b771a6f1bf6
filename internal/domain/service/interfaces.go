// Package service declares the ports between the purge core and its
// collaborators.
package service

import (
	"context"

	"github.com/turtacn/cdnflush/internal/domain/models"
)

// PurgeService is the uniform contract every provider adapter implements.
//
// Both methods return a PurgeResult value and never an error: signing,
// transport and vendor-reported failures all normalize into
// PurgeResult{Success: false}. Empty input yields a failure result without
// any network call.
type PurgeService interface {
	// RefreshURLs invalidates the given absolute URLs.
	RefreshURLs(ctx context.Context, urls []string) models.PurgeResult

	// RefreshDirectories invalidates the given path prefixes. Providers
	// without native prefix support degrade (full-zone purge, or per-URL
	// PURGE) and log a warning.
	RefreshDirectories(ctx context.Context, directories []string) models.PurgeResult
}

// AuditSink accepts one purge-attempt record per provider per refresh.
// Implementations must tolerate concurrent independent writes.
type AuditSink interface {
	Save(ctx context.Context, log *models.RefreshLog) error
	List(ctx context.Context, limit int) ([]models.RefreshLog, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// SettingsSource supplies the current purge settings snapshot. Snapshots are
// immutable; concurrent reloads swap the snapshot as a whole.
type SettingsSource interface {
	Snapshot() *models.Settings
}
