package models

import (
	"strings"
	"time"
)

// RefreshLog is one audit record: a single provider's outcome for a single
// refresh. Persisted by the audit sink.
type RefreshLog struct {
	ID           string      `gorm:"primaryKey;size:64" json:"id"`
	Provider     string      `gorm:"size:255;index" json:"provider"`
	TriggerType  TriggerType `gorm:"size:32;index" json:"triggerType"`
	ContentID    string      `gorm:"size:255" json:"contentId,omitempty"`
	ContentTitle string      `gorm:"size:512" json:"contentTitle,omitempty"`

	// URLs is the purged URL list, newline-joined for storage.
	URLs string `gorm:"type:text" json:"-"`

	Success        bool      `gorm:"index" json:"success"`
	TaskID         string    `gorm:"size:255" json:"taskId,omitempty"`
	Message        string    `gorm:"type:text" json:"message,omitempty"`
	RequestTime    time.Time `json:"requestTime"`
	ResponseTime   time.Time `json:"responseTime"`
	DurationMillis int64     `json:"durationMillis"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (RefreshLog) TableName() string {
	return "refresh_logs"
}

// URLList splits the stored URL column back into a slice.
func (l *RefreshLog) URLList() []string {
	if l.URLs == "" {
		return nil
	}
	return strings.Split(l.URLs, "\n")
}

// SetURLList stores the URL slice into the text column.
func (l *RefreshLog) SetURLList(urls []string) {
	l.URLs = strings.Join(urls, "\n")
}
