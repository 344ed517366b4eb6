package models

import "time"

const (
	NotificationTypeJobMatch       = "job_match"
	NotificationTypeNewApplication = "new_application"
)

type Notification struct {
	ID        int
	UserID    int64 `gorm:"index"`
	Type      string
	Message   string
	JobID     *int
	IsRead    bool
	CreatedAt time.Time
}
