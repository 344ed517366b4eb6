package models

import "time"

type Favorite struct {
	ID        int
	UserID    int64 `gorm:"index"`
	JobID     int
	CreatedAt time.Time
}
