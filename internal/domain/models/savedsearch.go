package models

import "time"

// SavedSearch is a named JobFilters snapshot owned by a user. It is
// never mutated in place: created once, deleted explicitly.
type SavedSearch struct {
	ID        int
	UserID    int64 `gorm:"index"`
	Name      string
	Filters   JobFilters `gorm:"type:text"`
	CreatedAt time.Time
}

func NewSavedSearch(userID int64, name string, filters JobFilters) *SavedSearch {
	return &SavedSearch{
		UserID:  userID,
		Name:    name,
		Filters: filters.Normalized(),
	}
}
