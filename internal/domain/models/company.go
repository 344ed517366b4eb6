package models

import "time"

type CompanyProfile struct {
	ID          int
	EmployerID  int64 `gorm:"uniqueIndex"`
	Name        string
	Description string
	Website     string
	Location    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompanyExperience is a user-submitted review. It stays hidden from
// the public company page until the employer approves it.
type CompanyExperience struct {
	ID         int
	EmployerID int64 `gorm:"index"`
	AuthorName string
	Text       string
	Rating     int
	Approved   bool
	CreatedAt  time.Time
}

type CompanyBenefit struct {
	ID          int
	EmployerID  int64 `gorm:"index"`
	Title       string
	Description string
	Position    int
}

type CompanyGalleryItem struct {
	ID         int
	EmployerID int64 `gorm:"index"`
	ImageKey   string // object-storage reference
	Caption    string
	Position   int
}

type CompanyHiringStep struct {
	ID          int
	EmployerID  int64 `gorm:"index"`
	Title       string
	Description string
	Position    int
}
