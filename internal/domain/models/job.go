package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type WorkType string

const (
	WorkTypeRemote WorkType = "remote"
	WorkTypeHybrid WorkType = "hybrid"
)

func ToWorkType(s string) (WorkType, error) {
	switch s {
	case string(WorkTypeRemote):
		return WorkTypeRemote, nil
	case string(WorkTypeHybrid):
		return WorkTypeHybrid, nil
	default:
		return "", errors.New("invalid work type")
	}
}

type JobType string

const (
	JobTypeFullTime JobType = "full_time"
	JobTypeContract JobType = "contract"
)

func ToJobType(s string) (JobType, error) {
	switch s {
	case string(JobTypeFullTime):
		return JobTypeFullTime, nil
	case string(JobTypeContract):
		return JobTypeContract, nil
	default:
		return "", errors.New("invalid job type")
	}
}

type ApplyMethod string

const (
	ApplyMethodExternalURL ApplyMethod = "external_url"
	ApplyMethodEmail       ApplyMethod = "email"
	ApplyMethodCompanySite ApplyMethod = "company_site"
)

type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"
	QuestionTypeYesNo          QuestionType = "yes_no"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
)

type ScreeningQuestion struct {
	ID      string       `json:"id"`
	Prompt  string       `json:"prompt"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options,omitempty"`
}

// ScreeningQuestions is stored as a JSON text column.
type ScreeningQuestions []ScreeningQuestion

func (q ScreeningQuestions) Value() (driver.Value, error) {
	if len(q) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (q *ScreeningQuestions) Scan(value any) error {
	if value == nil {
		*q = nil
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), q)
	case []byte:
		return json.Unmarshal(v, q)
	default:
		return fmt.Errorf("unsupported type for screening questions: %T", value)
	}
}

type Job struct {
	ID          int
	EmployerID  int64 `gorm:"index"`
	Title       string
	Slug        string `gorm:"uniqueIndex"`
	Description string

	// Long-form sections, newline-delimited; rendered as bullet
	// lists by the frontend when multi-line.
	Summary          string
	Responsibilities string
	Requirements     string
	WhatWeOffer      string
	GoodToHave       string
	Benefits         string

	Role      string // comma-joined free-text specializations
	TechStack string // comma-joined tags

	WorkType  WorkType
	JobType   JobType
	SalaryMin *int
	SalaryMax *int
	Location  *string

	IsActive bool
	ClosedAt *time.Time

	ApplyMethod        ApplyMethod
	ApplyURL           string
	NotificationEmail  string
	ScreeningQuestions ScreeningQuestions `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewJob(employerID int64, title string, roles []string, tech []string,
	workType WorkType, jobType JobType) *Job {

	return &Job{
		EmployerID: employerID,
		Title:      title,
		Slug:       GenerateSlug(title),
		Role:       strings.Join(trimNonEmpty(roles), ","),
		TechStack:  strings.Join(trimNonEmpty(tech), ","),
		WorkType:   workType,
		JobType:    jobType,
		IsActive:   true,
	}
}

func (j *Job) RolesAsArray() []string {
	return splitTags(j.Role)
}

func (j *Job) TechStackAsArray() []string {
	return splitTags(j.TechStack)
}

func (j *Job) SetRoles(roles []string) {
	j.Role = strings.Join(trimNonEmpty(roles), ",")
}

func (j *Job) SetTechStack(tech []string) {
	j.TechStack = strings.Join(trimNonEmpty(tech), ",")
}

// Closed reports whether applications are suppressed. A closed job
// stays on the board while active; only the apply action is disabled.
func (j *Job) Closed() bool {
	return j.ClosedAt != nil
}

func (j *Job) QuestionByID(id string) *ScreeningQuestion {
	for i := range j.ScreeningQuestions {
		if j.ScreeningQuestions[i].ID == id {
			return &j.ScreeningQuestions[i]
		}
	}
	return nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug lowercases the title, replaces runs of non-alphanumerics
// with a dash and appends a random suffix to keep slugs unique across
// identically titled postings.
func GenerateSlug(title string) string {
	base := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "job"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return base + "-" + suffix
}

func splitTags(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, ",")
}

func trimNonEmpty(values []string) []string {
	trimmed := lo.Map(values, func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
	return lo.Filter(trimmed, func(item string, _ int) bool {
		return item != ""
	})
}
