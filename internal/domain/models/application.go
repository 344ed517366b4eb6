package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const ApplicationStatusPending = "pending"

type ScreeningAnswer struct {
	QuestionID string       `json:"question_id"`
	Prompt     string       `json:"prompt"`
	Type       QuestionType `json:"type"`
	Answer     string       `json:"answer"`
}

// ScreeningAnswers is stored as a JSON text column.
type ScreeningAnswers []ScreeningAnswer

func (a ScreeningAnswers) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (a *ScreeningAnswers) Scan(value any) error {
	if value == nil {
		*a = nil
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), a)
	case []byte:
		return json.Unmarshal(v, a)
	default:
		return fmt.Errorf("unsupported type for screening answers: %T", value)
	}
}

// Application is immutable after creation except for its status, which
// employer tooling advances.
type Application struct {
	ID          int
	JobID       int   `gorm:"index"`
	ApplicantID int64 `gorm:"index"`
	FullName    string
	Email       string
	Phone       string
	CoverLetter string
	CVKey       string // object-storage reference, issued by the upload flow
	Answers     ScreeningAnswers `gorm:"type:text"`
	Status      string           `gorm:"default:pending"`
	CreatedAt   time.Time
}
