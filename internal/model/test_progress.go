package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type ProgressStatus string

const (
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// SubmittedAnswer is one picked option, keyed by question id.
// swagger:model SubmittedAnswer
type SubmittedAnswer struct {
	QuestionID       string `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
}

// AnswerList stores the submitted answers as a JSON column.
type AnswerList []SubmittedAnswer

func (a AnswerList) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *AnswerList) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("unsupported type for AnswerList")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, a)
}

// TestProgress is the resumable state of one active attempt. The composite
// unique index guarantees at most one row per (user, test); a finished
// attempt is represented by row absence, never by a completed row.
//
// Deliberately not soft-deleted: a tombstone would keep occupying the
// unique index and block a fresh attempt at the same test.
// swagger:model TestProgress
type TestProgress struct {
	ID                   uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
	UserID               uint           `gorm:"uniqueIndex:idx_user_test;not null" json:"userId"`
	TestID               string         `gorm:"uniqueIndex:idx_user_test;size:36;not null" json:"testId"`
	CurrentQuestionIndex int            `gorm:"default:0" json:"currentQuestionIndex"`
	Answers              AnswerList     `gorm:"type:json" json:"answers"`
	TimeLeft             int            `gorm:"default:0" json:"timeLeft"`
	Status               ProgressStatus `gorm:"size:20;default:'in_progress'" json:"status"`
	// Revision increments on every save. Clients can detect that another
	// device overwrote their state; no compare-and-swap is performed.
	Revision int `gorm:"default:0" json:"revision"`
}

func (TestProgress) TableName() string {
	return "test_progress"
}
