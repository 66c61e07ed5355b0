package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// DifficultySetting fixes the question count and time limit per tier.
type DifficultySetting struct {
	Questions int
	TimeLimit int // seconds
}

var DifficultySettings = map[Difficulty]DifficultySetting{
	Beginner:     {Questions: 20, TimeLimit: 1800},
	Intermediate: {Questions: 30, TimeLimit: 2700},
	Advanced:     {Questions: 40, TimeLimit: 3600},
}

func (d Difficulty) Valid() bool {
	_, ok := DifficultySettings[d]
	return ok
}

// Option is one answer variant of a multiple-choice question.
// swagger:model Option
type Option struct {
	OptionID string `json:"optionId"`
	Text     string `json:"text"`
}

// OptionList stores the ordered option sequence as a JSON column.
type OptionList []Option

func (o OptionList) Value() (driver.Value, error) {
	return json.Marshal(o)
}

func (o *OptionList) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("unsupported type for OptionList")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, o)
}

// swagger:model Test
type Test struct {
	UUIDBase
	Title      string         `gorm:"size:255;not null" json:"title"`
	TopicID    uint           `gorm:"index;not null" json:"topicId"`
	Topic      *Topic         `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
	Difficulty Difficulty     `gorm:"size:20;not null" json:"difficulty"`
	TimeLimit  int            `gorm:"not null" json:"timeLimit"`
	CreatedBy  uint           `gorm:"index" json:"createdBy"`
	Questions  []TestQuestion `gorm:"foreignKey:TestID" json:"questions,omitempty"`
}

func (Test) TableName() string {
	return "tests"
}

// TestQuestion is one generated question. QuestionID ("q1", "q2", ...) is
// stable within the owning test; Order preserves generation order.
// swagger:model TestQuestion
type TestQuestion struct {
	BaseModel
	TestID          string     `gorm:"size:36;index;not null" json:"-"`
	QuestionID      string     `gorm:"size:16;not null" json:"questionId"`
	Text            string     `gorm:"type:text;not null" json:"text"`
	Options         OptionList `gorm:"type:json" json:"options"`
	CorrectOptionID string     `gorm:"size:4;not null" json:"correctOptionId,omitempty"`
	Explanation     string     `gorm:"type:text" json:"explanation"`
	Order           int        `gorm:"default:0" json:"-"`
}

func (TestQuestion) TableName() string {
	return "test_questions"
}
