package model

import "time"

// TestHistory is the append-only record of one finished, scored attempt.
// swagger:model TestHistory
type TestHistory struct {
	BaseModel
	UserID        uint       `gorm:"index;not null" json:"userId"`
	SubjectID     uint       `gorm:"index;not null" json:"subjectId"`
	Subject       *Subject   `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	TestID        string     `gorm:"size:36;index" json:"testId"`
	Date          time.Time  `gorm:"index;default:CURRENT_TIMESTAMP(3)" json:"date"`
	Level         Difficulty `gorm:"size:20" json:"level"`
	ResultPercent int        `gorm:"not null" json:"resultPercent"`
	Correct       int        `gorm:"not null" json:"correct"`
	Total         int        `gorm:"not null" json:"total"`
}

func (TestHistory) TableName() string {
	return "test_histories"
}

// TestAnswer is the per-question audit row written during scoring. It is not
// needed for the score itself; advice generation joins against it later.
// swagger:model TestAnswer
type TestAnswer struct {
	BaseModel
	UserID           uint   `gorm:"index;not null" json:"userId"`
	TestID           string `gorm:"size:36;index;not null" json:"testId"`
	QuestionID       string `gorm:"size:16;not null" json:"questionId"`
	SelectedOptionID string `gorm:"size:4" json:"selectedOptionId"`
	IsCorrect        bool   `gorm:"default:false" json:"isCorrect"`
}

func (TestAnswer) TableName() string {
	return "test_answers"
}
