package model

// AiQuestion counts how often a free-form question has been asked of the
// model, for the "top questions" listing.
// swagger:model AiQuestion
type AiQuestion struct {
	BaseModel
	Question string `gorm:"type:text;not null" json:"question"`
	UserID   uint   `gorm:"index" json:"userId"`
	Count    int    `gorm:"default:1" json:"count"`
}

func (AiQuestion) TableName() string {
	return "ai_questions"
}
