package model

// Advice holds the latest generated study advice for a user. One live row
// per user, overwritten on regeneration.
// swagger:model Advice
type Advice struct {
	BaseModel
	UserID     uint   `gorm:"uniqueIndex;not null" json:"userId"`
	AdviceText string `gorm:"type:text;not null" json:"adviceText"`
}

func (Advice) TableName() string {
	return "advices"
}
