package model

// Subject is the top of the three-level content hierarchy
// (subject -> subsection -> topic).
// swagger:model Subject
type Subject struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Subject) TableName() string {
	return "subjects"
}
