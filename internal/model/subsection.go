package model

// swagger:model Subsection
type Subsection struct {
	BaseModel
	Name      string   `gorm:"size:255;not null" json:"name"`
	SubjectID uint     `gorm:"index;not null" json:"subjectId"`
	Subject   *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

func (Subsection) TableName() string {
	return "subsections"
}
