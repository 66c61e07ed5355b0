package model

// swagger:model Topic
type Topic struct {
	BaseModel
	Name         string      `gorm:"size:255;not null" json:"name"`
	Explanation  string      `gorm:"type:text" json:"explanation"`
	SubsectionID uint        `gorm:"index;not null" json:"subsectionId"`
	Subsection   *Subsection `gorm:"foreignKey:SubsectionID" json:"subsection,omitempty"`
}

func (Topic) TableName() string {
	return "topics"
}
