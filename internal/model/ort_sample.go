package model

// OrtSample is reference material for a topic: either inline text or an
// uploaded file. Test generation embeds the text content into the prompt.
// swagger:model OrtSample
type OrtSample struct {
	BaseModel
	Content string `gorm:"type:text" json:"content"`
	File    string `gorm:"size:255" json:"file"`
	TopicID uint   `gorm:"index;not null" json:"topicId"`
	Topic   *Topic `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
}

func (OrtSample) TableName() string {
	return "ort_samples"
}
