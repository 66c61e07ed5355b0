package repository

import (
	"ortprep_backend/internal/model"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) FindByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	return &topic, err
}

// FindWithHierarchy loads the topic together with its subsection and subject.
// Either association may be missing on orphaned data; callers must handle
// nil Subsection / nil Subject.
func (r *TopicRepository) FindWithHierarchy(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.Preload("Subsection.Subject").First(&topic, id).Error
	return &topic, err
}

func (r *TopicRepository) FindSubjectByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, id).Error
	return &subject, err
}
