package repository

import (
	"ortprep_backend/internal/model"

	"gorm.io/gorm"
)

type OrtSampleRepository struct {
	DB *gorm.DB
}

func NewOrtSampleRepository(db *gorm.DB) *OrtSampleRepository {
	return &OrtSampleRepository{DB: db}
}

func (r *OrtSampleRepository) Create(sample *model.OrtSample) error {
	return r.DB.Create(sample).Error
}

func (r *OrtSampleRepository) FindByID(id uint) (*model.OrtSample, error) {
	var sample model.OrtSample
	err := r.DB.Preload("Topic").First(&sample, id).Error
	return &sample, err
}

// FindFirstByTopic returns the first sample for a topic, used by test
// generation as reference material.
func (r *OrtSampleRepository) FindFirstByTopic(topicID uint) (*model.OrtSample, error) {
	var sample model.OrtSample
	err := r.DB.Where("topic_id = ?", topicID).Order("created_at asc").First(&sample).Error
	return &sample, err
}

func (r *OrtSampleRepository) List(topicID uint) ([]model.OrtSample, error) {
	var samples []model.OrtSample
	query := r.DB.Preload("Topic")
	if topicID != 0 {
		query = query.Where("topic_id = ?", topicID)
	}
	err := query.Order("created_at desc").Find(&samples).Error
	return samples, err
}

func (r *OrtSampleRepository) Update(sample *model.OrtSample) error {
	return r.DB.Save(sample).Error
}

func (r *OrtSampleRepository) Delete(id uint) error {
	res := r.DB.Delete(&model.OrtSample{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
