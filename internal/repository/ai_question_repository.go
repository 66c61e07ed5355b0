package repository

import (
	"ortprep_backend/internal/model"

	"gorm.io/gorm"
)

type AiQuestionRepository struct {
	DB *gorm.DB
}

func NewAiQuestionRepository(db *gorm.DB) *AiQuestionRepository {
	return &AiQuestionRepository{DB: db}
}

func (r *AiQuestionRepository) FindByQuestion(question string) (*model.AiQuestion, error) {
	var q model.AiQuestion
	err := r.DB.Where("question = ?", question).First(&q).Error
	return &q, err
}

func (r *AiQuestionRepository) Create(q *model.AiQuestion) error {
	return r.DB.Create(q).Error
}

func (r *AiQuestionRepository) IncrementCount(id uint) error {
	return r.DB.Model(&model.AiQuestion{}).Where("id = ?", id).
		UpdateColumn("count", gorm.Expr("count + 1")).Error
}

func (r *AiQuestionRepository) TopQuestions(limit int) ([]model.AiQuestion, error) {
	var qs []model.AiQuestion
	err := r.DB.Order("count desc").Limit(limit).Find(&qs).Error
	return qs, err
}

func (r *AiQuestionRepository) ListAll() ([]model.AiQuestion, error) {
	var qs []model.AiQuestion
	err := r.DB.Order("created_at desc").Find(&qs).Error
	return qs, err
}

func (r *AiQuestionRepository) FindByID(id uint) (*model.AiQuestion, error) {
	var q model.AiQuestion
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *AiQuestionRepository) Delete(id uint) error {
	res := r.DB.Delete(&model.AiQuestion{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
