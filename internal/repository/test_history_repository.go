package repository

import (
	"ortprep_backend/internal/model"

	"gorm.io/gorm"
)

type TestHistoryRepository struct {
	DB *gorm.DB
}

func NewTestHistoryRepository(db *gorm.DB) *TestHistoryRepository {
	return &TestHistoryRepository{DB: db}
}

func (r *TestHistoryRepository) Create(history *model.TestHistory) error {
	return r.DB.Create(history).Error
}

func (r *TestHistoryRepository) FindByID(id uint, userID uint) (*model.TestHistory, error) {
	var h model.TestHistory
	err := r.DB.Preload("Subject").Where("id = ? AND user_id = ?", id, userID).First(&h).Error
	return &h, err
}

func (r *TestHistoryRepository) ListByUser(userID uint) ([]model.TestHistory, error) {
	var hs []model.TestHistory
	err := r.DB.Preload("Subject").Where("user_id = ?", userID).
		Order("date desc").Find(&hs).Error
	return hs, err
}

// FindLatestByUser returns the most recent history row, which drives advice
// generation.
func (r *TestHistoryRepository) FindLatestByUser(userID uint) (*model.TestHistory, error) {
	var h model.TestHistory
	err := r.DB.Where("user_id = ?", userID).Order("date desc").First(&h).Error
	return &h, err
}

func (r *TestHistoryRepository) Delete(id uint) error {
	res := r.DB.Delete(&model.TestHistory{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TestHistoryRepository) CreateAnswers(answers []model.TestAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.DB.Create(&answers).Error
}

func (r *TestHistoryRepository) ListAnswers(userID uint, testID string) ([]model.TestAnswer, error) {
	var answers []model.TestAnswer
	err := r.DB.Where("user_id = ? AND test_id = ?", userID, testID).Find(&answers).Error
	return answers, err
}
