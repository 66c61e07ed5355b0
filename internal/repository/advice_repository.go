package repository

import (
	"ortprep_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdviceRepository struct {
	DB *gorm.DB
}

func NewAdviceRepository(db *gorm.DB) *AdviceRepository {
	return &AdviceRepository{DB: db}
}

// Upsert overwrites the single advice row for the user.
func (r *AdviceRepository) Upsert(advice *model.Advice) (*model.Advice, error) {
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"advice_text": advice.AdviceText,
			"created_at":  advice.CreatedAt,
		}),
	}).Create(advice).Error
	if err != nil {
		return nil, err
	}

	var saved model.Advice
	err = r.DB.Where("user_id = ?", advice.UserID).First(&saved).Error
	return &saved, err
}

func (r *AdviceRepository) ListByUser(userID uint) ([]model.Advice, error) {
	var advices []model.Advice
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&advices).Error
	return advices, err
}
