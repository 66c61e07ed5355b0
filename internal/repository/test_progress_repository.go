package repository

import (
	"ortprep_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestProgressRepository struct {
	DB *gorm.DB
}

func NewTestProgressRepository(db *gorm.DB) *TestProgressRepository {
	return &TestProgressRepository{DB: db}
}

// Upsert fully replaces the progress row for (user, test), bumping the
// revision counter. The unique index on (user_id, test_id) is the upsert key.
func (r *TestProgressRepository) Upsert(p *model.TestProgress) (*model.TestProgress, error) {
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "test_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"current_question_index": p.CurrentQuestionIndex,
			"answers":                p.Answers,
			"time_left":              p.TimeLeft,
			"status":                 p.Status,
			"revision":               gorm.Expr("revision + 1"),
		}),
	}).Create(p).Error
	if err != nil {
		return nil, err
	}

	var saved model.TestProgress
	err = r.DB.Where("user_id = ? AND test_id = ?", p.UserID, p.TestID).First(&saved).Error
	return &saved, err
}

func (r *TestProgressRepository) Find(userID uint, testID string) (*model.TestProgress, error) {
	var p model.TestProgress
	err := r.DB.Where("user_id = ? AND test_id = ?", userID, testID).First(&p).Error
	return &p, err
}

func (r *TestProgressRepository) ListByUser(userID uint) ([]model.TestProgress, error) {
	var ps []model.TestProgress
	err := r.DB.Where("user_id = ?", userID).Order("updated_at desc").Find(&ps).Error
	return ps, err
}

// Delete removes the row and reports whether one existed.
func (r *TestProgressRepository) Delete(userID uint, testID string) (bool, error) {
	res := r.DB.Where("user_id = ? AND test_id = ?", userID, testID).
		Delete(&model.TestProgress{})
	return res.RowsAffected > 0, res.Error
}
