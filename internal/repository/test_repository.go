package repository

import (
	"ortprep_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

// CreateWithQuestions persists the test and its question rows atomically.
func (r *TestRepository) CreateWithQuestions(test *model.Test, questions []model.TestQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(test).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].TestID = test.ID
			questions[i].Order = i
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TestRepository) FindByID(id string) (*model.Test, error) {
	var test model.Test
	err := r.DB.First(&test, "id = ?", id).Error
	return &test, err
}

// FindWithQuestions loads the test and its questions in stored order.
func (r *TestRepository) FindWithQuestions(id string) (*model.Test, error) {
	var test model.Test
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` asc")
	}).First(&test, "id = ?", id).Error
	return &test, err
}

// FindWithHierarchy additionally resolves topic -> subsection -> subject for
// history attribution. Broken links surface as nil associations, not errors.
func (r *TestRepository) FindWithHierarchy(id string) (*model.Test, error) {
	var test model.Test
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` asc")
	}).Preload("Topic.Subsection.Subject").First(&test, "id = ?", id).Error
	return &test, err
}

func (r *TestRepository) CountQuestions(testID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TestQuestion{}).Where("test_id = ?", testID).Count(&count).Error
	return count, err
}

type TestListRow struct {
	ID    string `json:"testId"`
	Title string `json:"title"`
}

func (r *TestRepository) ListAll() ([]TestListRow, error) {
	var rows []TestListRow
	err := r.DB.Model(&model.Test{}).Select("id, title").
		Order("created_at desc").Scan(&rows).Error
	return rows, err
}

func (r *TestRepository) ListByCreator(userID uint) ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.Preload("Topic").Where("created_by = ?", userID).
		Order("created_at desc").Find(&tests).Error
	return tests, err
}
