package service

import (
	"errors"
	"time"

	"ortprep_backend/internal/model"
	"ortprep_backend/internal/repository"
	"ortprep_backend/internal/util"

	"gorm.io/gorm"
)

type TestHistoryService struct {
	HistoryRepo *repository.TestHistoryRepository
}

func NewTestHistoryService(historyRepo *repository.TestHistoryRepository) *TestHistoryService {
	return &TestHistoryService{HistoryRepo: historyRepo}
}

func (s *TestHistoryService) ListByUser(userID uint) ([]model.TestHistory, error) {
	return s.HistoryRepo.ListByUser(userID)
}

func (s *TestHistoryService) Get(id uint, userID uint) (*model.TestHistory, error) {
	h, err := s.HistoryRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrHistoryNotFound
		}
		return nil, err
	}
	return h, nil
}

type CreateHistoryReq struct {
	SubjectID     uint             `json:"subjectId" binding:"required"`
	Level         model.Difficulty `json:"level"`
	ResultPercent *int             `json:"resultPercent" binding:"required"`
	Correct       *int             `json:"correct" binding:"required"`
	Total         *int             `json:"total" binding:"required"`
}

// Create is the manual path; scoring normally writes history itself.
func (s *TestHistoryService) Create(userID uint, req CreateHistoryReq) (*model.TestHistory, error) {
	history := &model.TestHistory{
		UserID:        userID,
		SubjectID:     req.SubjectID,
		Date:          time.Now(),
		Level:         req.Level,
		ResultPercent: *req.ResultPercent,
		Correct:       *req.Correct,
		Total:         *req.Total,
	}
	if err := s.HistoryRepo.Create(history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *TestHistoryService) Delete(id uint) error {
	if err := s.HistoryRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrHistoryNotFound
		}
		return err
	}
	return nil
}
