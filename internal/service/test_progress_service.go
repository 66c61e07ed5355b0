package service

import (
	"errors"

	"ortprep_backend/internal/model"
	"ortprep_backend/internal/repository"
	"ortprep_backend/internal/util"
	"ortprep_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// progressStore is the slice of the progress repository the service needs.
type progressStore interface {
	Upsert(p *model.TestProgress) (*model.TestProgress, error)
	Find(userID uint, testID string) (*model.TestProgress, error)
	ListByUser(userID uint) ([]model.TestProgress, error)
	Delete(userID uint, testID string) (bool, error)
}

// progressTestStore is the slice of the test repository the service needs.
type progressTestStore interface {
	FindByID(id string) (*model.Test, error)
	CountQuestions(testID string) (int64, error)
}

// TestProgressService keeps at most one resumable attempt per (user, test).
// A finished attempt is represented by the absence of a row: completion
// deletes, and reads lazily purge anything that slipped through.
type TestProgressService struct {
	ProgressRepo progressStore
	TestRepo     progressTestStore
}

func NewTestProgressService(progressRepo *repository.TestProgressRepository, testRepo *repository.TestRepository) *TestProgressService {
	return &TestProgressService{ProgressRepo: progressRepo, TestRepo: testRepo}
}

// progressPercent computes the answered share, floored. A zero-question
// test reports -1 so callers treat the row as unusable and purge it.
func progressPercent(answered, total int) int {
	if total <= 0 {
		return -1
	}
	return answered * 100 / total
}

// isFinished reports whether a row no longer represents a resumable
// attempt and must be removed.
func isFinished(p *model.TestProgress, total int) bool {
	if p.Status == model.ProgressCompleted {
		return true
	}
	percent := progressPercent(len(p.Answers), total)
	return percent < 0 || percent >= 100
}

type SaveResult struct {
	Completed bool                `json:"completed"`
	TestID    string              `json:"testId"`
	Progress  *model.TestProgress `json:"progress,omitempty"`
}

// Save upserts the attempt state, or deletes it and reports completion when
// every question has an answer.
func (s *TestProgressService) Save(userID uint, testID string, currentQuestionIndex int, answers model.AnswerList, timeLeft int) (*SaveResult, error) {
	if _, err := s.TestRepo.FindByID(testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	total, err := s.TestRepo.CountQuestions(testID)
	if err != nil {
		return nil, err
	}

	if len(answers) >= int(total) {
		if _, err := s.ProgressRepo.Delete(userID, testID); err != nil {
			return nil, err
		}
		return &SaveResult{Completed: true, TestID: testID}, nil
	}

	saved, err := s.ProgressRepo.Upsert(&model.TestProgress{
		UserID:               userID,
		TestID:               testID,
		CurrentQuestionIndex: currentQuestionIndex,
		Answers:              answers,
		TimeLeft:             timeLeft,
		Status:               model.ProgressInProgress,
	})
	if err != nil {
		return nil, err
	}

	return &SaveResult{TestID: testID, Progress: saved}, nil
}

type ProgressSummary struct {
	TestID               string               `json:"testId"`
	Title                string               `json:"title"`
	Progress             int                  `json:"progress"`
	TimeLeft             int                  `json:"timeLeft"`
	CurrentQuestionIndex int                  `json:"currentQuestionIndex"`
	Status               model.ProgressStatus `json:"status"`
	Revision             int                  `json:"revision"`
}

// ListActive returns the genuinely resumable attempts. Rows at 100%, rows
// already marked completed and rows pointing at deleted or empty tests are
// purged as a side effect of the read.
func (s *TestProgressService) ListActive(userID uint) ([]ProgressSummary, error) {
	rows, err := s.ProgressRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ProgressSummary, 0, len(rows))
	for i := range rows {
		p := &rows[i]

		test, err := s.TestRepo.FindByID(p.TestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.purge(p)
				continue
			}
			return nil, err
		}

		total, err := s.TestRepo.CountQuestions(p.TestID)
		if err != nil {
			return nil, err
		}

		if isFinished(p, int(total)) {
			s.purge(p)
			continue
		}

		summaries = append(summaries, ProgressSummary{
			TestID:               p.TestID,
			Title:                test.Title,
			Progress:             progressPercent(len(p.Answers), int(total)),
			TimeLeft:             p.TimeLeft,
			CurrentQuestionIndex: p.CurrentQuestionIndex,
			Status:               p.Status,
			Revision:             p.Revision,
		})
	}

	return summaries, nil
}

type ProgressDetail struct {
	model.TestProgress
	Title          string `json:"title"`
	TimeLimit      int    `json:"timeLimit"`
	TotalQuestions int    `json:"totalQuestions"`
}

// Get returns the attempt for one test, or NotFound. A row that turns out
// to be finished is purged and reported as NotFound too.
func (s *TestProgressService) Get(userID uint, testID string) (*ProgressDetail, error) {
	p, err := s.ProgressRepo.Find(userID, testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}

	test, err := s.TestRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.purge(p)
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}

	total, err := s.TestRepo.CountQuestions(testID)
	if err != nil {
		return nil, err
	}

	if isFinished(p, int(total)) {
		s.purge(p)
		return nil, util.ErrProgressNotFound
	}

	return &ProgressDetail{
		TestProgress:   *p,
		Title:          test.Title,
		TimeLimit:      test.TimeLimit,
		TotalQuestions: int(total),
	}, nil
}

// Delete removes the attempt; deleting something absent is reported so the
// caller can answer 404.
func (s *TestProgressService) Delete(userID uint, testID string) error {
	existed, err := s.ProgressRepo.Delete(userID, testID)
	if err != nil {
		return err
	}
	if !existed {
		return util.ErrProgressNotFound
	}
	return nil
}

func (s *TestProgressService) purge(p *model.TestProgress) {
	if _, err := s.ProgressRepo.Delete(p.UserID, p.TestID); err != nil {
		logger.Log.Error("failed to purge finished progress",
			zap.Error(err), zap.Uint("userId", p.UserID), zap.String("testId", p.TestID))
	}
}
