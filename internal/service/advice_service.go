package service

import (
	"errors"
	"time"

	"ortprep_backend/internal/model"
	"ortprep_backend/internal/repository"
	"ortprep_backend/internal/util"

	"gorm.io/gorm"
)

// AdviceService turns the user's latest scored attempt into personalized
// study advice via the text generator. One live advice row per user.
type AdviceService struct {
	AdviceRepo  *repository.AdviceRepository
	HistoryRepo *repository.TestHistoryRepository
	TestRepo    *repository.TestRepository
	TopicRepo   *repository.TopicRepository
	AI          *AIService
}

func NewAdviceService(
	adviceRepo *repository.AdviceRepository,
	historyRepo *repository.TestHistoryRepository,
	testRepo *repository.TestRepository,
	topicRepo *repository.TopicRepository,
	ai *AIService,
) *AdviceService {
	return &AdviceService{
		AdviceRepo:  adviceRepo,
		HistoryRepo: historyRepo,
		TestRepo:    testRepo,
		TopicRepo:   topicRepo,
		AI:          ai,
	}
}

// buildReviews joins the test's stored questions against the user's audited
// answers in storage order.
func buildReviews(questions []model.TestQuestion, audits []model.TestAnswer) []QuestionReview {
	byQuestion := make(map[string]model.TestAnswer, len(audits))
	for _, a := range audits {
		byQuestion[a.QuestionID] = a
	}

	reviews := make([]QuestionReview, 0, len(questions))
	for _, q := range questions {
		r := QuestionReview{
			Text:            q.Text,
			CorrectOptionID: q.CorrectOptionID,
			Explanation:     q.Explanation,
		}
		if a, ok := byQuestion[q.QuestionID]; ok {
			r.Answered = true
			r.SelectedOption = a.SelectedOptionID
			r.IsCorrect = a.IsCorrect
		}
		reviews = append(reviews, r)
	}
	return reviews
}

// Generate composes advice from the newest history row and overwrites the
// user's advice.
func (s *AdviceService) Generate(userID uint) (*model.Advice, error) {
	history, err := s.HistoryRepo.FindLatestByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNoTestHistory
		}
		return nil, err
	}

	subjectName := ""
	if history.SubjectID != 0 {
		if subject, err := s.TopicRepo.FindSubjectByID(history.SubjectID); err == nil {
			subjectName = subject.Name
		}
	}

	if history.TestID == "" {
		return nil, util.ErrTestNotFound
	}
	test, err := s.TestRepo.FindWithQuestions(history.TestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	audits, err := s.HistoryRepo.ListAnswers(userID, test.ID)
	if err != nil {
		return nil, err
	}

	prompt := BuildAdvicePrompt(subjectName, history, buildReviews(test.Questions, audits))

	adviceText, err := s.AI.Chat("advice", prompt)
	if err != nil {
		return nil, &util.GenerationError{Err: err}
	}

	return s.AdviceRepo.Upsert(&model.Advice{
		UserID:     userID,
		AdviceText: adviceText,
		BaseModel:  model.BaseModel{CreatedAt: time.Now()},
	})
}

type AdviceRow struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"userId"`
	AdviceText string `json:"adviceText"`
	CreatedAt  string `json:"createdAt"`
}

// List returns the user's advice, newest first, with a display-formatted
// timestamp.
func (s *AdviceService) List(userID uint) ([]AdviceRow, error) {
	advices, err := s.AdviceRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	rows := make([]AdviceRow, 0, len(advices))
	for _, a := range advices {
		rows = append(rows, AdviceRow{
			ID:         a.ID,
			UserID:     a.UserID,
			AdviceText: a.AdviceText,
			CreatedAt:  a.CreatedAt.Format(util.TimeFormat),
		})
	}
	return rows, nil
}
