package service

import (
	"errors"
	"strings"

	"ortprep_backend/internal/model"
	"ortprep_backend/internal/repository"
	"ortprep_backend/internal/util"
	"ortprep_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AiQuestionService struct {
	QuestionRepo *repository.AiQuestionRepository
	AI           *AIService
}

func NewAiQuestionService(questionRepo *repository.AiQuestionRepository, ai *AIService) *AiQuestionService {
	return &AiQuestionService{
		QuestionRepo: questionRepo,
		AI:           ai,
	}
}

type AskResult struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Ask sends a free-form question to the model and bumps the popularity
// counter for identical questions.
func (s *AiQuestionService) Ask(userID uint, question string) (*AskResult, error) {
	question = strings.TrimSpace(question)

	answer, err := s.AI.Chat("ask", BuildAskPrompt(question))
	if err != nil {
		return nil, &util.GenerationError{Err: err}
	}

	if err := s.record(userID, question); err != nil {
		logger.Log.Warn("failed to record ai question", zap.Error(err))
	}

	return &AskResult{Question: question, Answer: answer}, nil
}

func (s *AiQuestionService) record(userID uint, question string) error {
	existing, err := s.QuestionRepo.FindByQuestion(question)
	if err == nil {
		return s.QuestionRepo.IncrementCount(existing.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.QuestionRepo.Create(&model.AiQuestion{Question: question, UserID: userID})
}

func (s *AiQuestionService) TopQuestions(limit int) ([]model.AiQuestion, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.QuestionRepo.TopQuestions(limit)
}

func (s *AiQuestionService) ListAll() ([]model.AiQuestion, error) {
	return s.QuestionRepo.ListAll()
}

func (s *AiQuestionService) Get(id uint) (*model.AiQuestion, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAiQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *AiQuestionService) Delete(id uint) error {
	err := s.QuestionRepo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrAiQuestionNotFound
	}
	return err
}
