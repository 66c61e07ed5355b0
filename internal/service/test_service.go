package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"ortprep_backend/internal/model"
	"ortprep_backend/internal/repository"
	"ortprep_backend/internal/util"
	"ortprep_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sanitizedTestTTL = 10 * time.Minute

// ErrInvalidQuestion marks author-supplied questions that fail validation.
var ErrInvalidQuestion = errors.New("invalid question")

type TestService struct {
	TestRepo     *repository.TestRepository
	TopicRepo    *repository.TopicRepository
	SampleRepo   *repository.OrtSampleRepository
	HistoryRepo  *repository.TestHistoryRepository
	ProgressRepo *repository.TestProgressRepository
	AI           *AIService
	Redis        *redis.Client
}

func NewTestService(
	testRepo *repository.TestRepository,
	topicRepo *repository.TopicRepository,
	sampleRepo *repository.OrtSampleRepository,
	historyRepo *repository.TestHistoryRepository,
	progressRepo *repository.TestProgressRepository,
	ai *AIService,
	rdb *redis.Client,
) *TestService {
	return &TestService{
		TestRepo:     testRepo,
		TopicRepo:    topicRepo,
		SampleRepo:   sampleRepo,
		HistoryRepo:  historyRepo,
		ProgressRepo: progressRepo,
		AI:           ai,
		Redis:        rdb,
	}
}

type SanitizedQuestion struct {
	QuestionID  string           `json:"questionId"`
	Text        string           `json:"text"`
	Options     model.OptionList `json:"options"`
	Explanation string           `json:"explanation,omitempty"`
}

type SanitizedTest struct {
	TestID    string              `json:"testId"`
	Title     string              `json:"title"`
	Questions []SanitizedQuestion `json:"questions"`
	TimeLimit int                 `json:"timeLimit"`
}

// GenerateTest builds a prompt from the topic and its reference sample,
// asks the model for questions and persists whatever parsed cleanly. Fewer
// questions than requested is not an error; the model under-delivering is
// routine and a short test is still a usable test.
func (s *TestService) GenerateTest(userID uint, topicID uint, difficulty model.Difficulty) (*SanitizedTest, error) {
	if !difficulty.Valid() {
		return nil, util.ErrInvalidDifficulty
	}

	topic, err := s.TopicRepo.FindByID(topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}

	sampleText := ""
	if sample, err := s.SampleRepo.FindFirstByTopic(topicID); err == nil && sample.Content != "" {
		sampleText = sample.Content
	}

	setting := model.DifficultySettings[difficulty]
	prompt := BuildGenerationPrompt(topic.Name, sampleText, difficulty, setting.Questions)

	raw, err := s.AI.Chat("test_generation", prompt)
	if err != nil {
		return nil, &util.GenerationError{Err: err}
	}

	questions := ParseQuestions(raw, setting.Questions)
	if len(questions) < setting.Questions {
		logger.Log.Warn("generated test is short",
			zap.Uint("topicId", topicID),
			zap.Int("requested", setting.Questions),
			zap.Int("parsed", len(questions)))
	}

	test := &model.Test{
		Title:      fmt.Sprintf("Тест по теме: %s", topic.Name),
		TopicID:    topic.ID,
		Difficulty: difficulty,
		TimeLimit:  setting.TimeLimit,
		CreatedBy:  userID,
	}
	if err := s.TestRepo.CreateWithQuestions(test, questions); err != nil {
		return nil, err
	}

	return sanitize(test.ID, test.Title, test.TimeLimit, questions, true), nil
}

type QuestionReq struct {
	QuestionID      string           `json:"questionId"`
	Text            string           `json:"text" binding:"required"`
	Options         model.OptionList `json:"options" binding:"required"`
	CorrectOptionID string           `json:"correctOptionId" binding:"required"`
	Explanation     string           `json:"explanation"`
}

type CreateTestReq struct {
	Title      string           `json:"title" binding:"required"`
	TopicID    uint             `json:"topicId" binding:"required"`
	Difficulty model.Difficulty `json:"difficulty" binding:"required"`
	Questions  []QuestionReq    `json:"questions"`
}

// CreateTest is the author path: explicitly supplied questions bypass
// generation entirely.
func (s *TestService) CreateTest(userID uint, req CreateTestReq) (*model.Test, error) {
	if !req.Difficulty.Valid() {
		return nil, util.ErrInvalidDifficulty
	}

	if _, err := s.TopicRepo.FindByID(req.TopicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}

	questions := make([]model.TestQuestion, 0, len(req.Questions))
	for i, qr := range req.Questions {
		if len(qr.Options) < minOptions {
			return nil, fmt.Errorf("%w: question %d needs at least %d options", ErrInvalidQuestion, i+1, minOptions)
		}
		if !hasOption(qr.Options, qr.CorrectOptionID) {
			return nil, fmt.Errorf("%w: question %d correctOptionId %q does not match any option", ErrInvalidQuestion, i+1, qr.CorrectOptionID)
		}
		questionID := qr.QuestionID
		if questionID == "" {
			questionID = fmt.Sprintf("q%d", i+1)
		}
		questions = append(questions, model.TestQuestion{
			QuestionID:      questionID,
			Text:            qr.Text,
			Options:         qr.Options,
			CorrectOptionID: qr.CorrectOptionID,
			Explanation:     qr.Explanation,
		})
	}

	setting := model.DifficultySettings[req.Difficulty]
	test := &model.Test{
		Title:      req.Title,
		TopicID:    req.TopicID,
		Difficulty: req.Difficulty,
		TimeLimit:  setting.TimeLimit,
		CreatedBy:  userID,
	}
	if err := s.TestRepo.CreateWithQuestions(test, questions); err != nil {
		return nil, err
	}

	test.Questions = questions
	return test, nil
}

// GetTest returns the answer-free representation served to test takers,
// cached in redis under a short TTL since tests are immutable once created.
func (s *TestService) GetTest(ctx context.Context, id string) (*SanitizedTest, error) {
	cacheKey := "test:sanitized:" + id

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var st SanitizedTest
			if err := json.Unmarshal([]byte(cached), &st); err == nil {
				return &st, nil
			}
		}
	}

	test, err := s.TestRepo.FindWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	st := sanitize(test.ID, test.Title, test.TimeLimit, test.Questions, false)

	if s.Redis != nil {
		if payload, err := json.Marshal(st); err == nil {
			s.Redis.Set(ctx, cacheKey, payload, sanitizedTestTTL)
		}
	}

	return st, nil
}

func sanitize(id, title string, timeLimit int, questions []model.TestQuestion, withExplanation bool) *SanitizedTest {
	sanitized := make([]SanitizedQuestion, 0, len(questions))
	for _, q := range questions {
		sq := SanitizedQuestion{
			QuestionID: q.QuestionID,
			Text:       q.Text,
			Options:    q.Options,
		}
		if withExplanation {
			sq.Explanation = q.Explanation
		}
		sanitized = append(sanitized, sq)
	}
	return &SanitizedTest{
		TestID:    id,
		Title:     title,
		Questions: sanitized,
		TimeLimit: timeLimit,
	}
}

func (s *TestService) ListAll() ([]repository.TestListRow, error) {
	return s.TestRepo.ListAll()
}

type UserTestRow struct {
	TestID        string           `json:"testId"`
	Title         string           `json:"title"`
	Topic         *model.Topic     `json:"topic,omitempty"`
	Difficulty    model.Difficulty `json:"difficulty"`
	QuestionCount int64            `json:"questionCount"`
	TimeLimit     int              `json:"timeLimit"`
}

func (s *TestService) ListByCreator(userID uint) ([]UserTestRow, error) {
	tests, err := s.TestRepo.ListByCreator(userID)
	if err != nil {
		return nil, err
	}

	rows := make([]UserTestRow, 0, len(tests))
	for _, t := range tests {
		count, err := s.TestRepo.CountQuestions(t.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, UserTestRow{
			TestID:        t.ID,
			Title:         t.Title,
			Topic:         t.Topic,
			Difficulty:    t.Difficulty,
			QuestionCount: count,
			TimeLimit:     t.TimeLimit,
		})
	}
	return rows, nil
}

type CorrectAnswer struct {
	QuestionID      string `json:"questionId"`
	CorrectOptionID string `json:"correctOptionId"`
	Explanation     string `json:"explanation"`
}

type ScoreResult struct {
	Score          int             `json:"score"`
	Total          int             `json:"total"`
	CorrectAnswers []CorrectAnswer `json:"correctAnswers"`
	HistorySaved   bool            `json:"historySaved"`
	HistoryError   string          `json:"historyError,omitempty"`
}

// scoreTest compares submitted answers against the stored key. Question
// iteration follows storage order; an unanswered question simply scores
// zero and produces no audit row.
func scoreTest(userID uint, testID string, questions []model.TestQuestion, answers []model.SubmittedAnswer) (int, []CorrectAnswer, []model.TestAnswer) {
	byQuestion := make(map[string]string, len(answers))
	for _, a := range answers {
		if _, seen := byQuestion[a.QuestionID]; !seen {
			byQuestion[a.QuestionID] = a.SelectedOptionID
		}
	}

	score := 0
	correctAnswers := make([]CorrectAnswer, 0, len(questions))
	audits := make([]model.TestAnswer, 0, len(answers))

	for _, q := range questions {
		selected, answered := byQuestion[q.QuestionID]
		isCorrect := answered && selected == q.CorrectOptionID
		if isCorrect {
			score++
		}
		if answered {
			audits = append(audits, model.TestAnswer{
				UserID:           userID,
				TestID:           testID,
				QuestionID:       q.QuestionID,
				SelectedOptionID: selected,
				IsCorrect:        isCorrect,
			})
		}
		correctAnswers = append(correctAnswers, CorrectAnswer{
			QuestionID:      q.QuestionID,
			CorrectOptionID: q.CorrectOptionID,
			Explanation:     q.Explanation,
		})
	}

	return score, correctAnswers, audits
}

func resultPercent(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// SubmitTest scores a submission. The score is always computable and always
// returned; failing to attribute the attempt to a subject (orphaned topic
// chain) only degrades the response to historySaved=false.
func (s *TestService) SubmitTest(userID uint, testID string, answers []model.SubmittedAnswer) (*ScoreResult, error) {
	test, err := s.TestRepo.FindWithHierarchy(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	score, correctAnswers, audits := scoreTest(userID, testID, test.Questions, answers)
	total := len(test.Questions)

	if err := s.HistoryRepo.CreateAnswers(audits); err != nil {
		logger.Log.Error("failed to record answer audit", zap.Error(err), zap.String("testId", testID))
	}

	result := &ScoreResult{
		Score:          score,
		Total:          total,
		CorrectAnswers: correctAnswers,
	}

	subject := resolveSubject(test)
	if subject == nil {
		result.HistoryError = "Не удалось определить subject для истории."
		logger.Log.Error("test history skipped: subject unresolved",
			zap.String("testId", testID), zap.Uint("userId", userID))
		return result, nil
	}

	history := &model.TestHistory{
		UserID:        userID,
		SubjectID:     subject.ID,
		TestID:        testID,
		Date:          time.Now(),
		Level:         test.Difficulty,
		ResultPercent: resultPercent(score, total),
		Correct:       score,
		Total:         total,
	}
	if err := s.HistoryRepo.Create(history); err != nil {
		result.HistoryError = err.Error()
		logger.Log.Error("failed to save test history", zap.Error(err), zap.String("testId", testID))
		return result, nil
	}
	result.HistorySaved = true

	// The attempt is finished; drop any resumable state. Failure here is
	// tolerable, the row will be purged lazily on the next progress read.
	if _, err := s.ProgressRepo.Delete(userID, testID); err != nil {
		logger.Log.Error("failed to delete progress after submit", zap.Error(err), zap.String("testId", testID))
	}

	return result, nil
}

func resolveSubject(test *model.Test) *model.Subject {
	if test.Topic == nil || test.Topic.Subsection == nil || test.Topic.Subsection.Subject == nil {
		return nil
	}
	return test.Topic.Subsection.Subject
}

type AnswerReview struct {
	QuestionID       string           `json:"questionId"`
	QuestionText     string           `json:"questionText"`
	Options          model.OptionList `json:"options"`
	CorrectOptionID  string           `json:"correctOptionId"`
	SelectedOptionID string           `json:"selectedOptionId,omitempty"`
	IsCorrect        bool             `json:"isCorrect"`
	Explanation      string           `json:"explanation"`
}

type TestAnswersResult struct {
	TestID         string           `json:"testId"`
	Title          string           `json:"title"`
	Difficulty     model.Difficulty `json:"difficulty"`
	TotalQuestions int              `json:"totalQuestions"`
	Subject        string           `json:"subject"`
	Answers        []AnswerReview   `json:"answers"`
}

// GetTestAnswers is the post-submission review: full key plus the caller's
// audited selections.
func (s *TestService) GetTestAnswers(userID uint, testID string) (*TestAnswersResult, error) {
	test, err := s.TestRepo.FindWithHierarchy(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	audits, err := s.HistoryRepo.ListAnswers(userID, testID)
	if err != nil {
		return nil, err
	}
	selections := make(map[string]model.TestAnswer, len(audits))
	for _, a := range audits {
		selections[a.QuestionID] = a
	}

	reviews := make([]AnswerReview, 0, len(test.Questions))
	for _, q := range test.Questions {
		review := AnswerReview{
			QuestionID:      q.QuestionID,
			QuestionText:    q.Text,
			Options:         q.Options,
			CorrectOptionID: q.CorrectOptionID,
			Explanation:     q.Explanation,
		}
		if a, ok := selections[q.QuestionID]; ok {
			review.SelectedOptionID = a.SelectedOptionID
			review.IsCorrect = a.IsCorrect
		}
		reviews = append(reviews, review)
	}

	subjectName := ""
	if subject := resolveSubject(test); subject != nil {
		subjectName = subject.Name
	}

	return &TestAnswersResult{
		TestID:         test.ID,
		Title:          test.Title,
		Difficulty:     test.Difficulty,
		TotalQuestions: len(test.Questions),
		Subject:        subjectName,
		Answers:        reviews,
	}, nil
}
