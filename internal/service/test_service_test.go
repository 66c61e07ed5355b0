package service

import (
	"testing"

	"ortprep_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoringQuestions() []model.TestQuestion {
	return []model.TestQuestion{
		{QuestionID: "q1", CorrectOptionID: "a", Explanation: "потому что a"},
		{QuestionID: "q2", CorrectOptionID: "b", Explanation: "потому что b"},
		{QuestionID: "q3", CorrectOptionID: "c", Explanation: "потому что c"},
	}
}

func TestScoreTestAllCorrect(t *testing.T) {
	answers := []model.SubmittedAnswer{
		{QuestionID: "q1", SelectedOptionID: "a"},
		{QuestionID: "q2", SelectedOptionID: "b"},
		{QuestionID: "q3", SelectedOptionID: "c"},
	}

	score, correctAnswers, audits := scoreTest(7, "t1", scoringQuestions(), answers)

	assert.Equal(t, 3, score)
	require.Len(t, correctAnswers, 3)
	assert.Equal(t, "q1", correctAnswers[0].QuestionID)
	assert.Equal(t, "a", correctAnswers[0].CorrectOptionID)
	assert.Equal(t, "потому что a", correctAnswers[0].Explanation)

	require.Len(t, audits, 3)
	for _, a := range audits {
		assert.True(t, a.IsCorrect)
		assert.Equal(t, uint(7), a.UserID)
		assert.Equal(t, "t1", a.TestID)
	}
}

func TestScoreTestUnansweredCountsIncorrect(t *testing.T) {
	answers := []model.SubmittedAnswer{
		{QuestionID: "q2", SelectedOptionID: "b"},
	}

	score, correctAnswers, audits := scoreTest(1, "t1", scoringQuestions(), answers)

	assert.Equal(t, 1, score)
	// the key always covers every question
	assert.Len(t, correctAnswers, 3)
	// unanswered questions produce no audit rows
	require.Len(t, audits, 1)
	assert.Equal(t, "q2", audits[0].QuestionID)
	assert.True(t, audits[0].IsCorrect)
}

func TestScoreTestFirstAnswerWins(t *testing.T) {
	answers := []model.SubmittedAnswer{
		{QuestionID: "q1", SelectedOptionID: "d"},
		{QuestionID: "q1", SelectedOptionID: "a"},
	}

	score, _, audits := scoreTest(1, "t1", scoringQuestions(), answers)

	assert.Equal(t, 0, score)
	require.Len(t, audits, 1)
	assert.Equal(t, "d", audits[0].SelectedOptionID)
	assert.False(t, audits[0].IsCorrect)
}

func TestScoreTestIgnoresUnknownQuestions(t *testing.T) {
	answers := []model.SubmittedAnswer{
		{QuestionID: "q99", SelectedOptionID: "a"},
	}

	score, _, audits := scoreTest(1, "t1", scoringQuestions(), answers)

	assert.Equal(t, 0, score)
	assert.Empty(t, audits)
}

func TestResultPercent(t *testing.T) {
	assert.Equal(t, 0, resultPercent(0, 0))
	assert.Equal(t, 100, resultPercent(3, 3))
	assert.Equal(t, 67, resultPercent(2, 3))
	assert.Equal(t, 33, resultPercent(1, 3))
	assert.Equal(t, 17, resultPercent(1, 6))
	assert.Equal(t, 0, resultPercent(0, 5))
}

func TestSanitizeHidesAnswerKey(t *testing.T) {
	questions := []model.TestQuestion{
		{
			QuestionID:      "q1",
			Text:            "Текст вопроса",
			Options:         model.OptionList{{OptionID: "a", Text: "один"}},
			CorrectOptionID: "a",
			Explanation:     "разбор",
		},
	}

	st := sanitize("t1", "Тест", 1800, questions, false)

	assert.Equal(t, "t1", st.TestID)
	assert.Equal(t, 1800, st.TimeLimit)
	require.Len(t, st.Questions, 1)
	assert.Empty(t, st.Questions[0].Explanation)

	withExpl := sanitize("t1", "Тест", 1800, questions, true)
	assert.Equal(t, "разбор", withExpl.Questions[0].Explanation)
}

func TestBuildReviewsJoinsInStorageOrder(t *testing.T) {
	questions := []model.TestQuestion{
		{QuestionID: "q1", Text: "первый", CorrectOptionID: "a", Explanation: "e1"},
		{QuestionID: "q2", Text: "второй", CorrectOptionID: "b"},
	}
	audits := []model.TestAnswer{
		{QuestionID: "q2", SelectedOptionID: "c", IsCorrect: false},
	}

	reviews := buildReviews(questions, audits)
	require.Len(t, reviews, 2)

	assert.Equal(t, "первый", reviews[0].Text)
	assert.False(t, reviews[0].Answered)

	assert.True(t, reviews[1].Answered)
	assert.Equal(t, "c", reviews[1].SelectedOption)
	assert.False(t, reviews[1].IsCorrect)
}

func TestScoreTestEmptySubmission(t *testing.T) {
	score, correctAnswers, audits := scoreTest(1, "t1", scoringQuestions(), nil)

	assert.Equal(t, 0, score)
	// the answer key still covers every question
	require.Len(t, correctAnswers, 3)
	assert.Empty(t, audits)
}

func TestResolveSubject(t *testing.T) {
	subject := &model.Subject{Name: "Математика"}

	full := &model.Test{
		Topic: &model.Topic{Subsection: &model.Subsection{Subject: subject}},
	}
	assert.Same(t, subject, resolveSubject(full))

	// any broken link in topic -> subsection -> subject loses attribution
	assert.Nil(t, resolveSubject(&model.Test{}))
	assert.Nil(t, resolveSubject(&model.Test{Topic: &model.Topic{}}))
	assert.Nil(t, resolveSubject(&model.Test{
		Topic: &model.Topic{Subsection: &model.Subsection{}},
	}))
}
