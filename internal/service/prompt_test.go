package service

import (
	"strings"
	"testing"

	"ortprep_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDifficultyLabel(t *testing.T) {
	assert.Equal(t, "начальный", DifficultyLabel(model.Beginner))
	assert.Equal(t, "средний", DifficultyLabel(model.Intermediate))
	assert.Equal(t, "продвинутый", DifficultyLabel(model.Advanced))
	assert.Equal(t, "unknown", DifficultyLabel(model.Difficulty("unknown")))
}

// The generation prompt dictates the exact format the parser expects, so
// the two must agree on markers.
func TestGenerationPromptMatchesParserMarkers(t *testing.T) {
	prompt := BuildGenerationPrompt("Алгебра", "пример материала", model.Intermediate, 30)

	assert.Contains(t, prompt, "Алгебра")
	assert.Contains(t, prompt, "пример материала")
	assert.Contains(t, prompt, "средний")
	assert.Contains(t, prompt, "30")

	assert.Contains(t, prompt, "Вопрос 1.")
	assert.Contains(t, prompt, answerMarker)
	assert.Contains(t, prompt, explanationMarker)
	for _, letter := range []string{"A)", "B)", "C)", "D)"} {
		assert.Contains(t, prompt, letter)
	}
}

func TestAdvicePromptIncludesBreakdown(t *testing.T) {
	history := &model.TestHistory{
		Level:         model.Beginner,
		ResultPercent: 50,
		Correct:       1,
		Total:         2,
	}
	reviews := []QuestionReview{
		{Text: "Первый вопрос", CorrectOptionID: "a", Answered: true, SelectedOption: "a", IsCorrect: true},
		{Text: "Второй вопрос", CorrectOptionID: "b", Answered: false, Explanation: "разбор"},
	}

	prompt := BuildAdvicePrompt("Математика", history, reviews)

	assert.Contains(t, prompt, "Математика")
	assert.Contains(t, prompt, "50%")
	assert.Contains(t, prompt, "Первый вопрос")
	assert.Contains(t, prompt, "верно")
	assert.Contains(t, prompt, "не отвечал")
	assert.Contains(t, prompt, "разбор")
}

func TestAskPromptWrapsQuestion(t *testing.T) {
	prompt := BuildAskPrompt("Что такое ОРТ?")
	assert.True(t, strings.HasSuffix(prompt, "Что такое ОРТ?"))
	assert.Contains(t, prompt, "на русском языке")
}
