package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wellFormedQuestion(n int) string {
	return fmt.Sprintf(`Вопрос %d. Сколько будет %d + %d?
A) %d
B) %d
C) %d
D) %d
Ответ: B
Объяснение: Простое сложение.
`, n, n, n, n, 2*n, 3*n, 4*n)
}

func TestParseQuestionsWellFormed(t *testing.T) {
	raw := wellFormedQuestion(1) + wellFormedQuestion(2) + wellFormedQuestion(3)

	questions := ParseQuestions(raw, 10)
	require.Len(t, questions, 3)

	q := questions[0]
	assert.Equal(t, "q1", q.QuestionID)
	assert.Equal(t, "Сколько будет 1 + 1?", q.Text)
	require.Len(t, q.Options, 4)
	assert.Equal(t, "a", q.Options[0].OptionID)
	assert.Equal(t, "d", q.Options[3].OptionID)
	assert.Equal(t, "b", q.CorrectOptionID)
	assert.Equal(t, "Простое сложение.", q.Explanation)

	assert.Equal(t, "q2", questions[1].QuestionID)
	assert.Equal(t, "q3", questions[2].QuestionID)
}

func TestParseQuestionsDropsMalformedSegments(t *testing.T) {
	malformed := `Вопрос 2. Вопрос без вариантов ответа.
Ответ: A
`
	raw := wellFormedQuestion(1) + malformed + wellFormedQuestion(3)

	questions := ParseQuestions(raw, 10)
	require.Len(t, questions, 2)

	// the dropped segment leaves a numbering gap
	assert.Equal(t, "q1", questions[0].QuestionID)
	assert.Equal(t, "q3", questions[1].QuestionID)
}

func TestParseQuestionsRequiresResolvableAnswer(t *testing.T) {
	cases := map[string]string{
		"no answer marker": `Вопрос 1. Текст?
A) один
B) два
C) три
D) четыре
`,
		"answer letter without option": `Вопрос 1. Текст?
A) один
B) два
C) три
Ответ: D
`,
		"empty question text": `Вопрос 1.
A) один
B) два
C) три
D) четыре
Ответ: A
`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, ParseQuestions(raw, 10))
		})
	}
}

func TestParseQuestionsTruncatesAtMax(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 8; i++ {
		b.WriteString(wellFormedQuestion(i))
	}

	questions := ParseQuestions(b.String(), 5)
	require.Len(t, questions, 5)
	assert.Equal(t, "q5", questions[4].QuestionID)
}

func TestParseQuestionsIgnoresPreamble(t *testing.T) {
	raw := "Вот ваши вопросы:\n\n" + wellFormedQuestion(1)

	questions := ParseQuestions(raw, 10)
	require.Len(t, questions, 1)
	// the preamble consumed seq 1, so the real question is q2
	assert.Equal(t, "q2", questions[0].QuestionID)
}

func TestParseQuestionsEmptyInput(t *testing.T) {
	assert.Empty(t, ParseQuestions("", 10))
	assert.Empty(t, ParseQuestions("   \n  ", 10))
}

func TestParseQuestionsSkipsEmptyOptionBodies(t *testing.T) {
	raw := `Вопрос 1. Текст?
A) один
B)
C) три
D) четыре
Ответ: A
`
	// only three non-empty options survive, the segment is dropped
	assert.Empty(t, ParseQuestions(raw, 10))
}
