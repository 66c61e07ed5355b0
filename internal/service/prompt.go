package service

import (
	"fmt"
	"strings"

	"ortprep_backend/internal/model"
)

// Difficulty labels shown to the model and to users; the API itself speaks
// the English enum.
var difficultyLabels = map[model.Difficulty]string{
	model.Beginner:     "начальный",
	model.Intermediate: "средний",
	model.Advanced:     "продвинутый",
}

func DifficultyLabel(d model.Difficulty) string {
	if label, ok := difficultyLabels[d]; ok {
		return label
	}
	return string(d)
}

// BuildGenerationPrompt produces the test generation prompt. The format
// section must stay in sync with the markers in question_parser.go.
func BuildGenerationPrompt(topicName, sampleText string, difficulty model.Difficulty, numQuestions int) string {
	var b strings.Builder

	b.WriteString("Внимание: отвечай только на русском языке.\n\n")
	b.WriteString("Ты — опытный преподаватель, готовящий учеников к ОРТ (Общее Республиканское Тестирование) в Кыргызстане.\n\n")
	fmt.Fprintf(&b, "Вот учебный материал и примеры по теме \"%s\":\n%s\n\n", topicName, sampleText)
	fmt.Fprintf(&b, "Сгенерируй %d реалистичных тестовых вопросов по этой теме для уровня \"%s\".\n\n", numQuestions, DifficultyLabel(difficulty))
	b.WriteString("Для каждого вопроса:\n")
	b.WriteString("- Укажи текст вопроса.\n")
	b.WriteString("- Дай 4 варианта ответа (A, B, C, D).\n")
	b.WriteString("- Укажи правильный ответ (например: Ответ: B).\n")
	b.WriteString("- Дай краткое объяснение (1-2 предложения), почему этот ответ верный или как решать.\n\n")
	b.WriteString("Формат:\n")
	b.WriteString("Вопрос 1. [текст]\n")
	b.WriteString("A) [вариант A]\n")
	b.WriteString("B) [вариант B]\n")
	b.WriteString("C) [вариант C]\n")
	b.WriteString("D) [вариант D]\n")
	b.WriteString("Ответ: [A/B/C/D]\n")
	b.WriteString("Объяснение: [краткое объяснение]\n\n")
	fmt.Fprintf(&b, "И так далее до %d вопросов. Не добавляй лишних пояснений.", numQuestions)

	return b.String()
}

// QuestionReview is one line of the per-question breakdown fed into the
// advice prompt.
type QuestionReview struct {
	Text            string
	CorrectOptionID string
	SelectedOption  string
	Answered        bool
	IsCorrect       bool
	Explanation     string
}

// BuildAdvicePrompt produces the study advice prompt from the latest scored
// attempt and its per-question breakdown.
func BuildAdvicePrompt(subjectName string, history *model.TestHistory, reviews []QuestionReview) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Пользователь прошёл тест по предмету: %s, уровень сложности: %s. Результат: %d%% (%d из %d правильных ответов).\n\n",
		subjectName, DifficultyLabel(history.Level), history.ResultPercent, history.Correct, history.Total)
	b.WriteString("Ниже приведён подробный разбор вопросов, включая ответы пользователя, правильные ответы и пояснения:\n\n")

	for _, r := range reviews {
		fmt.Fprintf(&b, "Вопрос: %s\n", r.Text)
		fmt.Fprintf(&b, "Правильный ответ: %s\n", r.CorrectOptionID)
		if r.Answered {
			verdict := "ошибка"
			if r.IsCorrect {
				verdict = "верно"
			}
			fmt.Fprintf(&b, "Ответ пользователя: %s (%s)\n", r.SelectedOption, verdict)
		} else {
			b.WriteString("Ответ пользователя: не отвечал\n")
		}
		if r.Explanation != "" {
			fmt.Fprintf(&b, "Пояснение: %s\n", r.Explanation)
		}
		b.WriteString("\n")
	}

	b.WriteString("На основе вышеуказанных данных, пожалуйста, сгенерируй развёрнутый и полезный текстовый совет, направленный на улучшение знаний пользователя. Ответ должен содержать следующие разделы:\n\n")
	b.WriteString("1. Общая оценка результатов.\n")
	b.WriteString("2. Ошибки и слабые темы.\n")
	b.WriteString("3. Конкретные рекомендации по обучению (что почитать, на что обратить внимание, какие задания повторить).\n")
	b.WriteString("4. Советы по стратегии прохождения теста (например, как правильно распределять время).\n")
	b.WriteString("5. Мотивация и поддержка — чтобы пользователь не терял уверенность.\n\n")
	b.WriteString("Стиль ответа: дружелюбный, поддерживающий, но профессиональный. Избегай использования эмодзи, markdown и изображений. Ответ должен быть написан строго на русском языке.")

	return b.String()
}

// BuildAskPrompt wraps a free-form student question for the question box.
func BuildAskPrompt(question string) string {
	var b strings.Builder

	b.WriteString("Ты — преподаватель, помогающий ученикам готовиться к ОРТ (Общее Республиканское Тестирование) в Кыргызстане.\n")
	b.WriteString("Ответь на вопрос ученика кратко и понятно, строго на русском языке, без markdown и эмодзи.\n\n")
	fmt.Fprintf(&b, "Вопрос: %s", question)

	return b.String()
}
