package service

import (
	"fmt"
	"regexp"
	"strings"

	"ortprep_backend/internal/model"
)

// The generation prompt asks the model for a fixed Russian template:
//
//	Вопрос 1. [текст]
//	A) ... B) ... C) ... D) ...
//	Ответ: [A/B/C/D]
//	Объяснение: [короткий разбор]
//
// Model output drifts from the template regularly, so parsing is
// tolerance-first: a malformed segment is dropped, never an error.
var (
	questionMarkerRe = regexp.MustCompile(`Вопрос\s*\d+\s*\.`)
	optionMarkerRe   = regexp.MustCompile(`[A-D]\)`)
	answerLetterRe   = regexp.MustCompile(`[A-D]`)
)

const (
	answerMarker      = "Ответ:"
	explanationMarker = "Объяснение:"
	minOptions        = 4
)

// ParseQuestions converts one block of generated text into structured
// questions, at most maxQuestions of them. Question ids are assigned per
// segment in encounter order, so a dropped segment leaves a gap rather than
// renumbering its successors.
func ParseQuestions(raw string, maxQuestions int) []model.TestQuestion {
	segments := questionMarkerRe.Split(raw, -1)

	questions := make([]model.TestQuestion, 0, maxQuestions)
	seq := 0
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		seq++

		q, ok := parseSegment(segment, seq)
		if !ok {
			continue
		}

		questions = append(questions, q)
		if len(questions) == maxQuestions {
			break
		}
	}

	return questions
}

// parseSegment extracts one question from the text between two question
// markers. ok is false when the segment lacks four non-empty options or a
// resolvable correct option.
func parseSegment(segment string, seq int) (model.TestQuestion, bool) {
	mainPart, explanation := splitOnce(segment, explanationMarker)
	textAndOptions, answerPart := splitOnce(mainPart, answerMarker)

	parts := optionMarkerRe.Split(textAndOptions, -1)
	text := strings.TrimSpace(parts[0])

	options := make(model.OptionList, 0, minOptions)
	for i, body := range parts[1:] {
		body = strings.TrimSpace(body)
		if body == "" {
			continue
		}
		options = append(options, model.Option{
			OptionID: string(rune('a' + i)),
			Text:     body,
		})
	}

	correct := ""
	if answerPart != "" {
		if m := answerLetterRe.FindString(answerPart); m != "" {
			correct = strings.ToLower(m)
		}
	}

	q := model.TestQuestion{
		QuestionID:      fmt.Sprintf("q%d", seq),
		Text:            text,
		Options:         options,
		CorrectOptionID: correct,
		Explanation:     strings.TrimSpace(explanation),
	}

	if text == "" || len(options) < minOptions || correct == "" || !hasOption(options, correct) {
		return model.TestQuestion{}, false
	}
	return q, true
}

func splitOnce(s, marker string) (head, tail string) {
	parts := strings.SplitN(s, marker, 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

func hasOption(options model.OptionList, id string) bool {
	for _, o := range options {
		if o.OptionID == id {
			return true
		}
	}
	return false
}
