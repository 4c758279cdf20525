package scoring

// AnswerFacts содержит факты об одном ответе, нужные для вывода качественных тегов
type AnswerFacts struct {
	AnswerLength int  // Длина текста ответа в символах, 0 если ответа нет
	DurationSec  int  // Время ответа в секундах, 0 если неизвестно
	Answered     bool // Был ли ответ оценён
}

// DeriveStrengths возвращает сильные стороны кандидата по итогам интервью.
// Теги отображаются в отчёте дословно, поэтому их формулировки фиксированы.
func (e *Engine) DeriveStrengths(overallScore float64, answers []AnswerFacts) []string {
	strengths := []string{}

	for _, a := range answers {
		if a.AnswerLength > DetailedAnswerChars {
			strengths = append(strengths, "Detailed answers provided")
			break
		}
	}
	for _, a := range answers {
		if a.DurationSec > GoodThinkingTimeSec {
			strengths = append(strengths, "Good thinking time")
			break
		}
	}

	switch {
	case overallScore >= 7:
		strengths = append(strengths,
			"Excellent communication skills",
			"Strong technical knowledge",
			"Problem-solving ability",
		)
	case overallScore >= 5:
		strengths = append(strengths,
			"Good understanding",
			"Fair communication",
		)
	}

	return strengths
}

// DeriveWeaknesses возвращает слабые стороны кандидата по итогам интервью
func (e *Engine) DeriveWeaknesses(overallScore float64, answers []AnswerFacts) []string {
	weaknesses := []string{}

	for _, a := range answers {
		if !a.Answered || a.AnswerLength < ShortAnswerChars {
			weaknesses = append(weaknesses, "Short or unclear answers")
			break
		}
	}

	switch {
	case overallScore < 5:
		weaknesses = append(weaknesses,
			"Incomplete answers",
			"Lack of clarity",
			"Missing key concepts",
		)
	case overallScore < 7:
		weaknesses = append(weaknesses,
			"Could be more detailed",
			"Some gaps in knowledge",
		)
	}

	return weaknesses
}
