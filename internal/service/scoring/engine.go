package scoring

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Константы эвристики оценивания
const (
	// BaseScore - стартовая оценка любого непустого ответа
	BaseScore = 5.0

	// KeywordWeight - максимальный вклад ключевых слов в оценку
	KeywordWeight = 3.0

	// LengthWeight - максимальный вклад длины ответа в оценку
	LengthWeight = 2.0

	// LengthTargetChars - длина ответа в символах, при которой бонус за длину насыщается
	LengthTargetChars = 100

	// MaxScore - верхняя граница итоговой оценки
	MaxScore = 10.0

	// DetailedAnswerChars - порог длины ответа для тега "развёрнутые ответы"
	DetailedAnswerChars = 100

	// ShortAnswerChars - порог длины, ниже которого ответ считается коротким
	ShortAnswerChars = 20

	// GoodThinkingTimeSec - порог времени обдумывания для тега "хорошее время на размышление"
	GoodThinkingTimeSec = 60
)

// Engine вычисляет оценку ответа кандидата по детерминированной эвристике.
// Это не ML-модель: оценка объяснима и воспроизводима. Внешняя оценка
// (от человека или AI-сервиса), если она передана явно, всегда важнее
// вычисленной - Engine вызывается только как fallback.
type Engine struct{}

// NewEngine создает новый движок оценивания
func NewEngine() *Engine {
	return &Engine{}
}

// Score возвращает оценку ответа в диапазоне [0,10].
// Пустой или отсутствующий ответ всегда даёт 0. Далее: база 5.0,
// плюс доля найденных ключевых слов * 3.0, плюс бонус за длину
// (насыщается на 100 символах). Клампится итоговая сумма,
// а не промежуточные слагаемые.
// durationSec на численную оценку не влияет - время ответа учитывается
// только при выводе качественных тегов на завершении сессии.
func (e *Engine) Score(answerText string, expectedKeywords []string, durationSec *int) float64 {
	if strings.TrimSpace(answerText) == "" {
		return 0
	}

	score := BaseScore

	score += e.keywordMatchRatio(answerText, expectedKeywords) * KeywordWeight

	// Длина считается в рунах: для кириллицы len() дал бы двойной бонус
	lengthBonus := float64(utf8.RuneCountInString(answerText)) / LengthTargetChars * LengthWeight
	score += math.Min(LengthWeight, lengthBonus)

	return clamp(score, 0, MaxScore)
}

// keywordMatchRatio возвращает долю ожидаемых ключевых слов,
// найденных в ответе как подстроки без учёта регистра
func (e *Engine) keywordMatchRatio(answerText string, expectedKeywords []string) float64 {
	if len(expectedKeywords) == 0 {
		return 0
	}

	lower := strings.ToLower(answerText)
	matched := 0
	for _, kw := range expectedKeywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched++
		}
	}
	return float64(matched) / float64(len(expectedKeywords))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
