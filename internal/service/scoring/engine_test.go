package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Score_EmptyAnswer(t *testing.T) {
	// Arrange
	engine := NewEngine()

	// Act & Assert
	assert.Equal(t, 0.0, engine.Score("", []string{"go", "sql"}, nil), "Пустой ответ должен давать 0")
	assert.Equal(t, 0.0, engine.Score("   ", []string{"go"}, nil), "Ответ из пробелов должен давать 0")
}

func TestEngine_Score_BaseScoreWithoutKeywords(t *testing.T) {
	// Arrange
	engine := NewEngine()

	// Act
	score := engine.Score("ok", nil, nil)

	// Assert: база 5.0 + бонус за длину 2 символа (2/100*2 = 0.04)
	assert.InDelta(t, 5.04, score, 0.001, "Короткий ответ без ключевых слов должен давать базу плюс малый бонус за длину")
}

func TestEngine_Score_AllKeywordsLongAnswer(t *testing.T) {
	// Arrange
	engine := NewEngine()
	keywords := []string{"hash", "database", "cache"}
	answer := "I would use a hash function to generate short codes, store mappings in a database and put hot entries in a cache for faster reads."

	// Act
	score := engine.Score(answer, keywords, nil)

	// Assert: 5.0 + 3.0 (все ключевые слова) + 2.0 (длина > 100) = 10
	assert.Equal(t, 10.0, score, "Длинный ответ со всеми ключевыми словами должен давать максимум")
}

func TestEngine_Score_CaseInsensitiveKeywords(t *testing.T) {
	// Arrange
	engine := NewEngine()

	// Act
	lower := engine.Score("we used redis and postgres", []string{"Redis", "POSTGRES"}, nil)
	upper := engine.Score("We used REDIS and Postgres", []string{"redis", "postgres"}, nil)

	// Assert
	assert.Equal(t, lower, upper, "Сопоставление ключевых слов не должно зависеть от регистра")
}

func TestEngine_Score_LongerKeywordRichAnswerScoresHigher(t *testing.T) {
	// Arrange
	engine := NewEngine()
	keywords := []string{"memory", "isolation", "scheduler"}
	long := "A process has its own memory space with full isolation from other processes, while threads share memory and are picked by the scheduler. " + strings.Repeat("x", 20)
	short := "short"

	// Act & Assert
	assert.Greater(t, engine.Score(long, keywords, nil), engine.Score(short, keywords, nil),
		"Длинный насыщенный ключевыми словами ответ должен оцениваться выше короткого")
}

func TestEngine_Score_Deterministic(t *testing.T) {
	// Arrange
	engine := NewEngine()
	keywords := []string{"go", "channel"}
	answer := "goroutines communicate through a channel"

	// Act & Assert: повторный вызов с теми же аргументами дает тот же результат
	first := engine.Score(answer, keywords, nil)
	second := engine.Score(answer, keywords, nil)
	assert.Equal(t, first, second, "Score должен быть детерминированным")
}

func TestEngine_Score_AlwaysWithinRange(t *testing.T) {
	// Arrange
	engine := NewEngine()
	answers := []string{
		"",
		"x",
		strings.Repeat("keyword dense answer ", 50),
	}

	// Act & Assert
	for _, answer := range answers {
		score := engine.Score(answer, []string{"keyword", "dense", "answer"}, nil)
		assert.GreaterOrEqual(t, score, 0.0, "Оценка не должна быть меньше 0")
		assert.LessOrEqual(t, score, MaxScore, "Оценка не должна превышать 10")
	}
}

func TestEngine_Score_LengthCountedInRunesNotBytes(t *testing.T) {
	// Arrange: 60 символов кириллицы занимают 120 байт
	engine := NewEngine()
	cyrillic := strings.Repeat("ф", 60)
	require.Equal(t, 120, len(cyrillic))

	// Act
	score := engine.Score(cyrillic, nil, nil)

	// Assert: бонус за длину 60/100*2 = 1.2, а не полный как при подсчёте байтов
	assert.InDelta(t, 6.2, score, 0.001, "Длина ответа считается в символах, не в байтах")
}

func TestEngine_Score_DurationDoesNotAffectScore(t *testing.T) {
	// Arrange
	engine := NewEngine()
	duration := 120

	// Act & Assert
	assert.Equal(t,
		engine.Score("the answer", []string{"answer"}, nil),
		engine.Score("the answer", []string{"answer"}, &duration),
		"Время ответа не должно влиять на численную оценку")
}
