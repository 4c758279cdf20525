package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnsweredQuestions_ScanValue(t *testing.T) {
	// Arrange
	answer := "my answer"
	score := 8.0
	original := AnsweredQuestions{
		{QuestionID: 1, QuestionText: "q1", CandidateAnswer: &answer, Score: &score},
		{QuestionID: 2, QuestionText: "q2"},
	}

	// Act: сериализуем для JSONB и читаем обратно
	value, err := original.Value()
	require.NoError(t, err)

	var restored AnsweredQuestions
	err = restored.Scan(value)

	// Assert
	require.NoError(t, err)
	require.Len(t, restored, 2)
	assert.Equal(t, uint(1), restored[0].QuestionID)
	assert.Equal(t, "my answer", *restored[0].CandidateAnswer)
	assert.Equal(t, 8.0, *restored[0].Score)
	assert.Nil(t, restored[1].CandidateAnswer)
}

func TestAnsweredQuestions_ScanNull(t *testing.T) {
	// Arrange
	var questions AnsweredQuestions

	// Act
	err := questions.Scan(nil)

	// Assert: NULL из базы превращается в пустой список
	require.NoError(t, err)
	assert.NotNil(t, questions)
	assert.Empty(t, questions)
}

func TestStringArray_ValueEmpty(t *testing.T) {
	// Arrange & Act
	value, err := StringArray(nil).Value()

	// Assert: в базу уходит пустой JSON массив, а не NULL
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)
}

func TestStringArray_ScanRoundTrip(t *testing.T) {
	// Arrange
	original := StringArray{"hash", "database"}

	// Act
	value, err := original.Value()
	require.NoError(t, err)
	var restored StringArray
	err = restored.Scan(value)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestInterviewSession_HasQuestionIndex(t *testing.T) {
	// Arrange
	session := InterviewSession{
		Questions: AnsweredQuestions{{QuestionID: 1}, {QuestionID: 2}},
	}

	// Act & Assert
	assert.True(t, session.HasQuestionIndex(0))
	assert.True(t, session.HasQuestionIndex(1))
	assert.False(t, session.HasQuestionIndex(-1), "Отрицательный индекс невалиден")
	assert.False(t, session.HasQuestionIndex(2), "Индекс за пределами списка невалиден")
}

func TestInterviewSession_AnsweredCount(t *testing.T) {
	// Arrange
	score := 5.0
	session := InterviewSession{
		Questions: AnsweredQuestions{
			{QuestionID: 1, Score: &score},
			{QuestionID: 2},
			{QuestionID: 3, Score: &score},
		},
	}

	// Act & Assert
	assert.Equal(t, 2, session.AnsweredCount(), "Отвеченным считается вопрос с выставленной оценкой")
}

func TestInterviewSession_IsCompleted(t *testing.T) {
	// Arrange & Act & Assert
	assert.False(t, (&InterviewSession{Status: SessionStatusInProgress}).IsCompleted())
	assert.True(t, (&InterviewSession{Status: SessionStatusCompleted}).IsCompleted())
}

func TestIsValidCategory(t *testing.T) {
	// Act & Assert
	assert.True(t, IsValidCategory(CategoryHR))
	assert.True(t, IsValidCategory(CategoryTechnical))
	assert.True(t, IsValidCategory(CategoryBehavioral))
	assert.False(t, IsValidCategory("technical"), "Категории чувствительны к регистру")
	assert.False(t, IsValidCategory(""))
}

func TestIsValidDifficulty(t *testing.T) {
	// Act & Assert
	assert.True(t, IsValidDifficulty(DifficultyEasy))
	assert.True(t, IsValidDifficulty(DifficultyMedium))
	assert.True(t, IsValidDifficulty(DifficultyHard))
	assert.False(t, IsValidDifficulty("Extreme"))
}
