package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/interview-api/internal/domain/entity"
	"github.com/yourusername/interview-api/internal/domain/repository"
	apperrors "github.com/yourusername/interview-api/internal/pkg/errors"
	"github.com/yourusername/interview-api/internal/repository/memory"
)

func validQuestionParams() CreateQuestionParams {
	return CreateQuestionParams{
		Title:              "Tell me about a conflict with a teammate",
		Description:        "Looking for self-awareness and resolution steps",
		Category:           entity.CategoryBehavioral,
		Difficulty:         entity.DifficultyEasy,
		ExpectedKeywords:   []string{"conflict", "resolution"},
		EvaluationCriteria: "Clear situation, action and outcome",
	}
}

func TestQuestionService_CreateQuestion_Success(t *testing.T) {
	// Arrange
	svc := NewQuestionService(memory.NewQuestionRepo())

	// Act
	question, err := svc.CreateQuestion(validQuestionParams())

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, question.ID, "Вопрос должен получить идентификатор")
	assert.True(t, question.IsActive, "Новый вопрос активен по умолчанию")
	assert.Equal(t, entity.DifficultyEasy, question.Difficulty)
}

func TestQuestionService_CreateQuestion_DefaultDifficulty(t *testing.T) {
	// Arrange
	svc := NewQuestionService(memory.NewQuestionRepo())
	params := validQuestionParams()
	params.Difficulty = ""

	// Act
	question, err := svc.CreateQuestion(params)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.DifficultyMedium, question.Difficulty, "Пустая сложность означает Medium")
}

func TestQuestionService_CreateQuestion_ValidationErrors(t *testing.T) {
	// Arrange
	svc := NewQuestionService(memory.NewQuestionRepo())

	tests := []struct {
		name   string
		mutate func(*CreateQuestionParams)
	}{
		{"без заголовка", func(p *CreateQuestionParams) { p.Title = "" }},
		{"без описания", func(p *CreateQuestionParams) { p.Description = "" }},
		{"без критериев оценки", func(p *CreateQuestionParams) { p.EvaluationCriteria = "" }},
		{"неизвестная категория", func(p *CreateQuestionParams) { p.Category = "Cooking" }},
		{"неизвестная сложность", func(p *CreateQuestionParams) { p.Difficulty = "Impossible" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validQuestionParams()
			tt.mutate(&params)

			// Act
			question, err := svc.CreateQuestion(params)

			// Assert
			assert.Nil(t, question)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestQuestionService_UpdateQuestion_PartialUpdate(t *testing.T) {
	// Arrange
	svc := NewQuestionService(memory.NewQuestionRepo())
	created, err := svc.CreateQuestion(validQuestionParams())
	require.NoError(t, err)

	newTitle := "Updated title"
	inactive := false

	// Act
	updated, err := svc.UpdateQuestion(created.ID, UpdateQuestionParams{
		Title:    &newTitle,
		IsActive: &inactive,
	})

	// Assert: меняются только переданные поля
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.False(t, updated.IsActive)
	assert.Equal(t, created.Description, updated.Description, "Непереданные поля остаются без изменений")
	assert.Equal(t, created.Category, updated.Category)
}

func TestQuestionService_UpdateQuestion_NotFound(t *testing.T) {
	// Arrange
	svc := NewQuestionService(memory.NewQuestionRepo())
	title := "whatever"

	// Act
	updated, err := svc.UpdateQuestion(999, UpdateQuestionParams{Title: &title})

	// Assert
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuestionService_ListQuestions_FilterByCategory(t *testing.T) {
	// Arrange
	svc := NewQuestionService(memory.NewQuestionRepo())
	behavioral := validQuestionParams()
	technical := validQuestionParams()
	technical.Title = "Design a rate limiter"
	technical.Category = entity.CategoryTechnical
	_, err := svc.CreateQuestion(behavioral)
	require.NoError(t, err)
	_, err = svc.CreateQuestion(technical)
	require.NoError(t, err)

	// Act
	questions, err := svc.ListQuestions(repository.QuestionFilters{Category: entity.CategoryTechnical})

	// Assert
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Design a rate limiter", questions[0].Title)
}

func TestQuestionService_SelectQuestions_SkipsInactive(t *testing.T) {
	// Arrange
	svc := NewQuestionService(memory.NewQuestionRepo())
	active := validQuestionParams()
	retired := validQuestionParams()
	retired.Title = "Retired question"
	created, err := svc.CreateQuestion(retired)
	require.NoError(t, err)
	inactive := false
	_, err = svc.UpdateQuestion(created.ID, UpdateQuestionParams{IsActive: &inactive})
	require.NoError(t, err)
	_, err = svc.CreateQuestion(active)
	require.NoError(t, err)

	// Act
	questions, err := svc.SelectQuestions(entity.CategoryBehavioral, 5)

	// Assert: неактивные вопросы в сессии не попадают
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.NotEqual(t, "Retired question", questions[0].Title)
}

func TestQuestionService_SelectQuestions_Empty(t *testing.T) {
	// Arrange
	svc := NewQuestionService(memory.NewQuestionRepo())

	// Act
	questions, err := svc.SelectQuestions(entity.CategoryHR, 3)

	// Assert
	assert.Nil(t, questions)
	assert.ErrorIs(t, err, apperrors.ErrNoQuestionsAvailable, "Пустой каталог не позволяет начать интервью")
}

func TestQuestionService_SelectQuestions_FewerThanRequested(t *testing.T) {
	// Arrange: в каталоге один вопрос, запрошено три
	svc := NewQuestionService(memory.NewQuestionRepo())
	_, err := svc.CreateQuestion(validQuestionParams())
	require.NoError(t, err)

	// Act
	questions, err := svc.SelectQuestions(entity.CategoryBehavioral, 3)

	// Assert: короткий, но непустой результат допустим
	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestQuestionService_DeleteQuestion(t *testing.T) {
	// Arrange
	svc := NewQuestionService(memory.NewQuestionRepo())
	created, err := svc.CreateQuestion(validQuestionParams())
	require.NoError(t, err)

	// Act
	err = svc.DeleteQuestion(created.ID)

	// Assert
	require.NoError(t, err)
	_, err = svc.GetQuestionByID(created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
