package service

import (
	"fmt"
	"log"

	"github.com/yourusername/interview-api/internal/domain/entity"
	"github.com/yourusername/interview-api/internal/domain/repository"
	apperrors "github.com/yourusername/interview-api/internal/pkg/errors"
)

// QuestionService предоставляет методы для работы с каталогом вопросов
type QuestionService struct {
	questionRepo repository.QuestionRepository
}

// NewQuestionService создает новый сервис каталога вопросов
func NewQuestionService(questionRepo repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

// CreateQuestionParams содержит входные данные для создания вопроса
type CreateQuestionParams struct {
	Title              string
	Description        string
	Category           string
	Difficulty         string
	ExpectedKeywords   []string
	EvaluationCriteria string
}

// CreateQuestion добавляет новый вопрос в каталог
func (s *QuestionService) CreateQuestion(params CreateQuestionParams) (*entity.Question, error) {
	if params.Title == "" || params.Description == "" || params.EvaluationCriteria == "" {
		return nil, fmt.Errorf("%w: title, description and evaluation criteria are required", apperrors.ErrValidation)
	}
	if !entity.IsValidCategory(params.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, params.Category)
	}
	difficulty := params.Difficulty
	if difficulty == "" {
		difficulty = entity.DifficultyMedium
	}
	if !entity.IsValidDifficulty(difficulty) {
		return nil, fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrValidation, difficulty)
	}

	question := &entity.Question{
		Title:              params.Title,
		Description:        params.Description,
		Category:           params.Category,
		Difficulty:         difficulty,
		ExpectedKeywords:   entity.StringArray(params.ExpectedKeywords),
		EvaluationCriteria: params.EvaluationCriteria,
		IsActive:           true,
	}
	if question.ExpectedKeywords == nil {
		question.ExpectedKeywords = entity.StringArray{}
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// GetQuestionByID возвращает вопрос по ID
func (s *QuestionService) GetQuestionByID(id uint) (*entity.Question, error) {
	return s.questionRepo.GetByID(id)
}

// ListQuestions возвращает вопросы каталога с учётом фильтров
func (s *QuestionService) ListQuestions(filters repository.QuestionFilters) ([]entity.Question, error) {
	if filters.Category != "" && !entity.IsValidCategory(filters.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, filters.Category)
	}
	if filters.Difficulty != "" && !entity.IsValidDifficulty(filters.Difficulty) {
		return nil, fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrValidation, filters.Difficulty)
	}
	return s.questionRepo.List(filters)
}

// UpdateQuestionParams содержит изменяемые поля вопроса.
// Nil-поле означает "оставить без изменений".
type UpdateQuestionParams struct {
	Title              *string
	Description        *string
	Category           *string
	Difficulty         *string
	ExpectedKeywords   []string
	EvaluationCriteria *string
	IsActive           *bool
}

// UpdateQuestion изменяет вопрос каталога. Историю интервью правка не трогает:
// сессии хранят денормализованную копию текста.
func (s *QuestionService) UpdateQuestion(id uint, params UpdateQuestionParams) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		question.Title = *params.Title
	}
	if params.Description != nil {
		question.Description = *params.Description
	}
	if params.Category != nil {
		if !entity.IsValidCategory(*params.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, *params.Category)
		}
		question.Category = *params.Category
	}
	if params.Difficulty != nil {
		if !entity.IsValidDifficulty(*params.Difficulty) {
			return nil, fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrValidation, *params.Difficulty)
		}
		question.Difficulty = *params.Difficulty
	}
	if params.ExpectedKeywords != nil {
		question.ExpectedKeywords = entity.StringArray(params.ExpectedKeywords)
	}
	if params.EvaluationCriteria != nil {
		question.EvaluationCriteria = *params.EvaluationCriteria
	}
	if params.IsActive != nil {
		question.IsActive = *params.IsActive
	}

	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return question, nil
}

// DeleteQuestion удаляет вопрос из каталога
func (s *QuestionService) DeleteQuestion(id uint) error {
	return s.questionRepo.Delete(id)
}

// SelectQuestions возвращает до count активных вопросов для новой сессии,
// от новых к старым. Пустая категория означает любой раунд.
// Ноль подходящих вопросов - сигнал ErrNoQuestionsAvailable; короткий,
// но непустой результат допустим - решение за вызывающим.
func (s *QuestionService) SelectQuestions(category string, count int) ([]entity.Question, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: question count must be positive", apperrors.ErrValidation)
	}
	if category != "" && !entity.IsValidCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, category)
	}

	questions, err := s.questionRepo.GetActiveByCategory(category, count)
	if err != nil {
		return nil, fmt.Errorf("failed to select questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: category %q", apperrors.ErrNoQuestionsAvailable, category)
	}
	if len(questions) < count {
		log.Printf("[QuestionService] В каталоге только %d активных вопросов категории %q (запрошено %d)",
			len(questions), category, count)
	}
	return questions, nil
}
