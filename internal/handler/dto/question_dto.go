package dto

import (
	"time"

	"github.com/yourusername/interview-api/internal/domain/entity"
)

// QuestionResponse представляет вопрос каталога в формате для ответа клиенту
type QuestionResponse struct {
	ID                 uint      `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	Difficulty         string    `json:"difficulty"`
	ExpectedKeywords   []string  `json:"expected_keywords"`
	EvaluationCriteria string    `json:"evaluation_criteria"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewQuestionResponse преобразует entity.Question в DTO
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:                 q.ID,
		Title:              q.Title,
		Description:        q.Description,
		Category:           q.Category,
		Difficulty:         q.Difficulty,
		ExpectedKeywords:   q.ExpectedKeywords,
		EvaluationCriteria: q.EvaluationCriteria,
		IsActive:           q.IsActive,
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
	}
}

// NewListQuestionResponse преобразует список вопросов в DTO
func NewListQuestionResponse(questions []entity.Question) []QuestionResponse {
	responses := make([]QuestionResponse, len(questions))
	for i := range questions {
		responses[i] = NewQuestionResponse(&questions[i])
	}
	return responses
}
