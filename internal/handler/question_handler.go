package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/interview-api/internal/domain/repository"
	"github.com/yourusername/interview-api/internal/handler/dto"
	apperrors "github.com/yourusername/interview-api/internal/pkg/errors"
	"github.com/yourusername/interview-api/internal/service"
)

// QuestionHandler обрабатывает запросы, связанные с каталогом вопросов
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// CreateQuestionRequest представляет запрос на создание вопроса
type CreateQuestionRequest struct {
	Title              string   `json:"title" binding:"required,min=3,max=500"`
	Description        string   `json:"description" binding:"required,max=2000"`
	Category           string   `json:"category" binding:"required"`
	Difficulty         string   `json:"difficulty" binding:"omitempty"`
	ExpectedKeywords   []string `json:"expected_keywords"`
	EvaluationCriteria string   `json:"evaluation_criteria" binding:"required,max=2000"`
}

// CreateQuestion обрабатывает запрос на создание вопроса
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.CreateQuestion(service.CreateQuestionParams{
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category,
		Difficulty:         req.Difficulty,
		ExpectedKeywords:   req.ExpectedKeywords,
		EvaluationCriteria: req.EvaluationCriteria,
	})
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuestionResponse(question))
}

// GetQuestion возвращает вопрос по ID
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint) // Получаем из контекста

	question, err := h.questionService.GetQuestionByID(questionID)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// ListQuestions возвращает вопросы каталога с учётом фильтров
// GET /api/questions?category=Technical&difficulty=Hard&active=true
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	filters := repository.QuestionFilters{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		OnlyActive: c.Query("active") == "true",
	}

	questions, err := h.questionService.ListQuestions(filters)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(questions),
		"data":  dto.NewListQuestionResponse(questions),
	})
}

// UpdateQuestionRequest представляет запрос на изменение вопроса.
// Отсутствующее поле оставляет значение без изменений.
type UpdateQuestionRequest struct {
	Title              *string  `json:"title,omitempty" binding:"omitempty,min=3,max=500"`
	Description        *string  `json:"description,omitempty" binding:"omitempty,max=2000"`
	Category           *string  `json:"category,omitempty"`
	Difficulty         *string  `json:"difficulty,omitempty"`
	ExpectedKeywords   []string `json:"expected_keywords,omitempty"`
	EvaluationCriteria *string  `json:"evaluation_criteria,omitempty" binding:"omitempty,max=2000"`
	IsActive           *bool    `json:"is_active,omitempty"`
}

// UpdateQuestion обрабатывает запрос на изменение вопроса
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.UpdateQuestion(questionID, service.UpdateQuestionParams{
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category,
		Difficulty:         req.Difficulty,
		ExpectedKeywords:   req.ExpectedKeywords,
		EvaluationCriteria: req.EvaluationCriteria,
		IsActive:           req.IsActive,
	})
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// DeleteQuestion удаляет вопрос из каталога
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	if err := h.questionService.DeleteQuestion(questionID); err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

// handleQuestionError преобразует ошибки сервиса в HTTP-статусы
func (h *QuestionHandler) handleQuestionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Internal server error in QuestionHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
