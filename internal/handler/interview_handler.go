package handler

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/interview-api/internal/domain/entity"
	"github.com/yourusername/interview-api/internal/handler/dto"
	apperrors "github.com/yourusername/interview-api/internal/pkg/errors"
	"github.com/yourusername/interview-api/internal/service"
)

// InterviewHandler обрабатывает запросы, связанные с сессиями интервью
type InterviewHandler struct {
	interviewService *service.InterviewService
	emailService     service.EmailService
}

// NewInterviewHandler создает новый обработчик интервью
func NewInterviewHandler(interviewService *service.InterviewService, emailService service.EmailService) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		emailService:     emailService,
	}
}

// CreateSessionRequest представляет запрос на создание сессии интервью
type CreateSessionRequest struct {
	CandidateName  string `json:"candidate_name" binding:"required,min=1,max=100"`
	CandidateEmail string `json:"candidate_email" binding:"required,email"`
	InterviewRound string `json:"interview_round" binding:"required"`
	QuestionCount  int    `json:"question_count" binding:"required,min=1,max=50"`
	Category       string `json:"category" binding:"omitempty"` // Опционально, пусто = категория раунда
}

// CreateSession обрабатывает запрос на создание сессии интервью
func (h *InterviewHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.interviewService.CreateSession(service.CreateSessionParams{
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		InterviewRound: req.InterviewRound,
		QuestionCount:  req.QuestionCount,
		CategoryFilter: req.Category,
	})
	if err != nil {
		h.handleInterviewError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSessionResponse(session))
}

// GetSession возвращает текущее состояние сессии
func (h *InterviewHandler) GetSession(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string) // Получаем из контекста

	session, err := h.interviewService.GetSession(sessionID)
	if err != nil {
		h.handleInterviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(session))
}

// SubmitAnswerRequest представляет запрос на отправку ответа
type SubmitAnswerRequest struct {
	CandidateAnswer string   `json:"candidate_answer"`
	AudioURL        *string  `json:"audio_url,omitempty"`
	DurationSec     *int     `json:"duration_sec,omitempty" binding:"omitempty,min=0"`
	Score           *float64 `json:"score,omitempty" binding:"omitempty,min=0,max=10"`
	Feedback        *string  `json:"feedback,omitempty"`
}

// SubmitAnswer записывает ответ кандидата на вопрос сессии
// PUT /api/interviews/:id/answer/:questionIndex
func (h *InterviewHandler) SubmitAnswer(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string)

	questionIndex, err := strconv.Atoi(c.Param("questionIndex"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid questionIndex"})
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.interviewService.SubmitAnswer(sessionID, questionIndex, service.SubmitAnswerParams{
		CandidateAnswer: req.CandidateAnswer,
		AudioURL:        req.AudioURL,
		DurationSec:     req.DurationSec,
		Score:           req.Score,
		Feedback:        req.Feedback,
	})
	if err != nil {
		h.handleInterviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(session))
}

// CompleteSession завершает интервью и считает итоговую оценку
// PUT /api/interviews/:id/complete
func (h *InterviewHandler) CompleteSession(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string)

	session, err := h.interviewService.CompleteSession(sessionID)
	if err != nil {
		h.handleInterviewError(c, err)
		return
	}

	// Отправка отчёта кандидату не должна блокировать и ронять ответ.
	// Контекст запроса не используется: он отменяется вместе с ответом.
	if report, reportErr := h.interviewService.GetReport(sessionID); reportErr == nil {
		candidateEmail := session.CandidateEmail
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if sendErr := h.emailService.SendCompletionReport(ctx, candidateEmail, report); sendErr != nil {
				log.Printf("[InterviewHandler] Не удалось отправить отчёт по сессии %s: %v", sessionID, sendErr)
			}
		}()
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(session))
}

// GetReport возвращает отчёт по сессии
// GET /api/interviews/:id/report
func (h *InterviewHandler) GetReport(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string)

	report, err := h.interviewService.GetReport(sessionID)
	if err != nil {
		h.handleInterviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListSessions возвращает все сессии для административной панели
// GET /api/interviews (требует авторизации)
func (h *InterviewHandler) ListSessions(c *gin.Context) {
	sessions, err := h.interviewService.ListSessions()
	if err != nil {
		h.handleInterviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(sessions),
		"data":  dto.NewListSessionResponse(sessions),
	})
}

// ExportSessions экспортирует все сессии в CSV или Excel формате
// GET /api/interviews/export?format=csv|xlsx (требует авторизации)
func (h *InterviewHandler) ExportSessions(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	sessions, err := h.interviewService.ListSessions()
	if err != nil {
		h.handleInterviewError(c, err)
		return
	}

	filename := fmt.Sprintf("interview_sessions_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, sessions, filename)
	default:
		h.exportCSV(c, sessions, filename)
	}
}

// exportRow готовит строковые значения одной сессии для экспорта
func exportRow(s *entity.InterviewSession) []string {
	overall := ""
	if s.OverallScore != nil {
		overall = fmt.Sprintf("%.1f", *s.OverallScore)
	}
	duration := ""
	if s.DurationSec != nil {
		duration = strconv.Itoa(*s.DurationSec)
	}
	return []string{
		s.ID,
		sanitizeForExcel(s.CandidateName),
		sanitizeForExcel(s.CandidateEmail),
		s.InterviewRound,
		s.Status,
		overall,
		strconv.Itoa(len(s.Questions)),
		strconv.Itoa(s.AnsweredCount()),
		duration,
		s.StartTime.Format(time.RFC3339),
	}
}

var exportHeaders = []string{"ID", "Кандидат", "Email", "Раунд", "Статус", "Оценка", "Всего вопросов", "Отвечено", "Длительность (сек)", "Начало"}

// exportCSV экспортирует сессии в CSV с правильным экранированием спецсимволов
func (h *InterviewHandler) exportCSV(c *gin.Context, sessions []entity.InterviewSession, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range sessions {
		writer.Write(exportRow(&sessions[i]))
	}
}

// exportXLSX экспортирует сессии в Excel с использованием StreamWriter
func (h *InterviewHandler) exportXLSX(c *gin.Context, sessions []entity.InterviewSession, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Интервью"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[InterviewHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, head := range exportHeaders {
		headers[i] = head
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[InterviewHandler] Ошибка записи заголовков: %v", err)
	}

	for i := range sessions {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		values := exportRow(&sessions[i])
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[InterviewHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[InterviewHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[InterviewHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// handleInterviewError преобразует ошибки сервиса в HTTP-статусы
func (h *InterviewHandler) handleInterviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrSessionCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidQuestionIndex):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNoQuestionsAvailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Session store is temporarily unavailable"})
	default:
		log.Printf("ERROR: Internal server error in InterviewHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
