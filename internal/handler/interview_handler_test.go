package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/interview-api/internal/domain/entity"
	"github.com/yourusername/interview-api/internal/middleware"
	"github.com/yourusername/interview-api/internal/repository/memory"
	"github.com/yourusername/interview-api/internal/service"
	"github.com/yourusername/interview-api/internal/service/scoring"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// ============================================================================
// Request validation tests — не требуют реальных сервисов
// Handler возвращает 400 до вызова сервиса
// ============================================================================

func TestCreateSession_ValidationErrors(t *testing.T) {
	handler := &InterviewHandler{} // nil services — OK для validation tests

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing candidate_name",
			body: map[string]interface{}{"candidate_email": "a@b.com", "interview_round": "Technical", "question_count": 3},
		},
		{
			name: "invalid email format",
			body: map[string]interface{}{"candidate_name": "Alice", "candidate_email": "not-an-email", "interview_round": "Technical", "question_count": 3},
		},
		{
			name: "zero question_count",
			body: map[string]interface{}{"candidate_name": "Alice", "candidate_email": "a@b.com", "interview_round": "Technical", "question_count": 0},
		},
		{
			name: "question_count above limit",
			body: map[string]interface{}{"candidate_name": "Alice", "candidate_email": "a@b.com", "interview_round": "Technical", "question_count": 51},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/interviews", tt.body)
			handler.CreateSession(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSubmitAnswer_ValidationErrors(t *testing.T) {
	handler := &InterviewHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "score above 10",
			body: map[string]interface{}{"candidate_answer": "text", "score": 10.5},
		},
		{
			name: "negative score",
			body: map[string]interface{}{"candidate_answer": "text", "score": -1},
		},
		{
			name: "negative duration",
			body: map[string]interface{}{"candidate_answer": "text", "duration_sec": -5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("PUT", "/api/interviews/x/answer/0", tt.body)
			c.Set("sessionID", "11111111-1111-1111-1111-111111111111")
			c.Params = gin.Params{{Key: "questionIndex", Value: "0"}}
			handler.SubmitAnswer(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

// ============================================================================
// Сквозные тесты через реальный роутер с in-memory хранилищами
// ============================================================================

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestRouterWithEmail(t, &service.NoopEmailService{})
}

func newTestRouterWithEmail(t *testing.T, emailService service.EmailService) *gin.Engine {
	t.Helper()

	questionRepo := memory.NewQuestionRepo()
	questionService := service.NewQuestionService(questionRepo)
	for i := 0; i < 3; i++ {
		_, err := questionService.CreateQuestion(service.CreateQuestionParams{
			Title:              fmt.Sprintf("Technical question %d", i+1),
			Description:        "test question",
			Category:           entity.CategoryTechnical,
			Difficulty:         entity.DifficultyMedium,
			ExpectedKeywords:   []string{"keyword"},
			EvaluationCriteria: "keyword coverage",
		})
		require.NoError(t, err)
	}

	interviewService := service.NewInterviewService(memory.NewSessionRepo(), questionService, scoring.NewEngine(), nil)
	handler := NewInterviewHandler(interviewService, emailService)

	router := gin.New()
	interviews := router.Group("/api/interviews")
	{
		interviews.POST("", handler.CreateSession)
		session := interviews.Group("/:id")
		session.Use(middleware.ExtractSessionID("id", "sessionID"))
		{
			session.GET("", handler.GetSession)
			session.PUT("/answer/:questionIndex", handler.SubmitAnswer)
			session.PUT("/complete", handler.CompleteSession)
			session.GET("/report", handler.GetReport)
		}
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(bodyBytes)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestInterviewHandler_FullFlow(t *testing.T) {
	// Arrange
	router := newTestRouter(t)

	// Act: создаем сессию
	w := doJSON(t, router, "POST", "/api/interviews", map[string]interface{}{
		"candidate_name":  "Alice",
		"candidate_email": "alice@example.com",
		"interview_round": "Technical",
		"question_count":  2,
	})

	// Assert
	require.Equal(t, http.StatusCreated, w.Code, "Ответ: %s", w.Body.String())
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	sessionID, _ := created["id"].(string)
	require.NotEmpty(t, sessionID)
	assert.Equal(t, entity.SessionStatusInProgress, created["status"])

	// Act: отвечаем на первый вопрос
	w = doJSON(t, router, "PUT", "/api/interviews/"+sessionID+"/answer/0", map[string]interface{}{
		"candidate_answer": "a meaningful answer mentioning the keyword",
	})
	require.Equal(t, http.StatusOK, w.Code, "Ответ: %s", w.Body.String())

	// Act: завершаем сессию
	w = doJSON(t, router, "PUT", "/api/interviews/"+sessionID+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var completed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &completed))
	assert.Equal(t, entity.SessionStatusCompleted, completed["status"])
	assert.NotNil(t, completed["overall_score"])

	// Act: повторное завершение отвергается конфликтом
	w = doJSON(t, router, "PUT", "/api/interviews/"+sessionID+"/complete", nil)
	assert.Equal(t, http.StatusConflict, w.Code, "Повторное завершение должно возвращать 409")

	// Act: отчёт доступен
	w = doJSON(t, router, "GET", "/api/interviews/"+sessionID+"/report", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, sessionID, report["session_id"])
	assert.EqualValues(t, 2, report["questions_count"])
}

// blockingEmailService сигнализирует о вызове и ждёт разрешения на возврат
type blockingEmailService struct {
	called  chan string
	release chan struct{}
}

func (s *blockingEmailService) SendCompletionReport(ctx context.Context, toEmail string, report *service.InterviewReport) error {
	s.called <- toEmail
	<-s.release
	return nil
}

func TestInterviewHandler_CompleteSession_EmailDoesNotBlockResponse(t *testing.T) {
	// Arrange: отправка письма блокируется, пока тест её не отпустит
	email := &blockingEmailService{
		called:  make(chan string, 1),
		release: make(chan struct{}),
	}
	router := newTestRouterWithEmail(t, email)

	w := doJSON(t, router, "POST", "/api/interviews", map[string]interface{}{
		"candidate_name":  "Alice",
		"candidate_email": "alice@example.com",
		"interview_round": "Technical",
		"question_count":  1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	sessionID := created["id"].(string)

	// Act: завершение возвращается, хотя письмо ещё не отправлено
	w = doJSON(t, router, "PUT", "/api/interviews/"+sessionID+"/complete", nil)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code, "Ответ не должен ждать отправки письма")

	select {
	case to := <-email.called:
		assert.Equal(t, "alice@example.com", to)
	case <-time.After(2 * time.Second):
		t.Fatal("Отправка отчёта так и не была запущена")
	}
	close(email.release)
}

func TestInterviewHandler_ErrorStatusMapping(t *testing.T) {
	// Arrange
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/interviews", map[string]interface{}{
		"candidate_name":  "Alice",
		"candidate_email": "alice@example.com",
		"interview_round": "Technical",
		"question_count":  1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	sessionID := created["id"].(string)

	// Act & Assert: несуществующая сессия — 404
	w = doJSON(t, router, "GET", "/api/interviews/00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Act & Assert: невалидный UUID в пути — 400 от middleware
	w = doJSON(t, router, "GET", "/api/interviews/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Act & Assert: индекс вне диапазона — 400
	w = doJSON(t, router, "PUT", "/api/interviews/"+sessionID+"/answer/5", map[string]interface{}{
		"candidate_answer": "answer",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Act & Assert: раунд без вопросов в каталоге — 400
	w = doJSON(t, router, "POST", "/api/interviews", map[string]interface{}{
		"candidate_name":  "Bob",
		"candidate_email": "bob@example.com",
		"interview_round": "HR",
		"question_count":  1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "Пустая категория каталога не позволяет начать интервью")
}
