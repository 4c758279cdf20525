package service

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/yourusername/interview-api/internal/domain/entity"
	"github.com/yourusername/interview-api/internal/domain/repository"
	apperrors "github.com/yourusername/interview-api/internal/pkg/errors"
	"github.com/yourusername/interview-api/internal/service/scoring"
)

// reportCacheTTL - время жизни закешированного отчёта.
// Завершённая сессия неизменяема, поэтому TTL нужен только для экономии памяти.
const reportCacheTTL = 24 * time.Hour

// QuestionCatalog определяет интерфейс каталога вопросов,
// необходимый сервису интервью
type QuestionCatalog interface {
	SelectQuestions(category string, count int) ([]entity.Question, error)
	GetQuestionByID(id uint) (*entity.Question, error)
}

// InterviewService управляет жизненным циклом сессий интервью:
// создание -> приём ответов -> завершение -> отчёт
type InterviewService struct {
	sessionRepo repository.SessionRepository
	catalog     QuestionCatalog
	engine      *scoring.Engine
	cacheRepo   repository.CacheRepository // nil, если кеш отчётов отключен

	// Мьютексы по идентификатору сессии. Read-modify-write в SubmitAnswer
	// и CompleteSession не атомарен на уровне хранилища, поэтому две
	// конкурентные записи по одной сессии сериализуются здесь.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewInterviewService создает новый сервис сессий интервью
func NewInterviewService(
	sessionRepo repository.SessionRepository,
	catalog QuestionCatalog,
	engine *scoring.Engine,
	cacheRepo repository.CacheRepository,
) *InterviewService {
	return &InterviewService{
		sessionRepo: sessionRepo,
		catalog:     catalog,
		engine:      engine,
		cacheRepo:   cacheRepo,
		locks:       make(map[string]*sync.Mutex),
	}
}

// sessionLock возвращает мьютекс для заданного идентификатора сессии
func (s *InterviewService) sessionLock(sessionID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

// releaseSessionLock удаляет мьютекс сессии из карты, иначе она росла бы
// на одну запись с каждой созданной сессией. Вызывается только после
// перехода в терминальный статус: все последующие записи по сессии
// отвергаются по статусу, поэтому мьютекс, созданный заново конкурентным
// вызовом, уже ничего не защищает.
func (s *InterviewService) releaseSessionLock(sessionID string) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	delete(s.locks, sessionID)
}

// CreateSessionParams содержит входные данные для создания сессии
type CreateSessionParams struct {
	CandidateName  string
	CandidateEmail string
	InterviewRound string
	QuestionCount  int
	// CategoryFilter опционально сужает выборку вопросов.
	// Пустое значение означает категорию раунда.
	CategoryFilter string
}

// CreateSession создает новую сессию интервью со статусом "In Progress"
// и фиксированным упорядоченным набором вопросов из каталога
func (s *InterviewService) CreateSession(params CreateSessionParams) (*entity.InterviewSession, error) {
	if params.CandidateName == "" || params.CandidateEmail == "" {
		return nil, fmt.Errorf("%w: candidate name and email are required", apperrors.ErrValidation)
	}
	if !entity.IsValidCategory(params.InterviewRound) {
		return nil, fmt.Errorf("%w: unknown interview round %q", apperrors.ErrValidation, params.InterviewRound)
	}
	if params.QuestionCount <= 0 {
		return nil, fmt.Errorf("%w: question count must be positive", apperrors.ErrValidation)
	}

	category := params.CategoryFilter
	if category == "" {
		category = params.InterviewRound
	}

	questions, err := s.catalog.SelectQuestions(category, params.QuestionCount)
	if err != nil {
		return nil, err
	}

	// Денормализуем текст вопросов: дальнейшие правки каталога
	// не должны искажать историю интервью
	assigned := make(entity.AnsweredQuestions, len(questions))
	for i, q := range questions {
		assigned[i] = entity.AnsweredQuestion{
			QuestionID:   q.ID,
			QuestionText: q.Title,
		}
	}

	session := &entity.InterviewSession{
		ID:             uuid.NewString(),
		CandidateName:  params.CandidateName,
		CandidateEmail: params.CandidateEmail,
		InterviewRound: params.InterviewRound,
		Questions:      assigned,
		Status:         entity.SessionStatusInProgress,
		Strengths:      entity.StringArray{},
		Weaknesses:     entity.StringArray{},
		StartTime:      time.Now(),
	}

	if err := s.sessionRepo.Create(session); err != nil {
		log.Printf("[InterviewService] Ошибка сохранения новой сессии для кандидата %s: %v", params.CandidateEmail, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	log.Printf("[InterviewService] Создана сессия %s (раунд %s, вопросов: %d)",
		session.ID, session.InterviewRound, len(session.Questions))
	return session, nil
}

// SubmitAnswerParams содержит входные данные для отправки ответа
type SubmitAnswerParams struct {
	CandidateAnswer string
	AudioURL        *string
	DurationSec     *int
	// Score - внешняя оценка (от человека или AI-ревьюера).
	// Если передана, эвристика не вызывается.
	Score    *float64
	Feedback *string
}

// SubmitAnswer записывает ответ кандидата на вопрос с заданным индексом.
// Пока сессия открыта, ответ на один и тот же индекс можно переписать -
// побеждает последняя запись. После завершения сессии любой вызов
// отвергается с ErrSessionCompleted.
func (s *InterviewService) SubmitAnswer(sessionID string, questionIndex int, params SubmitAnswerParams) (*entity.InterviewSession, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}

	if session.IsCompleted() {
		return nil, fmt.Errorf("%w: session %s", apperrors.ErrSessionCompleted, sessionID)
	}
	if !session.HasQuestionIndex(questionIndex) {
		return nil, fmt.Errorf("%w: index %d, session has %d questions",
			apperrors.ErrInvalidQuestionIndex, questionIndex, len(session.Questions))
	}
	if params.Score != nil && (*params.Score < 0 || *params.Score > scoring.MaxScore) {
		return nil, fmt.Errorf("%w: score %.1f is outside [0,%.0f]",
			apperrors.ErrValidation, *params.Score, scoring.MaxScore)
	}
	if params.DurationSec != nil && *params.DurationSec < 0 {
		return nil, fmt.Errorf("%w: negative answer duration", apperrors.ErrValidation)
	}

	question := &session.Questions[questionIndex]
	answer := params.CandidateAnswer
	question.CandidateAnswer = &answer
	question.AudioURL = params.AudioURL
	question.DurationSec = params.DurationSec
	question.Feedback = params.Feedback

	if params.Score != nil {
		question.Score = params.Score
	} else {
		computed := s.engine.Score(answer, s.expectedKeywords(question.QuestionID), params.DurationSec)
		question.Score = &computed
	}

	if err := s.sessionRepo.Update(session); err != nil {
		log.Printf("[InterviewService] Ошибка сохранения ответа в сессии %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	return session, nil
}

// expectedKeywords возвращает ключевые слова вопроса каталога.
// Если вопрос к этому моменту удалён из каталога, оцениваем без них.
func (s *InterviewService) expectedKeywords(questionID uint) []string {
	question, err := s.catalog.GetQuestionByID(questionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[InterviewService] Не удалось получить вопрос #%d из каталога: %v", questionID, err)
		}
		return nil
	}
	return question.ExpectedKeywords
}

// CompleteSession переводит сессию в терминальный статус "Completed",
// вычисляет итоговую оценку и качественные теги. Повторное завершение
// всегда возвращает ErrSessionCompleted и не меняет состояние.
func (s *InterviewService) CompleteSession(sessionID string) (*entity.InterviewSession, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}

	if session.IsCompleted() {
		return nil, fmt.Errorf("%w: session %s", apperrors.ErrSessionCompleted, sessionID)
	}

	overall := overallScore(session.Questions)
	facts := answerFacts(session.Questions)

	now := time.Now()
	duration := int(now.Sub(session.StartTime).Seconds())

	session.OverallScore = &overall
	session.Strengths = s.engine.DeriveStrengths(overall, facts)
	session.Weaknesses = s.engine.DeriveWeaknesses(overall, facts)
	session.Status = entity.SessionStatusCompleted
	session.EndTime = &now
	session.DurationSec = &duration

	if err := s.sessionRepo.Update(session); err != nil {
		log.Printf("[InterviewService] Ошибка сохранения завершённой сессии %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	s.releaseSessionLock(sessionID)

	log.Printf("[InterviewService] Сессия %s завершена, итоговая оценка %.1f", sessionID, overall)
	return session, nil
}

// GetSession возвращает текущее состояние сессии
func (s *InterviewService) GetSession(sessionID string) (*entity.InterviewSession, error) {
	return s.loadSession(sessionID)
}

// ListSessions возвращает все сессии, от недавно созданных к старым.
// Предназначен для административной панели; контроль доступа - забота HTTP-слоя.
func (s *InterviewService) ListSessions() ([]entity.InterviewSession, error) {
	sessions, err := s.sessionRepo.ListAll()
	if err != nil {
		log.Printf("[InterviewService] Ошибка получения списка сессий: %v", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return sessions, nil
}

// loadSession читает сессию из хранилища, различая "не найдена" и "хранилище недоступно"
func (s *InterviewService) loadSession(sessionID string) (*entity.InterviewSession, error) {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, sessionID)
		}
		log.Printf("[InterviewService] Ошибка чтения сессии %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return session, nil
}

// overallScore возвращает среднее всех выставленных оценок,
// округлённое до одного знака, или 0, если оценок нет
func overallScore(questions entity.AnsweredQuestions) float64 {
	sum := 0.0
	count := 0
	for i := range questions {
		if questions[i].Score != nil {
			sum += *questions[i].Score
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Round(sum/float64(count)*10) / 10
}

// answerFacts собирает факты об ответах для вывода качественных тегов
func answerFacts(questions entity.AnsweredQuestions) []scoring.AnswerFacts {
	facts := make([]scoring.AnswerFacts, len(questions))
	for i := range questions {
		q := &questions[i]
		if q.CandidateAnswer != nil {
			// В рунах, не в байтах: пороги тегов заданы в символах
			facts[i].AnswerLength = utf8.RuneCountInString(*q.CandidateAnswer)
		}
		if q.DurationSec != nil {
			facts[i].DurationSec = *q.DurationSec
		}
		facts[i].Answered = q.IsAnswered()
	}
	return facts
}
