package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yourusername/interview-api/internal/domain/entity"
	apperrors "github.com/yourusername/interview-api/internal/pkg/errors"
)

// SessionRepo реализует repository.SessionRepository в памяти процесса.
// Используется в демо-режиме, когда PostgreSQL недоступен. Данные
// не переживают перезапуск - выбор хранилища делает composition root,
// сервис интервью об этом не знает.
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]entity.InterviewSession
}

// NewSessionRepo создает новое in-memory хранилище сессий
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{
		sessions: make(map[string]entity.InterviewSession),
	}
}

// Create сохраняет новую сессию
func (r *SessionRepo) Create(session *entity.InterviewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("%w: session %s already exists", apperrors.ErrConflict, session.ID)
	}
	// В PostgreSQL это поле заполняет GORM
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

// GetByID возвращает сессию по идентификатору
func (r *SessionRepo) GetByID(id string) (*entity.InterviewSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := cloneSession(&session)
	return &copied, nil
}

// Update полностью заменяет запись сессии
func (r *SessionRepo) Update(session *entity.InterviewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

// ListAll возвращает все сессии, от недавно созданных к старым
func (r *SessionRepo) ListAll() ([]entity.InterviewSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]entity.InterviewSession, 0, len(r.sessions))
	for id := range r.sessions {
		s := r.sessions[id]
		sessions = append(sessions, cloneSession(&s))
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// cloneSession делает глубокую копию сессии, чтобы вызывающий код
// не мог изменить хранимое состояние в обход Update. Копируются и значения
// за указателями: поверхностная копия среза делила бы их с хранилищем.
func cloneSession(s *entity.InterviewSession) entity.InterviewSession {
	copied := *s
	copied.OverallScore = clonePtr(s.OverallScore)
	copied.EndTime = clonePtr(s.EndTime)
	copied.DurationSec = clonePtr(s.DurationSec)
	copied.Questions = make(entity.AnsweredQuestions, len(s.Questions))
	for i := range s.Questions {
		q := s.Questions[i]
		q.CandidateAnswer = clonePtr(q.CandidateAnswer)
		q.AudioURL = clonePtr(q.AudioURL)
		q.DurationSec = clonePtr(q.DurationSec)
		q.Score = clonePtr(q.Score)
		q.Feedback = clonePtr(q.Feedback)
		copied.Questions[i] = q
	}
	copied.Strengths = append(entity.StringArray{}, s.Strengths...)
	copied.Weaknesses = append(entity.StringArray{}, s.Weaknesses...)
	return copied
}

// clonePtr возвращает указатель на копию значения, nil для nil
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
