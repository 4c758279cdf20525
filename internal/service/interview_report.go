package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/interview-api/internal/domain/entity"
	apperrors "github.com/yourusername/interview-api/internal/pkg/errors"
)

// Текст-заглушки отчёта для неотвеченных вопросов
const (
	ReportNotAnswered = "Not answered"
	ReportNoFeedback  = "No feedback available"
)

// ReportAnswer представляет один вопрос в отчёте.
// Поля всегда заполнены: вместо отсутствующих значений подставляются заглушки.
type ReportAnswer struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// InterviewReport представляет денормализованную сводку сессии
// для отображения или экспорта
type InterviewReport struct {
	SessionID          string         `json:"session_id"`
	CandidateName      string         `json:"candidate_name"`
	CandidateEmail     string         `json:"candidate_email"`
	InterviewRound     string         `json:"interview_round"`
	OverallScore       float64        `json:"overall_score"`
	Status             string         `json:"status"`
	DurationSec        int            `json:"duration_sec"`
	Strengths          []string       `json:"strengths"`
	Weaknesses         []string       `json:"weaknesses"`
	QuestionsCount     int            `json:"questions_count"`
	CompletedQuestions int            `json:"completed_questions"`
	DetailedAnswers    []ReportAnswer `json:"detailed_answers"`
}

// GetReport строит отчёт по сессии. Отчёты завершённых сессий кешируются:
// после завершения сессия неизменяема, поэтому кеш не может устареть.
func (s *InterviewService) GetReport(sessionID string) (*InterviewReport, error) {
	if s.cacheRepo != nil {
		var cached InterviewReport
		err := s.cacheRepo.GetJSON(reportCacheKey(sessionID), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			// Кеш недоступен - строим отчёт из хранилища
			log.Printf("[InterviewService] Ошибка чтения кеша отчёта для сессии %s: %v", sessionID, err)
		}
	}

	session, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}

	report := buildReport(session)

	if s.cacheRepo != nil && session.IsCompleted() {
		if err := s.cacheRepo.SetJSON(reportCacheKey(sessionID), report, reportCacheTTL); err != nil {
			log.Printf("[InterviewService] Ошибка записи отчёта в кеш для сессии %s: %v", sessionID, err)
		}
	}

	return report, nil
}

// buildReport собирает проекцию отчёта из сессии
func buildReport(session *entity.InterviewSession) *InterviewReport {
	report := &InterviewReport{
		SessionID:          session.ID,
		CandidateName:      session.CandidateName,
		CandidateEmail:     session.CandidateEmail,
		InterviewRound:     session.InterviewRound,
		Status:             session.Status,
		Strengths:          session.Strengths,
		Weaknesses:         session.Weaknesses,
		QuestionsCount:     len(session.Questions),
		CompletedQuestions: session.AnsweredCount(),
		DetailedAnswers:    make([]ReportAnswer, len(session.Questions)),
	}
	if session.OverallScore != nil {
		report.OverallScore = *session.OverallScore
	}
	if session.DurationSec != nil {
		report.DurationSec = *session.DurationSec
	}
	if report.Strengths == nil {
		report.Strengths = []string{}
	}
	if report.Weaknesses == nil {
		report.Weaknesses = []string{}
	}

	for i := range session.Questions {
		q := &session.Questions[i]
		answer := ReportAnswer{
			Question: q.QuestionText,
			Answer:   ReportNotAnswered,
			Feedback: ReportNoFeedback,
		}
		if q.CandidateAnswer != nil && *q.CandidateAnswer != "" {
			answer.Answer = *q.CandidateAnswer
		}
		if q.Score != nil {
			answer.Score = *q.Score
		}
		if q.Feedback != nil && *q.Feedback != "" {
			answer.Feedback = *q.Feedback
		}
		report.DetailedAnswers[i] = answer
	}

	return report
}

func reportCacheKey(sessionID string) string {
	return fmt.Sprintf("interview:%s:report", sessionID)
}
