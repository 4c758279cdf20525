package dto

import (
	"time"

	"github.com/yourusername/interview-api/internal/domain/entity"
)

// AnsweredQuestionResponse представляет вопрос сессии вместе с ответом кандидата
type AnsweredQuestionResponse struct {
	QuestionID      uint     `json:"question_id"`
	QuestionText    string   `json:"question_text"`
	CandidateAnswer *string  `json:"candidate_answer,omitempty"`
	AudioURL        *string  `json:"audio_url,omitempty"`
	DurationSec     *int     `json:"duration_sec,omitempty"`
	Score           *float64 `json:"score,omitempty"`
	Feedback        *string  `json:"feedback,omitempty"`
}

// SessionResponse представляет сессию интервью в формате для ответа клиенту
type SessionResponse struct {
	ID             string                     `json:"id"`
	CandidateName  string                     `json:"candidate_name"`
	CandidateEmail string                     `json:"candidate_email"`
	InterviewRound string                     `json:"interview_round"`
	Questions      []AnsweredQuestionResponse `json:"questions"`
	Status         string                     `json:"status"`
	OverallScore   *float64                   `json:"overall_score,omitempty"`
	Strengths      []string                   `json:"strengths"`
	Weaknesses     []string                   `json:"weaknesses"`
	StartTime      time.Time                  `json:"start_time"`
	EndTime        *time.Time                 `json:"end_time,omitempty"`
	DurationSec    *int                       `json:"duration_sec,omitempty"`
	CreatedAt      time.Time                  `json:"created_at"`
}

// NewSessionResponse преобразует entity.InterviewSession в DTO
func NewSessionResponse(s *entity.InterviewSession) SessionResponse {
	questions := make([]AnsweredQuestionResponse, len(s.Questions))
	for i := range s.Questions {
		q := &s.Questions[i]
		questions[i] = AnsweredQuestionResponse{
			QuestionID:      q.QuestionID,
			QuestionText:    q.QuestionText,
			CandidateAnswer: q.CandidateAnswer,
			AudioURL:        q.AudioURL,
			DurationSec:     q.DurationSec,
			Score:           q.Score,
			Feedback:        q.Feedback,
		}
	}

	strengths := []string(s.Strengths)
	if strengths == nil {
		strengths = []string{}
	}
	weaknesses := []string(s.Weaknesses)
	if weaknesses == nil {
		weaknesses = []string{}
	}

	return SessionResponse{
		ID:             s.ID,
		CandidateName:  s.CandidateName,
		CandidateEmail: s.CandidateEmail,
		InterviewRound: s.InterviewRound,
		Questions:      questions,
		Status:         s.Status,
		OverallScore:   s.OverallScore,
		Strengths:      strengths,
		Weaknesses:     weaknesses,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		DurationSec:    s.DurationSec,
		CreatedAt:      s.CreatedAt,
	}
}

// NewListSessionResponse преобразует список сессий в DTO
func NewListSessionResponse(sessions []entity.InterviewSession) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = NewSessionResponse(&sessions[i])
	}
	return responses
}

// AdminResponse представляет администратора в формате для ответа клиенту
type AdminResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewAdminResponse преобразует entity.Admin в DTO
func NewAdminResponse(a *entity.Admin) AdminResponse {
	return AdminResponse{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
	}
}
