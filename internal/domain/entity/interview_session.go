package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Константы статусов сессии интервью.
// Статус движется только вперёд: Pending/InProgress -> Completed.
const (
	SessionStatusPending    = "Pending"
	SessionStatusInProgress = "In Progress"
	SessionStatusCompleted  = "Completed"
)

// AnsweredQuestion представляет один вопрос внутри сессии вместе с ответом кандидата.
// Текст вопроса денормализован из каталога на момент создания сессии.
type AnsweredQuestion struct {
	QuestionID      uint     `json:"question_id"`
	QuestionText    string   `json:"question_text"`
	CandidateAnswer *string  `json:"candidate_answer,omitempty"`
	AudioURL        *string  `json:"audio_url,omitempty"`
	DurationSec     *int     `json:"duration_sec,omitempty"`
	Score           *float64 `json:"score,omitempty"` // В диапазоне [0,10], nil пока не оценён
	Feedback        *string  `json:"feedback,omitempty"`
}

// IsAnswered проверяет, есть ли у вопроса оценённый ответ
func (a *AnsweredQuestion) IsAnswered() bool {
	return a.Score != nil
}

// AnsweredQuestions - пользовательский тип для хранения списка вопросов сессии в JSONB
type AnsweredQuestions []AnsweredQuestion

// Scan реализует интерфейс sql.Scanner для AnsweredQuestions
func (o *AnsweredQuestions) Scan(value interface{}) error {
	if value == nil {
		*o = AnsweredQuestions{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = AnsweredQuestions{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для AnsweredQuestions
func (o AnsweredQuestions) Value() (driver.Value, error) {
	if o == nil || len(o) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// InterviewSession представляет один проход кандидата по фиксированному
// упорядоченному набору вопросов, от создания до завершения.
type InterviewSession struct {
	ID             string            `gorm:"primaryKey;size:36" json:"id"`
	CandidateName  string            `gorm:"size:100;not null" json:"candidate_name"`
	CandidateEmail string            `gorm:"size:100;not null" json:"candidate_email"`
	InterviewRound string            `gorm:"size:20;not null" json:"interview_round"`
	Questions      AnsweredQuestions `gorm:"type:jsonb;not null" json:"questions"`
	Status         string            `gorm:"size:20;not null;default:'Pending';index" json:"status"`
	OverallScore   *float64          `json:"overall_score,omitempty"`
	Strengths      StringArray       `gorm:"type:jsonb;not null" json:"strengths"`
	Weaknesses     StringArray       `gorm:"type:jsonb;not null" json:"weaknesses"`
	StartTime      time.Time         `gorm:"not null" json:"start_time"`
	EndTime        *time.Time        `json:"end_time,omitempty"`
	DurationSec    *int              `json:"duration_sec,omitempty"`
	CreatedAt      time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (InterviewSession) TableName() string {
	return "interview_sessions"
}

// IsCompleted проверяет, завершена ли сессия
func (s *InterviewSession) IsCompleted() bool {
	return s.Status == SessionStatusCompleted
}

// HasQuestionIndex проверяет, попадает ли индекс в границы списка вопросов сессии
func (s *InterviewSession) HasQuestionIndex(index int) bool {
	return index >= 0 && index < len(s.Questions)
}

// AnsweredCount возвращает количество вопросов с оценённым ответом
func (s *InterviewSession) AnsweredCount() int {
	count := 0
	for i := range s.Questions {
		if s.Questions[i].IsAnswered() {
			count++
		}
	}
	return count
}
