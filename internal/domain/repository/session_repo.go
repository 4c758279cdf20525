package repository

import (
	"github.com/yourusername/interview-api/internal/domain/entity"
)

// SessionRepository определяет методы для работы с сессиями интервью.
// Реализации взаимозаменяемы: durable-хранилище на PostgreSQL и
// волатильное in-memory хранилище для демо-режима. Сервис интервью
// не знает, какая из них активна - выбор делает composition root.
type SessionRepository interface {
	Create(session *entity.InterviewSession) error
	GetByID(id string) (*entity.InterviewSession, error)
	// Update полностью заменяет запись сессии: сервис всегда читает,
	// изменяет в памяти и записывает обратно целиком.
	Update(session *entity.InterviewSession) error
	// ListAll возвращает все сессии, от недавно созданных к старым
	ListAll() ([]entity.InterviewSession, error)
}
