package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, повторная регистрация с тем же email).
	ErrConflict = errors.New("resource state conflict")
)

// Ошибки жизненного цикла интервью
var (
	// ErrSessionCompleted возвращается при попытке изменить уже завершённую сессию.
	// Завершение - терминальное состояние, ответы после него неизменяемы.
	ErrSessionCompleted = errors.New("interview session already completed")

	// ErrInvalidQuestionIndex возвращается, когда индекс вопроса выходит за пределы сессии.
	ErrInvalidQuestionIndex = errors.New("question index out of range")

	// ErrNoQuestionsAvailable возвращается, когда каталог не нашёл ни одного
	// активного вопроса под заданный фильтр.
	ErrNoQuestionsAvailable = errors.New("no questions available for the requested filter")

	// ErrStoreUnavailable возвращается, когда хранилище сессий недоступно.
	// Сервис не ретраит и не падает, решение о деградации принимает вызывающий слой.
	ErrStoreUnavailable = errors.New("session store unavailable")
)
