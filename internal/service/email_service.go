package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/resend/resend-go/v2"
)

// EmailService отправляет транзакционные письма
type EmailService interface {
	SendCompletionReport(ctx context.Context, toEmail string, report *InterviewReport) error
}

// NoopEmailService используется, когда отправка отчётов отключена
type NoopEmailService struct{}

func (s *NoopEmailService) SendCompletionReport(ctx context.Context, toEmail string, report *InterviewReport) error {
	log.Printf("[EmailService] noop send completion report to=%s", toEmail)
	return nil
}

// ResendEmailService отправляет письма через REST API Resend
type ResendEmailService struct {
	from   string
	client *resend.Client
}

func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

// SendCompletionReport отправляет кандидату текстовую сводку завершённого интервью
func (s *ResendEmailService) SendCompletionReport(ctx context.Context, toEmail string, report *InterviewReport) error {
	if toEmail == "" || report == nil {
		return fmt.Errorf("toEmail and report are required")
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hello %s,\n\n", report.CandidateName)
	fmt.Fprintf(&body, "Your %s interview is complete.\n", report.InterviewRound)
	fmt.Fprintf(&body, "Overall score: %.1f/10\n", report.OverallScore)
	fmt.Fprintf(&body, "Questions answered: %d of %d\n\n", report.CompletedQuestions, report.QuestionsCount)
	if len(report.Strengths) > 0 {
		fmt.Fprintf(&body, "Strengths: %s\n", strings.Join(report.Strengths, ", "))
	}
	if len(report.Weaknesses) > 0 {
		fmt.Fprintf(&body, "Areas to improve: %s\n", strings.Join(report.Weaknesses, ", "))
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Your %s interview report", report.InterviewRound),
		Text:    body.String(),
	}

	sent, err := s.client.Emails.SendWithOptions(ctx, params, &resend.SendEmailOptions{})
	if err != nil {
		log.Printf("[EmailService] Ошибка отправки отчёта на %s: %v", toEmail, err)
		return fmt.Errorf("resend send failed: %w", err)
	}

	log.Printf("[EmailService] Отчёт отправлен на %s (id=%s)", toEmail, sent.Id)
	return nil
}
