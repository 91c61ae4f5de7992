// Package services реализует отправку ответов в WhatsApp: оценку тональности
// входящего текста, генерацию ответа и доставку через шлюз.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/xbot-api/internal/clients/openai"
	"github.com/magabrotheeeer/xbot-api/internal/clients/twilio"
	"github.com/magabrotheeeer/xbot-api/internal/integration"
	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
	"github.com/magabrotheeeer/xbot-api/internal/lib/phone"
	"github.com/magabrotheeeer/xbot-api/internal/lib/sl"
	"github.com/magabrotheeeer/xbot-api/internal/models"
)

// Метки тональности.
const (
	SentimentPositive = "positivo"
	SentimentNegative = "negativo"
	SentimentNeutral  = "neutro"
)

// Completer генерирует текст по запросу.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// WhatsAppSender доставляет сообщение и возвращает его идентификатор.
type WhatsAppSender interface {
	SendMessage(ctx context.Context, to, body string) (string, error)
}

// Result итог отправки.
type Result struct {
	SID       string
	Sentiment string
	Reply     string
}

// MessagingService оркестрирует вызовы генерации и доставки.
type MessagingService struct {
	log      *slog.Logger
	envelope *integration.Envelope
	llm      Completer
	whatsapp WhatsAppSender
}

// NewMessagingService создает MessagingService.
func NewMessagingService(log *slog.Logger, envelope *integration.Envelope, llm Completer, whatsapp WhatsAppSender) *MessagingService {
	return &MessagingService{log: log, envelope: envelope, llm: llm, whatsapp: whatsapp}
}

// SendMessage оценивает тональность text, генерирует ответ от имени user
// и отправляет его на номер to.
func (s *MessagingService) SendMessage(ctx context.Context, user *models.User, to, text string) (*Result, error) {
	const op = "services.MessagingService.SendMessage"

	if !phone.Valid(to) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrInvalidPhoneNumber)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%s: empty message: %w", op, apperr.ErrValidation)
	}

	raw, err := integration.Call(ctx, s.envelope, openai.Vendor, func(ctx context.Context) (string, error) {
		return s.llm.Complete(ctx, sentimentPrompt(text))
	})
	if err != nil {
		return nil, fmt.Errorf("%s: sentiment: %w", op, err)
	}
	label := ExtractSentiment(raw)

	reply, err := integration.Call(ctx, s.envelope, openai.Vendor, func(ctx context.Context) (string, error) {
		return s.llm.Complete(ctx, replyPrompt(text, label, user.Name))
	})
	if err != nil {
		return nil, fmt.Errorf("%s: reply: %w", op, err)
	}

	sid, err := integration.Call(ctx, s.envelope, twilio.Vendor, func(ctx context.Context) (string, error) {
		return s.whatsapp.SendMessage(ctx, to, reply)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: delivery: %w", op, err)
	}

	s.log.Info("message delivered",
		slog.String("username", user.Username),
		slog.String("sid", sid),
		slog.String("sentiment", label),
	)
	return &Result{SID: sid, Sentiment: label, Reply: reply}, nil
}

// SendWelcome обрабатывает событие активации: отправляет приветствие в WhatsApp,
// если у пользователя указан номер. Повторная доставка запрашивается только
// при rate limit; прочие отказы поставщика фиксируются в логе.
func (s *MessagingService) SendWelcome(ctx context.Context, body []byte) error {
	const op = "services.MessagingService.SendWelcome"

	var event models.UserActivated
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Op(op), sl.Err(err))
		return nil
	}
	if event.WhatsAppNumber == "" || !phone.Valid(event.WhatsAppNumber) {
		s.log.Debug("no whatsapp number, welcome skipped", slog.String("username", event.Username))
		return nil
	}

	sid, err := integration.Call(ctx, s.envelope, twilio.Vendor, func(ctx context.Context) (string, error) {
		return s.whatsapp.SendMessage(ctx, event.WhatsAppNumber, welcomeText(event.Name))
	})
	if err != nil {
		if errors.Is(err, apperr.ErrRateLimited) {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.log.Error("welcome message dropped", slog.String("username", event.Username), sl.Err(err))
		return nil
	}
	s.log.Info("welcome message sent", slog.String("username", event.Username), slog.String("sid", sid))
	return nil
}

// ExtractSentiment сводит свободный ответ модели к одной из меток.
// Неизвестный ответ трактуется как нейтральный.
func ExtractSentiment(response string) string {
	r := strings.ToLower(response)
	switch {
	case strings.Contains(r, SentimentPositive):
		return SentimentPositive
	case strings.Contains(r, SentimentNegative):
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func sentimentPrompt(text string) string {
	return "Analise o sentimento da seguinte mensagem e classifique como " +
		"'positivo', 'negativo' ou 'neutro': " + text
}

func replyPrompt(text, label, name string) string {
	return fmt.Sprintf("Você é um assistente virtual que responde de forma amigável e útil. "+
		"Considerando o sentimento da mensagem '%s' que é '%s', "+
		"responda de maneira apropriada, levando em conta o contexto e o tom da conversa. "+
		"Usuário: %s", text, label, name)
}

func welcomeText(name string) string {
	return fmt.Sprintf("Olá, %s! Sua conta na Reborn Technology foi ativada. Bem-vindo!", name)
}
