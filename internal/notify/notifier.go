package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Message struct {
	Title string
	Body  string
}

// Notifier delivers a message. Permission state and platform dispatch live
// behind this interface.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

type NoopNotifier struct{}

func (NoopNotifier) Send(context.Context, Message) error { return nil }

type DesktopNotifier struct{}

func (DesktopNotifier) Send(ctx context.Context, msg Message) error {
	switch runtime.GOOS {
	case "linux":
		return exec.CommandContext(ctx, "notify-send", msg.Title, msg.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(msg.Body), escapeAppleScript(msg.Title))
		return exec.CommandContext(ctx, "osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Send(_ context.Context, msg Message) error {
	if n.Logger != nil {
		n.Logger.Info("reminder", "title", msg.Title, "body", msg.Body)
	}
	return nil
}

type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramNotifier struct {
	bot    telegramSender
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("notify: telegram token is required")
	}
	if chatID == 0 {
		return nil, errors.New("notify: telegram chat id is required")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) Send(_ context.Context, msg Message) error {
	text := msg.Title
	if msg.Body != "" {
		text += "\n" + msg.Body
	}
	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// Multi fans a message out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Send(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Deliver sends every trigger and returns how many failed.
func Deliver(ctx context.Context, n Notifier, triggers []Trigger, logger *slog.Logger) int {
	failed := 0
	for _, tr := range triggers {
		if err := n.Send(ctx, Message{Title: tr.Title, Body: tr.Body}); err != nil {
			failed++
			if logger != nil {
				logger.Warn("notification delivery failed", "kind", tr.Kind, "err", err)
			}
		}
	}
	return failed
}
