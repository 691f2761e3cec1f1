// Package bot answers attendance lookups over Telegram.
package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ukaji3/attendance-go/pkg/attendance"
	"github.com/ukaji3/attendance-go/pkg/attendance/models"
	"github.com/ukaji3/attendance-go/pkg/attendance/output"
)

const helpText = "Send your roll number, or use /check <roll number>."

// Sender is the part of the bot API the handler needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Checker looks up a roll number.
type Checker interface {
	Check(rollNumber string) (*models.Report, error)
}

// Handler turns incoming messages into lookup replies.
type Handler struct {
	checker Checker
	sender  Sender
	logger  log.Logger
}

// NewHandler creates a Handler.
func NewHandler(checker Checker, sender Sender, logger log.Logger) *Handler {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Handler{checker: checker, sender: sender, logger: log.With(logger, "component", "bot")}
}

// Reply returns the answer for a message text.
func (h *Handler) Reply(msg *tgbotapi.Message) string {
	text := strings.TrimSpace(msg.Text)
	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "help":
			return helpText
		case "check":
			text = strings.TrimSpace(msg.CommandArguments())
			if text == "" {
				return "Usage: /check <roll number>"
			}
		default:
			return "Unknown command. " + helpText
		}
	}
	if text == "" {
		return helpText
	}

	report, err := h.checker.Check(text)
	switch {
	case errors.Is(err, attendance.ErrNoData):
		return "No attendance data available"
	case errors.Is(err, attendance.ErrNotFound):
		return "Roll number not found"
	case err != nil:
		level.Error(h.logger).Log("msg", "lookup failed", "err", err)
		return "Lookup failed, please try again later"
	}
	return output.PlainReport(report)
}

// Process answers one update.
func (h *Handler) Process(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	reply := tgbotapi.NewMessage(update.Message.Chat.ID, h.Reply(update.Message))
	reply.ReplyToMessageID = update.Message.MessageID
	if _, err := h.sender.Send(reply); err != nil {
		level.Warn(h.logger).Log("msg", "failed to send reply", "chat", update.Message.Chat.ID, "err", err)
	}
}

// Run polls for updates until ctx is cancelled.
func Run(ctx context.Context, token string, checker Checker, logger log.Logger) error {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return err
	}
	h := NewHandler(checker, api, logger)
	level.Info(h.logger).Log("msg", "authorized", "account", api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.Process(update)
		}
	}
}
