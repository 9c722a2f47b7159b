package telegram

import (
	"homework_status_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// StateSource exposes the watcher's run state to the owner commands.
type StateSource interface {
	Snapshot() app.Snapshot
}

const refusalReply = "This bot reports to its owner only."

// RegisterBotHandlers registers the read-only owner commands. The bot serves
// exactly one chat; anyone else gets a refusal.
func RegisterBotHandlers(b *telebot.Bot, state StateSource, ownerChatID int64, baseLogger *logrus.Entry) {
	b.Handle("/start", startHandler(ownerChatID, baseLogger))
	b.Handle("/status", statusHandler(state, ownerChatID, baseLogger))
}

func startHandler(ownerChatID int64, baseLogger *logrus.Entry) func(c telebot.Context) error {
	return func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/start",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != ownerChatID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(refusalReply)
		}

		return c.Send("I watch the review status of your homework and message you whenever it changes. Use /status to see where things stand.")
	}
}

func statusHandler(state StateSource, ownerChatID int64, baseLogger *logrus.Entry) func(c telebot.Context) error {
	return func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/status",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != ownerChatID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(refusalReply)
		}

		return c.Send(app.FormatSnapshot(state.Snapshot()))
	}
}
