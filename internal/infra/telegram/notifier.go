// internal/infra/telegram/notifier.go
package telegram

import (
	"context"
	"time"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// The Bot API tolerates roughly one message per second per chat before it
// starts answering 429.
const (
	sendInterval = time.Second
	sendBurst    = 1
)

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the specified chat.
func (tba *TelebotAdapter) SendMessage(chatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	recipient := &telebot.User{ID: chatID} // The destination is a direct user chat.
	_, err := tba.bot.Send(recipient, text, options)
	return err
}

// Notifier delivers notification texts to the single configured chat,
// throttled to stay under the Bot API rate limit. One synchronous attempt
// per message; any failure comes back as *telegram.SendError.
type Notifier struct {
	client  domainTelegram.Client
	chatID  int64
	limiter *rate.Limiter
	logger  *logrus.Entry
}

func NewNotifier(client domainTelegram.Client, chatID int64, logger *logrus.Entry) *Notifier {
	return &Notifier{
		client:  client,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Every(sendInterval), sendBurst),
		logger:  logger,
	}
}

// Send delivers text to the configured chat.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return &domainTelegram.SendError{Err: err}
	}

	n.logger.WithField("chat_id", n.chatID).Debug("Sending notification")
	if err := n.client.SendMessage(n.chatID, text, nil); err != nil {
		n.logger.WithError(err).Error("Failed to send notification")
		return &domainTelegram.SendError{Err: err}
	}

	n.logger.Debug("Notification delivered")
	return nil
}
