package telegram

import (
	"fmt"

	"gopkg.in/telebot.v3"
)

// Client is the outbound messaging port. It keeps the notification path
// independent of the concrete bot library.
type Client interface {
	SendMessage(chatID int64, text string, options *telebot.SendOptions) error
}

// SendError reports a failed delivery to the chat. The poll loop treats it
// unlike any other failure: a broken notification channel is never itself
// reported through that same channel.
type SendError struct {
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("telegram: message delivery failed: %v", e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }
