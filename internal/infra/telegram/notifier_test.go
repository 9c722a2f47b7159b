package telegram

import (
	"context"
	"errors"
	"io"
	"testing"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

type fakeClient struct {
	chatIDs []int64
	texts   []string
	err     error
}

func (f *fakeClient) SendMessage(chatID int64, text string, _ *telebot.SendOptions) error {
	if f.err != nil {
		return f.err
	}
	f.chatIDs = append(f.chatIDs, chatID)
	f.texts = append(f.texts, text)
	return nil
}

func discardLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func newTestNotifier(client *fakeClient) *Notifier {
	n := NewNotifier(client, 42, discardLogger())
	n.limiter = rate.NewLimiter(rate.Inf, 0) // Tests should not wait out the throttle.
	return n
}

func TestSendDeliversToConfiguredChat(t *testing.T) {
	client := &fakeClient{}
	n := newTestNotifier(client)

	err := n.Send(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, client.texts)
	assert.Equal(t, []int64{42}, client.chatIDs)
}

func TestSendWrapsDeliveryFailure(t *testing.T) {
	cause := errors.New("telegram: 429 too many requests")
	n := newTestNotifier(&fakeClient{err: cause})

	err := n.Send(context.Background(), "hello")

	var sendErr *domainTelegram.SendError
	require.ErrorAs(t, err, &sendErr)
	assert.ErrorIs(t, err, cause)
}

func TestSendCancelledContext(t *testing.T) {
	client := &fakeClient{}
	n := NewNotifier(client, 42, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.Send(ctx, "hello")

	var sendErr *domainTelegram.SendError
	require.ErrorAs(t, err, &sendErr)
	assert.Empty(t, client.texts)
}
