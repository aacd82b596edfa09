package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier pushes out-of-band messages to a guest chat. The booking service
// calls it when a stay is moved to a different room.
type Notifier struct {
	api  *tgbotapi.BotAPI
	cfg  *config.Config
	otel otel.Otel
}

func NewNotifier(api *tgbotapi.BotAPI, cfg *config.Config, otel otel.Otel) *Notifier {
	return &Notifier{
		api:  api,
		cfg:  cfg,
		otel: otel,
	}
}

func (n *Notifier) NotifyRoomChange(ctx context.Context, chatID int64, oldRoom, newRoom int) (err error) {
	_, scope := n.otel.NewScope(ctx, constant.OtelBotScopeName, constant.OtelBotScopeName+".NotifyRoomChange")
	defer scope.End()
	defer scope.TraceIfError(err)

	text := fmt.Sprintf("🔑 Вас переселили в комнату %d (ранее комната %d).", newRoom, oldRoom)

	return n.send(ctx, tgbotapi.NewMessage(chatID, text))
}

// send runs the Bot API call with a deadline because the underlying client
// does not accept a context.
func (n *Notifier) send(ctx context.Context, msg tgbotapi.MessageConfig) error {
	timeout := time.Duration(n.cfg.Telegram.SendTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	done := make(chan error, 1)
	go func() {
		_, err := n.api.Send(msg)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send telegram message: %w", err)
		}
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("telegram send to chat %d timed out after %s", msg.ChatID, timeout)
	case <-ctx.Done():
		return fmt.Errorf("telegram send to chat %d cancelled: %w", msg.ChatID, ctx.Err())
	}
}
