package telegram

import (
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// New connects to the Bot API and drops any webhook left by a previous
// deployment so that long polling receives updates.
func New(config *config.Config) *tgbotapi.BotAPI {
	api, err := tgbotapi.NewBotAPI(config.Telegram.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Telegram bot client")
	}

	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.Warn().Err(err).Msg("Failed to delete Telegram webhook")
	}

	log.Info().Str("username", api.Self.UserName).Msg("Telegram bot authorized")

	return api
}
