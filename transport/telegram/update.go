package telegram

import (
	"context"
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// The pinned Bot API library predates web apps: its Update type silently drops
// the web_app_data field and its KeyboardButton cannot carry a web_app button.
// Both sides of that surface are small JSON shapes, so this file declares them
// locally. Incoming updates are fetched through the library's MakeRequest and
// decoded here; outgoing keyboards are plain structs handed to ReplyMarkup,
// which the library marshals as-is.

type webAppInfo struct {
	URL string `json:"url"`
}

type keyboardButton struct {
	Text   string      `json:"text"`
	WebApp *webAppInfo `json:"web_app,omitempty"`
}

type replyKeyboard struct {
	Keyboard       [][]keyboardButton `json:"keyboard"`
	ResizeKeyboard bool               `json:"resize_keyboard"`
}

func webAppKeyboard(text, url string) replyKeyboard {
	return replyKeyboard{
		Keyboard: [][]keyboardButton{
			{{Text: text, WebApp: &webAppInfo{URL: url}}},
		},
		ResizeKeyboard: true,
	}
}

type webAppData struct {
	Data       string `json:"data"`
	ButtonText string `json:"button_text"`
}

type message struct {
	*tgbotapi.Message

	WebAppData *webAppData `json:"web_app_data"`
}

type update struct {
	UpdateID int      `json:"update_id"`
	Message  *message `json:"message"`
}

// fetchUpdates long-polls getUpdates once and decodes the batch with the
// web_app_data field intact.
func (b *Bot) fetchUpdates(_ context.Context, offset, timeout int) ([]update, error) {
	params := tgbotapi.Params{}
	params.AddNonZero("offset", offset)
	params.AddNonZero("timeout", timeout)

	resp, err := b.api.MakeRequest("getUpdates", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch telegram updates: %w", err)
	}

	var updates []update
	if err := json.Unmarshal(resp.Result, &updates); err != nil {
		return nil, fmt.Errorf("failed to decode telegram updates: %w", err)
	}

	return updates, nil
}
