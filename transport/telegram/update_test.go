package telegram

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateDecode_WebAppData(t *testing.T) {
	raw := `[{"update_id":731,"message":{"message_id":42,"chat":{"id":555},"web_app_data":{"data":"{\"type\":\"feedback\",\"rating\":5}","button_text":"🛎 Открыть меню"}}}]`

	var updates []update
	err := json.Unmarshal([]byte(raw), &updates)

	assert.NoError(t, err)
	if assert.Len(t, updates, 1) {
		msg := updates[0].Message
		assert.Equal(t, 731, updates[0].UpdateID)
		assert.Equal(t, int64(555), msg.Chat.ID)

		if assert.NotNil(t, msg.WebAppData) {
			decoded, err := decodePayload(msg.WebAppData.Data)

			assert.NoError(t, err)
			feedback, ok := decoded.(feedbackPayload)
			if assert.True(t, ok) {
				assert.Equal(t, 5, feedback.Rating)
			}
		}
	}
}

func TestUpdateDecode_PlainText(t *testing.T) {
	raw := `[{"update_id":732,"message":{"message_id":43,"chat":{"id":555},"text":"/start room_205"}}]`

	var updates []update
	err := json.Unmarshal([]byte(raw), &updates)

	assert.NoError(t, err)
	if assert.Len(t, updates, 1) {
		msg := updates[0].Message
		assert.Nil(t, msg.WebAppData)
		assert.Equal(t, "/start room_205", msg.Text)
	}
}

func TestWebAppKeyboard_Marshal(t *testing.T) {
	data, err := json.Marshal(webAppKeyboard("🛎 Открыть меню", "https://hotel.example/guest?room=205"))

	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"keyboard":[[{"text":"🛎 Открыть меню","web_app":{"url":"https://hotel.example/guest?room=205"}}]],
		"resize_keyboard":true
	}`, string(data))
}
