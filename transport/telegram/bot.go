package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel"
	bookingDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/model/dto"
	bookingService "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/service"
	guestDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/model/dto"
	guestService "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/service"
	orderDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/model/dto"
	orderService "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/service"
	reviewDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/review/model/dto"
	reviewService "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/review/service"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/failure"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// defaultRoom is assumed when a guest opens the bot without a room deep link.
const defaultRoom = 101

const (
	textAdminPanel      = "Панель администратора"
	textAdminButton     = "📅 Шахматка бронирований"
	textGuestButton     = "🛎 Открыть меню"
	textAskName         = "Добро пожаловать! Как вас зовут?"
	textAskPhone        = "Приятно познакомиться, %s! Отправьте номер телефона в формате +7XXXXXXXXXX."
	textBadPhone        = "Телефон должен быть в формате +7XXXXXXXXXX. Попробуйте ещё раз."
	textPhoneTaken      = "Этот номер уже привязан к другому гостю. Обратитесь на ресепшен."
	textWelcome         = "Добро пожаловать в отель! Вы в комнате %d."
	textRegCancelled    = "Регистрация отменена. Отправьте /start, чтобы начать заново."
	textOrderAccepted   = "Заказ #%s принят! Сумма: %.0f ₽"
	textFeedbackGood    = "Спасибо! Оставьте отзыв на картах."
	textFeedbackBad     = "Простите! Передали директору."
	textBookingCreated  = "✅ Бронь создана: Комната %d, %s"
	textBookingDeleted  = "❌ Бронь #%s удалена"
	textSomethingWrong  = "Что-то пошло не так. Попробуйте ещё раз."
	textUseMenu         = "Откройте меню кнопкой ниже или отправьте /start."
	textAdminNewOrder   = "🆕 Заказ #%s на сумму %.0f ₽"
	textAdminNewBooking = "🆕 Бронь из чата: комната %d, %s"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	guests   guestService.Guest
	bookings bookingService.Booking
	orders   orderService.Order
	reviews  reviewService.Review
	cfg      *config.Config
	otel     otel.Otel
}

func New(
	api *tgbotapi.BotAPI,
	guests guestService.Guest,
	bookings bookingService.Booking,
	orders orderService.Order,
	reviews reviewService.Review,
	cfg *config.Config,
	otel otel.Otel,
) *Bot {
	return &Bot{
		api:      api,
		guests:   guests,
		bookings: bookings,
		orders:   orders,
		reviews:  reviews,
		cfg:      cfg,
		otel:     otel,
	}
}

// Run long-polls the Bot API until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	timeout := b.cfg.Telegram.PollTimeoutSec
	if timeout <= 0 {
		timeout = 60
	}

	log.Info().Msg("Telegram bot polling started")

	offset := 0
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Telegram bot polling stopped")

			return
		default:
		}

		updates, err := b.fetchUpdates(ctx, offset, timeout)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Msg("Telegram bot polling stopped")

				return
			}
			log.Error().Err(err).Msg("failed to poll telegram updates")

			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			if upd.Message == nil {
				continue
			}

			b.handleMessage(ctx, upd.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *message) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelBotScopeName, constant.OtelBotScopeName+".HandleMessage")
	defer scope.End()

	switch {
	case msg.WebAppData != nil:
		b.handleWebAppData(ctx, msg)
	case msg.IsCommand():
		b.handleCommand(ctx, msg.Message)
	case msg.Text != "":
		b.handleText(ctx, msg.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "admin":
		b.sendAdminPanel(msg.Chat.ID)
	case "cancel":
		if err := b.guests.CancelRegistration(ctx, msg.Chat.ID); err != nil {
			log.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("failed to cancel registration")
		}
		b.reply(msg.Chat.ID, textRegCancelled)
	default:
		b.reply(msg.Chat.ID, textUseMenu)
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if chatID == b.cfg.Telegram.AdminChatID {
		b.sendAdminPanel(chatID)

		return
	}

	targetRoom := parseRoomPayload(msg.CommandArguments())

	if err := b.guests.Touch(ctx, chatID, fullName(msg.From)); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to record guest")
		b.reply(chatID, textSomethingWrong)

		return
	}

	guest, err := b.guests.Get(ctx, chatID)
	if err == nil && guest.Registered {
		room := targetRoom
		if guest.CurrentRoom != nil {
			room = *guest.CurrentRoom
		}
		b.sendWelcome(chatID, room)

		return
	}

	if _, err := b.guests.StartRegistration(ctx, chatID, targetRoom); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to start registration")
		b.reply(chatID, textSomethingWrong)

		return
	}

	b.reply(chatID, textAskName)
}

// handleText feeds free text through the registration stages. Text outside a
// registration session just gets pointed back at the menu.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	session, ok := b.guests.Session(ctx, chatID)
	if !ok {
		b.reply(chatID, textUseMenu)

		return
	}

	switch session.Stage {
	case guestDto.StageAwaitName:
		session, err := b.guests.SubmitName(ctx, chatID, strings.TrimSpace(msg.Text))
		if err != nil {
			log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to submit guest name")
			b.reply(chatID, textSomethingWrong)

			return
		}

		b.reply(chatID, fmt.Sprintf(textAskPhone, session.Name))
	case guestDto.StageAwaitPhone:
		result, err := b.guests.SubmitPhone(ctx, chatID, strings.TrimSpace(msg.Text))
		if err != nil {
			switch {
			case failure.IsConflict(err):
				b.reply(chatID, textPhoneTaken)
			case failure.GetCode(err) == http.StatusBadRequest:
				b.reply(chatID, textBadPhone)
			default:
				log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to submit guest phone")
				b.reply(chatID, textSomethingWrong)
			}

			return
		}

		b.sendWelcome(chatID, result.ActiveRoom)
	default:
		b.reply(chatID, textUseMenu)
	}
}

func (b *Bot) handleWebAppData(ctx context.Context, msg *message) {
	chatID := msg.Chat.ID

	payload, err := decodePayload(msg.WebAppData.Data)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("rejected web app payload")
		b.reply(chatID, textSomethingWrong)

		return
	}

	switch p := payload.(type) {
	case orderPayload:
		b.placeOrder(ctx, chatID, p)
	case feedbackPayload:
		b.saveFeedback(ctx, chatID, p)
	case bookingCreatePayload:
		b.createBooking(ctx, chatID, p)
	case bookingCancelPayload:
		b.cancelBooking(ctx, chatID, p)
	}
}

func (b *Bot) placeOrder(ctx context.Context, chatID int64, payload orderPayload) {
	items := make([]orderDto.OrderItemRequest, len(payload.Items))
	for i, item := range payload.Items {
		items[i] = orderDto.OrderItemRequest{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	order, err := b.orders.Place(ctx, orderDto.PlaceOrderRequest{
		ChatID: chatID,
		Items:  items,
	})
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to place order")
		b.reply(chatID, textSomethingWrong)

		return
	}

	b.reply(chatID, fmt.Sprintf(textOrderAccepted, shortID(order.ID), order.Total))
	b.notifyAdmin(fmt.Sprintf(textAdminNewOrder, shortID(order.ID), order.Total))
}

func (b *Bot) saveFeedback(ctx context.Context, chatID int64, payload feedbackPayload) {
	if _, err := b.reviews.Create(ctx, reviewDto.CreateReviewRequest{
		ChatID:  chatID,
		Rating:  payload.Rating,
		Comment: payload.Comment,
	}); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to save feedback")
		b.reply(chatID, textSomethingWrong)

		return
	}

	if payload.Rating >= 4 {
		b.reply(chatID, textFeedbackGood)
	} else {
		b.reply(chatID, textFeedbackBad)
	}
}

func (b *Bot) createBooking(ctx context.Context, chatID int64, payload bookingCreatePayload) {
	err := b.bookings.Create(ctx, bookingDto.CreateBookingRequest{
		RoomNumber: payload.RoomNumber,
		GuestName:  payload.GuestName,
		Phone:      payload.Phone,
		CheckIn:    payload.CheckIn,
		CheckOut:   payload.CheckOut,
		Rate:       payload.Rate,
	})
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to create booking from chat")
		b.reply(chatID, textSomethingWrong)

		return
	}

	b.reply(chatID, fmt.Sprintf(textBookingCreated, payload.RoomNumber, payload.GuestName))
	b.notifyAdmin(fmt.Sprintf(textAdminNewBooking, payload.RoomNumber, payload.GuestName))
}

func (b *Bot) cancelBooking(ctx context.Context, chatID int64, payload bookingCancelPayload) {
	if err := b.bookings.Delete(ctx, payload.BookingID); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to delete booking from chat")
		b.reply(chatID, textSomethingWrong)

		return
	}

	b.reply(chatID, fmt.Sprintf(textBookingDeleted, shortID(payload.BookingID)))
}

func (b *Bot) sendWelcome(chatID int64, room int) {
	if room <= 0 {
		room = defaultRoom
	}

	webAppURL := fmt.Sprintf("%s/guest?room=%s", b.cfg.Telegram.WebAppBaseURL, url.QueryEscape(strconv.Itoa(room)))

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(textWelcome, room))
	msg.ReplyMarkup = webAppKeyboard(textGuestButton, webAppURL)

	b.send(msg)
}

func (b *Bot) sendAdminPanel(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, textAdminPanel)
	msg.ReplyMarkup = webAppKeyboard(textAdminButton, b.cfg.Telegram.WebAppBaseURL+"/admin")

	b.send(msg)
}

func (b *Bot) notifyAdmin(text string) {
	if b.cfg.Telegram.AdminChatID == 0 {
		return
	}

	b.send(tgbotapi.NewMessage(b.cfg.Telegram.AdminChatID, text))
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat_id", msg.ChatID).Msg("failed to send telegram message")
	}
}

// parseRoomPayload extracts the room number from a "room_NNN" deep link
// argument. Zero means no usable deep link.
func parseRoomPayload(args string) int {
	args = strings.TrimSpace(args)
	if !strings.HasPrefix(args, "room_") {
		return 0
	}

	room, err := strconv.Atoi(strings.TrimPrefix(args, "room_"))
	if err != nil || room <= 0 {
		return 0
	}

	return room
}

func fullName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	if user.LastName == "" {
		return user.FirstName
	}

	return user.FirstName + " " + user.LastName
}

// shortID keeps chat messages readable by showing only the first uuid block.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}

	return id
}
