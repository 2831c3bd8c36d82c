package bot

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"

	"PromoPilot/bot/chat"
	"PromoPilot/bot/chat/telegram"
	"PromoPilot/entity"
	"PromoPilot/internal/lib/sl"
)

const platformTelegram = "telegram"

const helpText = `Available commands:
/start - Start the bot
/help - Show this help message

Options:
1. Generate Content - Create content based on templates
2. Use push-generator - Generate push notifications`

// MessageListener observes the dialog feed (persistence, ops broadcast).
type MessageListener interface {
	Record(msg entity.ChatMessage)
}

// TgBot routes Telegram updates into the conversation engine. It serves
// both entry modes: one-shot dispatch from a webhook invocation and long
// polling for a standalone deployment.
type TgBot struct {
	log       *slog.Logger
	api       *tgbotapi.Bot
	engine    *chat.Engine
	messenger *telegram.Messenger
	listener  MessageListener
}

// NewTgBot creates the Telegram gateway.
func NewTgBot(apiKey string, engine *chat.Engine, log *slog.Logger) (*TgBot, error) {
	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %w", err)
	}

	return &TgBot{
		log:       log.With(sl.Module("tgbot")),
		api:       api,
		engine:    engine,
		messenger: telegram.NewMessenger(api),
	}, nil
}

// SetListener sets the dialog feed listener.
func (t *TgBot) SetListener(l MessageListener) {
	t.listener = l
}

// ProcessUpdate drives one decoded update through the dispatcher. Non-text
// updates are ignored.
func (t *TgBot) ProcessUpdate(ctx context.Context, upd *tgbotapi.Update) error {
	if upd == nil || upd.Message == nil || upd.Message.Text == "" || upd.Message.From == nil {
		return nil
	}

	msg := upd.Message
	userID := strconv.FormatInt(msg.From.Id, 10)
	chatID := strconv.FormatInt(msg.Chat.Id, 10)
	username := msg.From.Username
	text := msg.Text

	if t.listener != nil {
		t.listener.Record(entity.ChatMessage{
			Platform:  platformTelegram,
			UserID:    userID,
			ChatID:    chatID,
			Direction: "incoming",
			Username:  username,
			Text:      text,
			CreatedAt: time.Now(),
		})
	}

	switch {
	case strings.HasPrefix(text, "/start"):
		return t.engine.Restart(ctx, t.messenger, platformTelegram, userID, chatID, username)
	case strings.HasPrefix(text, "/help"):
		return t.messenger.SendText(chatID, helpText)
	default:
		return t.engine.HandleMessage(ctx, t.messenger, platformTelegram, userID, chatID, text)
	}
}

// Start runs long polling. It blocks until the updater stops.
func (t *TgBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		// If an error is returned by a handler, log it and continue going.
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Println("an error occurred while handling update:", err.Error())
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})

	dispatcher.AddHandler(handlers.NewMessage(message.Text, func(b *tgbotapi.Bot, ectx *ext.Context) error {
		return t.ProcessUpdate(context.Background(), ectx.Update)
	}))

	updater := ext.NewUpdater(dispatcher, nil)

	err := updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("starting polling: %w", err)
	}

	t.log.Info("telegram polling started")
	updater.Idle()
	return nil
}
