package bot

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"printk/internal/session"
)

// Bot is the Telegram front-end of a single operator's pricing session.
type Bot struct {
	api      Sender
	logger   *zap.Logger
	session  *session.Session
	operator int64
	mu       sync.Mutex
	handlers map[string]func(context.Context, int64, []string)
}

// New creates the bot. With operatorChatID 0 the bot locks to the first chat
// that writes to it.
func New(api Sender, sess *session.Session, operatorChatID int64, logger *zap.Logger) *Bot {
	b := &Bot{
		api:      api,
		logger:   logger,
		session:  sess,
		operator: operatorChatID,
	}

	b.registerHandlers()
	return b
}

func (b *Bot) registerHandlers() {
	b.handlers = map[string]func(context.Context, int64, []string){
		CmdStart:      b.handleStart,
		CmdHelp:       b.handleStart,
		CmdCalc:       b.handleCalc,
		CmdDimensions: b.handleDimensions,
		CmdCMYK:       b.handleCMYK,
		CmdWhite:      b.handleWhite,
		CmdMargin:     b.handleMargin,
		CmdRecalc:     b.handleRecalc,
		CmdReport:     b.handleReport,
		CmdExport:     b.handleExport,
		CmdParams:     b.handleParams,
		CmdSetParams:  b.handleSetParams,
		CmdStatus:     b.handleStatus,
	}
}

// Start processes updates until ctx is cancelled or the channel closes.
func (b *Bot) Start(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	b.logger.Info("Starting bot")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			return nil

		case update, ok := <-updates:
			if !ok {
				b.logger.Info("Update channel closed")
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches one update.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if update.Message != nil {
		b.processMessage(ctx, update.Message)
	} else if update.CallbackQuery != nil {
		b.processCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID

	if !b.authorize(chatID) {
		return
	}

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	if !msg.IsCommand() {
		b.sendText(chatID, "Usa /help per l'elenco dei comandi.")
		return
	}

	cmd := strings.ToLower(msg.Command())
	handler, exists := b.handlers[cmd]
	if !exists {
		b.sendError(chatID, "Comando sconosciuto. Usa /help.")
		return
	}
	handler(ctx, chatID, strings.Fields(msg.CommandArguments()))
}

func (b *Bot) processCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil || callback.Message.Chat == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	if !b.authorize(chatID) {
		return
	}

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", chatID),
		zap.String("data", callback.Data))

	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn("Failed to answer callback", zap.Error(err))
	}

	b.handleCallbackData(ctx, chatID, callback.Data)
}

// authorize keeps the session single-operator.
func (b *Bot) authorize(chatID int64) bool {
	if b.operator == 0 {
		b.operator = chatID
		b.logger.Info("Operator chat locked", zap.Int64("chat_id", chatID))
	}
	if chatID != b.operator {
		b.logger.Warn("Rejected message from foreign chat", zap.Int64("chat_id", chatID))
		b.sendError(chatID, "Accesso non autorizzato.")
		return false
	}
	return true
}

func (b *Bot) sendMessage(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message", zap.Error(err))
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendError(chatID int64, text string) {
	b.sendText(chatID, "❌ "+text)
}
