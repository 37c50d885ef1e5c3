// Package telegram owns the chat-facing surface: alert delivery and
// the command loop that edits the watched wallet set.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gagliardetto/solana-go"

	"launchwatch/internal/core/domain"
	"launchwatch/internal/infra/storage"
)

// BotAPIInterface abstracts the Telegram Bot API for testing.
type BotAPIInterface interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// BotAPIFactory creates a BotAPIInterface from a token.
type BotAPIFactory func(token string) (BotAPIInterface, error)

// DefaultBotAPIFactory creates a real Bot API client.
func DefaultBotAPIFactory(token string) (BotAPIInterface, error) {
	return tgbotapi.NewBotAPI(token)
}

// Bot serves alerts and chat commands.
type Bot struct {
	api     BotAPIInterface
	wallets storage.WalletRepository
	log     *slog.Logger
}

// NewBot creates a bot against the real Telegram API.
func NewBot(token string, wallets storage.WalletRepository, log *slog.Logger) (*Bot, error) {
	return NewBotWithFactory(token, wallets, DefaultBotAPIFactory, log)
}

// NewBotWithFactory creates a bot with a custom API factory.
func NewBotWithFactory(token string, wallets storage.WalletRepository, factory BotAPIFactory, log *slog.Logger) (*Bot, error) {
	api, err := factory(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Bot{api: api, wallets: wallets, log: log}, nil
}

// SendAlert delivers a Markdown alert to the chat.
func (b *Bot) SendAlert(chatID int64, message string) error {
	msg := tgbotapi.NewMessage(chatID, message)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send alert: %w", err)
	}
	return nil
}

// Start consumes the update channel until the context is canceled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		b.handleCommand(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	b.log.Debug("received command", "command", msg.Command(), "chat_id", chatID)

	switch msg.Command() {
	case "start":
		b.reply(chatID, "Welcome to the token launch watcher.\n\n"+
			"I alert you when a watched wallet touches a newly launched token.\n"+
			"Use /help to see available commands.")

	case "help":
		b.reply(chatID, "Available commands:\n\n"+
			"/watch <address> - Watch a Solana wallet\n"+
			"/remove <address> - Stop watching a wallet\n"+
			"/list - List watched wallets\n"+
			"/help - Show this help message")

	case "watch":
		b.handleWatch(ctx, chatID, msg.Text)

	case "remove":
		b.handleRemove(ctx, chatID, msg.Text)

	case "list":
		b.handleList(ctx, chatID)
	}
}

func (b *Bot) handleWatch(ctx context.Context, chatID int64, text string) {
	args := strings.Fields(text)
	if len(args) != 2 {
		b.reply(chatID, "Usage: /watch <address>")
		return
	}
	address := args[1]

	if _, err := solana.PublicKeyFromBase58(address); err != nil {
		b.reply(chatID, "That does not look like a valid Solana address.")
		return
	}

	watch := &domain.WalletWatch{Address: address, ChatID: chatID}
	if err := b.wallets.Save(ctx, watch); err != nil {
		b.log.Error("failed to save wallet watch", "wallet", address, "error", err)
		b.reply(chatID, "Failed to save the wallet, try again later.")
		return
	}

	b.replyMarkdown(chatID, fmt.Sprintf("Now watching `%s` for token launches.", address))
}

func (b *Bot) handleRemove(ctx context.Context, chatID int64, text string) {
	args := strings.Fields(text)
	if len(args) != 2 {
		b.reply(chatID, "Usage: /remove <address>")
		return
	}
	address := args[1]

	if err := b.wallets.Delete(ctx, chatID, address); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			b.reply(chatID, "You are not watching that wallet.")
			return
		}
		b.log.Error("failed to delete wallet watch", "wallet", address, "error", err)
		b.reply(chatID, "Failed to remove the wallet, try again later.")
		return
	}

	b.replyMarkdown(chatID, fmt.Sprintf("Stopped watching `%s`.", address))
}

func (b *Bot) handleList(ctx context.Context, chatID int64) {
	watches, err := b.wallets.GetByChat(ctx, chatID)
	if err != nil {
		b.log.Error("failed to list wallet watches", "chat_id", chatID, "error", err)
		b.reply(chatID, "Failed to load your wallets, try again later.")
		return
	}

	if len(watches) == 0 {
		b.reply(chatID, "You are not watching any wallets.\n\nUse /watch <address> to add one.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Watched wallets:\n\n")
	for i, w := range watches {
		fmt.Fprintf(&sb, "%d. `%s`\n", i+1, w.Address)
	}
	b.replyMarkdown(chatID, sb.String())
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Warn("failed to send reply", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) replyMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("failed to send reply", "chat_id", chatID, "error", err)
	}
}
