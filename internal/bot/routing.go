package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message

	// Бот личный: реагируем только на владельца.
	if msg.Chat == nil || msg.Chat.ID != b.ownerChat {
		return
	}
	if !msg.IsCommand() {
		return
	}

	switch msg.Command() {
	case "start", "help":
		b.handleStart(msg.Chat.ID)
	case "add":
		b.handleAdd(ctx, msg.Chat.ID, msg.CommandArguments())
	case "list":
		b.handleList(ctx, msg.Chat.ID)
	case "del", "delete":
		b.handleDel(msg.Chat.ID, msg.CommandArguments())
	case "status":
		b.handleStatus(msg.Chat.ID)
	case "check":
		b.handleCheck(ctx, msg.Chat.ID)
	case "interval":
		b.handleInterval(msg.Chat.ID, msg.CommandArguments())
	case "export":
		b.handleExport(msg.Chat.ID)
	}
}
