// Package notify — канал уведомлений. Доставка «выстрелил и забыл»:
// ошибку отправки вызывающий логирует, в состояние она не попадает.
package notify

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier отправляет одно сообщение владельцу бота.
type Notifier interface {
	Send(text string) error
}

// Telegram шлёт HTML-сообщения в заданный чат.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(api *tgbotapi.BotAPI, chatID int64) *Telegram {
	return &Telegram{api: api, chatID: chatID}
}

func (t *Telegram) Send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := t.api.Send(msg)
	return err
}
