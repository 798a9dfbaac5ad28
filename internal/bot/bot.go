package bot

import (
	"context"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/wb-price-bot/internal/checker"
	"github.com/Spok95/wb-price-bot/internal/domain/history"
	"github.com/Spok95/wb-price-bot/internal/domain/pricestate"
	"github.com/Spok95/wb-price-bot/internal/domain/subscriptions"
	"github.com/Spok95/wb-price-bot/internal/wb"
)

// Bot — командный интерфейс владельца: /add, /list, /del, /status,
// /check, /interval, /export. Сообщения из чужих чатов игнорируются.
type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	ownerChat int64

	subs    *subscriptions.Repo
	state   *pricestate.Repo
	history *history.Repo
	wb      *wb.Client
	checker *checker.Checker
	sched   *checker.Scheduler

	currency string
	dest     string
	cacheTTL time.Duration
	interval time.Duration
}

type Deps struct {
	API       *tgbotapi.BotAPI
	Log       *slog.Logger
	OwnerChat int64

	Subs    *subscriptions.Repo
	State   *pricestate.Repo
	History *history.Repo
	WB      *wb.Client
	Checker *checker.Checker
	Sched   *checker.Scheduler

	Currency string
	Dest     string
	CacheTTL time.Duration
	Interval time.Duration
}

func New(d Deps) *Bot {
	return &Bot{
		api:       d.API,
		log:       d.Log,
		ownerChat: d.OwnerChat,
		subs:      d.Subs,
		state:     d.State,
		history:   d.History,
		wb:        d.WB,
		checker:   d.Checker,
		sched:     d.Sched,
		currency:  d.Currency,
		dest:      d.Dest,
		cacheTTL:  d.CacheTTL,
		interval:  d.Interval,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			}
		}
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	b.send(msg)
}
