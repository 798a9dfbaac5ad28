// Package checker — плановая проверка цен: один проход по всем подпискам.
// По каждому товару делает три вещи: пишет историю в CSV, обновляет кэш
// в state.json и решает, слать ли алерт (антиспам по флагу in_alert).
package checker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Spok95/wb-price-bot/internal/domain/history"
	"github.com/Spok95/wb-price-bot/internal/domain/pricestate"
	"github.com/Spok95/wb-price-bot/internal/domain/subscriptions"
	"github.com/Spok95/wb-price-bot/internal/infra/metrics"
	"github.com/Spok95/wb-price-bot/internal/notify"
	"github.com/Spok95/wb-price-bot/internal/wb"
)

// PriceSource отдаёт текущую цену товара или ошибку «цена недоступна».
type PriceSource interface {
	Price(ctx context.Context, productID string) (*wb.PriceInfo, error)
}

type Checker struct {
	mu       sync.Mutex
	log      *slog.Logger
	subs     *subscriptions.Repo
	state    *pricestate.Repo
	history  *history.Repo
	source   PriceSource
	notifier notify.Notifier
	currency string

	now func() time.Time
}

func New(log *slog.Logger, subs *subscriptions.Repo, state *pricestate.Repo,
	hist *history.Repo, source PriceSource, notifier notify.Notifier,
	currency string) *Checker {

	return &Checker{
		log:      log,
		subs:     subs,
		state:    state,
		history:  hist,
		source:   source,
		notifier: notifier,
		currency: currency,
		now:      time.Now,
	}
}

// Run выполняет один проход. Ошибка по одному товару не прерывает
// обработку остальных. Проходы сериализуются: файлы хранилища пишет
// один проход за раз (/check не накладывается на плановый тик).
func (c *Checker) Run(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log.Info("price check started")

	subs := c.subs.List()
	if len(subs) == 0 {
		c.log.Info("no subscriptions, nothing to check")
		return
	}

	for _, sub := range subs {
		if sub.ID == "" {
			c.log.Warn("skipping subscription without id")
			continue
		}
		c.checkOne(ctx, sub)
	}

	metrics.ChecksTotal.Inc()
	c.log.Info("price check finished", "subscriptions", len(subs))
}

func (c *Checker) checkOne(ctx context.Context, sub subscriptions.Subscription) {
	info, err := c.source.Price(ctx, sub.ID)
	if err != nil {
		metrics.FetchErrorsTotal.Inc()
		c.log.Warn("no price from wb", "id", sub.ID, "err", err)
		return
	}

	now := c.now()

	// История пишется всегда, когда цена получена, — до любых решений об алертах.
	if err := c.history.Append(history.Observation{
		Timestamp: now,
		ID:        sub.ID,
		Name:      sub.Name,
		Product:   info.Product,
		Logistics: info.Logistics,
		Return:    info.Return,
		Total:     info.Total,
		Target:    sub.Target,
	}); err != nil {
		c.log.Error("history append failed", "id", sub.ID, "err", err)
	}

	price := info.Total
	ts := now.Format(time.RFC3339)
	if err := c.state.Merge(sub.ID, pricestate.Patch{
		LastPrice:     &price,
		LastCheckTime: &ts,
	}); err != nil {
		c.log.Error("state merge failed", "id", sub.ID, "err", err)
	}

	c.evaluateAlert(sub, info.Total)
}
