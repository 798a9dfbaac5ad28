package checker

import (
	"context"
	"time"

	"github.com/Spok95/wb-price-bot/internal/domain/pricestate"
	"github.com/Spok95/wb-price-bot/internal/domain/subscriptions"
)

// ListEntry — строка для команды /list: подписка и что мы знаем о цене.
// Price == nil означает «цена недоступна» (товар ни разу не проверялся
// успешно). Stale — показана закэшированная цена, обновить не удалось.
type ListEntry struct {
	Sub   subscriptions.Subscription
	Price *float64
	Stale bool
}

// RefreshStale — ленивое обновление кэша для просмотра подписок.
// Протухшие записи (старше ttl) перепроверяются по одной; свежие отдаются
// из кэша. Этот путь не трогает антиспам-машину: алерты приходят только
// из плановых проходов.
func (c *Checker) RefreshStale(ctx context.Context, ttl time.Duration) []ListEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []ListEntry
	now := c.now()

	for _, sub := range c.subs.List() {
		st := c.state.Get(sub.ID)
		if !st.IsStale(now, ttl) {
			out = append(out, ListEntry{Sub: sub, Price: st.LastPrice})
			continue
		}

		info, err := c.source.Price(ctx, sub.ID)
		if err != nil {
			c.log.Warn("cache refresh failed", "id", sub.ID, "err", err)
			// Старая цена остаётся на экране с пометкой «устарело»;
			// «недоступно» — только если цены не было никогда.
			out = append(out, ListEntry{Sub: sub, Price: st.LastPrice, Stale: st.LastPrice != nil})
			continue
		}

		price := info.Total
		ts := now.Format(time.RFC3339)
		if err := c.state.Merge(sub.ID, pricestate.Patch{
			LastPrice:     &price,
			LastCheckTime: &ts,
		}); err != nil {
			c.log.Error("state merge failed", "id", sub.ID, "err", err)
		}
		out = append(out, ListEntry{Sub: sub, Price: &price})
	}
	return out
}
