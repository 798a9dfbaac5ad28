package checker

import (
	"fmt"

	"github.com/Spok95/wb-price-bot/internal/domain/pricestate"
	"github.com/Spok95/wb-price-bot/internal/domain/subscriptions"
	"github.com/Spok95/wb-price-bot/internal/infra/metrics"
)

// evaluateAlert — антиспам-машина по флагу in_alert.
// Цена <= цели: алерт шлётся один раз; флаг ставится только после успешной
// отправки, чтобы при сбое доставки следующий проход повторил попытку.
// Цена выше цели: флаг снимается молча, следующее падение снова уведомит.
func (c *Checker) evaluateAlert(sub subscriptions.Subscription, current float64) {
	if sub.Target <= 0 {
		// Цели нет — историю и кэш ведём, алерты не трогаем.
		c.log.Info("no target set, skipping alert evaluation", "id", sub.ID)
		return
	}

	st := c.state.Get(sub.ID)

	if current <= sub.Target {
		if st.InAlert {
			c.log.Debug("already in alert, not spamming", "id", sub.ID)
			return
		}
		if err := c.notifier.Send(alertMessage(sub, current, c.currency)); err != nil {
			c.log.Error("alert send failed", "id", sub.ID, "err", err)
			return
		}
		on := true
		if err := c.state.Merge(sub.ID, pricestate.Patch{InAlert: &on}); err != nil {
			c.log.Error("state merge failed", "id", sub.ID, "err", err)
		}
		metrics.AlertsSentTotal.Inc()
		c.log.Info("alert sent", "id", sub.ID, "price", current, "target", sub.Target)
		return
	}

	if st.InAlert {
		off := false
		if err := c.state.Merge(sub.ID, pricestate.Patch{InAlert: &off}); err != nil {
			c.log.Error("state merge failed", "id", sub.ID, "err", err)
			return
		}
		c.log.Info("alert cleared, price above target", "id", sub.ID, "price", current, "target", sub.Target)
	}
}

func alertMessage(sub subscriptions.Subscription, current float64, currency string) string {
	return fmt.Sprintf(
		"🎯 <b>ЦЕНА НИЖЕ ЦЕЛИ!</b>\n\n"+
			"📦 %s\n"+
			"🆔 <code>%s</code>\n"+
			"💰 <b>%.2f %s</b>\n"+
			"🎯 Цель: %.2f %s\n"+
			"🔗 <a href='https://www.wildberries.by/catalog/%s/detail.aspx'>Купить</a>",
		sub.Name, sub.ID, current, currency, sub.Target, currency, sub.ID,
	)
}
