package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Spok95/wb-price-bot/internal/domain/pricestate"
	"github.com/Spok95/wb-price-bot/internal/domain/subscriptions"
	"github.com/Spok95/wb-price-bot/internal/wb"
)

func (b *Bot) handleStart(chatID int64) {
	b.reply(chatID,
		"👋 <b>Привет! Я бот для мониторинга цен WB.</b>\n\n"+
			"<b>Мои команды:</b>\n"+
			"/add <code>артикул</code> <code>цель</code> — добавить товар\n"+
			"/list — список подписок\n"+
			"/del <code>артикул</code> — удалить товар\n"+
			"/check — проверить цены сейчас\n"+
			"/interval <code>минуты</code> — период проверки\n"+
			"/export — история цен в Excel\n"+
			"/status — настройки\n\n"+
			"<i>Пример:</i> <code>/add 172638392 50.00</code>")
}

func (b *Bot) handleAdd(ctx context.Context, chatID int64, args string) {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		b.reply(chatID, "⚠️ Формат: <code>/add артикул цена</code>")
		return
	}
	article := parts[0]
	target, err := strconv.ParseFloat(strings.ReplaceAll(parts[1], ",", "."), 64)
	if err != nil || target <= 0 {
		b.reply(chatID, "⚠️ Ошибка в числах. Пример: <code>/add 123456 50.5</code>")
		return
	}

	// Проверяем товар на WB до сохранения: битые артикулы не попадают в подписки.
	card, err := b.wb.FetchCard(ctx, article)
	if err != nil {
		b.log.Warn("add: wb fetch failed", "id", article, "err", err)
		b.reply(chatID, "❌ Товар не найден на WB или ошибка API.")
		return
	}
	info := wb.ParseCard(card, b.wb.Divider())
	if info == nil {
		b.reply(chatID, "❌ Не удалось получить цену товара. Возможно, его нет в наличии.")
		return
	}

	name := wb.ProductName(card)
	if name == "" {
		name = subscriptions.DefaultName
	}

	if err := b.subs.Upsert(subscriptions.Subscription{ID: article, Target: target, Name: name}); err != nil {
		b.log.Error("add: upsert failed", "id", article, "err", err)
		b.reply(chatID, "⚠️ Не удалось сохранить подписку.")
		return
	}

	// Сбрасываем антиспам-флаг: по свежей подписке уведомление должно прийти заново.
	off := false
	if err := b.state.Merge(article, pricestate.Patch{InAlert: &off}); err != nil {
		b.log.Error("add: state merge failed", "id", article, "err", err)
	}

	b.reply(chatID, fmt.Sprintf(
		"✅ <b>Товар добавлен!</b>\n\n"+
			"📦 %s\n"+
			"🆔 <code>%s</code>\n"+
			"💰 Текущая цена: <b>%.2f %s</b>\n"+
			"🎯 Цель: <b>%.2f %s</b>",
		name, article, info.Total, b.currencyUpper(), target, b.currencyUpper()))
}

func (b *Bot) handleList(ctx context.Context, chatID int64) {
	entries := b.checker.RefreshStale(ctx, b.cacheTTL)
	if len(entries) == 0 {
		b.reply(chatID, "📭 Список отслеживания пуст.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 <b>Твои подписки:</b>\n\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("🔹 <b>%s</b>\n", e.Sub.Name))
		switch {
		case e.Price == nil:
			sb.WriteString(fmt.Sprintf("ID: <code>%s</code> | Цена: недоступна | Цель: %.2f %s\n\n",
				e.Sub.ID, e.Sub.Target, b.currencyUpper()))
		case e.Stale:
			sb.WriteString(fmt.Sprintf("ID: <code>%s</code> | Цена: %.2f %s (устарело) | Цель: %.2f %s\n\n",
				e.Sub.ID, *e.Price, b.currencyUpper(), e.Sub.Target, b.currencyUpper()))
		default:
			sb.WriteString(fmt.Sprintf("ID: <code>%s</code> | Цена: %.2f %s | Цель: %.2f %s\n\n",
				e.Sub.ID, *e.Price, b.currencyUpper(), e.Sub.Target, b.currencyUpper()))
		}
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) handleDel(chatID int64, args string) {
	article := strings.TrimSpace(args)
	if article == "" {
		b.reply(chatID, "⚠️ Укажите артикул: <code>/del 123456</code>")
		return
	}
	if err := b.subs.Remove(article); err != nil {
		b.log.Error("del: remove failed", "id", article, "err", err)
		b.reply(chatID, "⚠️ Не удалось удалить подписку.")
		return
	}
	// Подчищаем и state, чтобы не копить осиротевшие записи.
	if err := b.state.Delete(article); err != nil {
		b.log.Error("del: state delete failed", "id", article, "err", err)
	}
	b.reply(chatID, fmt.Sprintf("🗑 Товар %s удалён из отслеживания.", article))
}

func (b *Bot) handleStatus(chatID int64) {
	b.reply(chatID, fmt.Sprintf(
		"⚙️ <b>Статус бота:</b>\n"+
			"Интервал проверки: %d мин\n"+
			"TTL кэша: %d мин\n"+
			"Регион (dest): %s\n"+
			"Валюта: %s",
		int(b.interval.Minutes()), int(b.cacheTTL.Minutes()), b.dest, b.currencyUpper()))
}

func (b *Bot) handleCheck(ctx context.Context, chatID int64) {
	b.reply(chatID, "🔍 Запускаю проверку цен...")
	b.checker.Run(ctx)
	b.reply(chatID, "✅ Проверка завершена.")
}

func (b *Bot) handleInterval(chatID int64, args string) {
	minutes, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || minutes < 1 {
		b.reply(chatID, "⚠️ Укажите период в минутах: <code>/interval 10</code>")
		return
	}
	b.interval = time.Duration(minutes) * time.Minute
	b.sched.SetInterval(b.interval)
	b.reply(chatID, fmt.Sprintf("⏱ Интервал проверки: %d мин (со следующего тика).", minutes))
}

func (b *Bot) currencyUpper() string {
	return strings.ToUpper(b.currency)
}
