// Package wb — клиент карточного API Wildberries. Ядро бота не различает
// причины неудачи: сеть, не-200, битый JSON и «товара нет» одинаково
// означают «цены сейчас нет».
package wb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	cardURL   = "https://card.wb.ru/cards/v4/detail"
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Settings — параметры запроса к WB: валюта, регион (dest), скидка
// постоянного покупателя (spp) и делитель минорных единиц.
type Settings struct {
	Currency     string
	Dest         string
	SPP          int
	PriceDivider int
	Timeout      time.Duration
}

type Client struct {
	http     *http.Client
	settings Settings
	baseURL  string
}

func NewClient(settings Settings) *Client {
	if settings.PriceDivider <= 0 {
		settings.PriceDivider = 100
	}
	return &Client{
		http:     &http.Client{Timeout: settings.Timeout},
		settings: settings,
		baseURL:  cardURL,
	}
}

// FetchCard запрашивает карточку товара. Любая неудача — ошибка без
// детализации для ядра; подробности уходят в лог вызывающего.
func (c *Client) FetchCard(ctx context.Context, productID string) (*Card, error) {
	q := url.Values{}
	q.Set("appType", "1")
	q.Set("curr", c.settings.Currency)
	q.Set("dest", c.settings.Dest)
	q.Set("spp", fmt.Sprint(c.settings.SPP))
	q.Set("nm", productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wb request for %s: %w", productID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wb returned status %s for %s", resp.Status, productID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("wb read body for %s: %w", productID, err)
	}

	var card Card
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, fmt.Errorf("wb parse body for %s: %w", productID, err)
	}
	return &card, nil
}

// Divider — делитель минорных единиц из настроек клиента.
func (c *Client) Divider() int { return c.settings.PriceDivider }

// Price — карточка и разбор одним вызовом. «Нет цены в выдаче» и сетевые
// сбои для вызывающего равнозначны: цена недоступна.
func (c *Client) Price(ctx context.Context, productID string) (*PriceInfo, error) {
	card, err := c.FetchCard(ctx, productID)
	if err != nil {
		return nil, err
	}
	info := ParseCard(card, c.settings.PriceDivider)
	if info == nil {
		return nil, fmt.Errorf("wb card for %s has no price", productID)
	}
	return info, nil
}
