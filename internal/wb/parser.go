package wb

// Card — ответ карточного API. Товары встречаются и на верхнем уровне,
// и под "data" — зависит от версии выдачи.
type Card struct {
	Data     *cardData `json:"data"`
	Products []Product `json:"products"`
}

type cardData struct {
	Products []Product `json:"products"`
}

type Product struct {
	Name  string `json:"name"`
	Sizes []Size `json:"sizes"`
}

type Size struct {
	Price *PriceBlock `json:"price"`
}

// PriceBlock — цена в минорных единицах (копейках).
type PriceBlock struct {
	Product   int64 `json:"product"`
	Logistics int64 `json:"logistics"`
	Return    int64 `json:"return"`
}

// PriceInfo — разобранная цена в валюте: товар + логистика + возврат.
type PriceInfo struct {
	Product   float64
	Logistics float64
	Return    float64
	Total     float64
}

// productStrategies — где искать товары в ответе; пробуем по порядку,
// первый непустой список выигрывает.
var productStrategies = []func(*Card) []Product{
	func(c *Card) []Product {
		if c.Data == nil {
			return nil
		}
		return c.Data.Products
	},
	func(c *Card) []Product { return c.Products },
}

func firstProduct(card *Card) *Product {
	for _, pick := range productStrategies {
		if products := pick(card); len(products) > 0 {
			return &products[0]
		}
	}
	return nil
}

func findPriceBlock(p *Product) *PriceBlock {
	for i := range p.Sizes {
		if p.Sizes[i].Price != nil {
			return p.Sizes[i].Price
		}
	}
	return nil
}

// ParseCard извлекает цену из карточки. nil — цены в ответе нет
// (нет товаров, нет размеров с ценой).
func ParseCard(card *Card, divider int) *PriceInfo {
	if card == nil {
		return nil
	}
	if divider <= 0 {
		divider = 100
	}

	product := firstProduct(card)
	if product == nil {
		return nil
	}
	price := findPriceBlock(product)
	if price == nil {
		return nil
	}

	d := float64(divider)
	info := PriceInfo{
		Product:   float64(price.Product) / d,
		Logistics: float64(price.Logistics) / d,
		Return:    float64(price.Return) / d,
	}
	info.Total = info.Product + info.Logistics + info.Return
	return &info
}

// ProductName — название товара из карточки; пустая строка, если не нашли.
func ProductName(card *Card) string {
	if card == nil {
		return ""
	}
	if p := firstProduct(card); p != nil {
		return p.Name
	}
	return ""
}
