package subscriptions

// DefaultName подставляется, если у товара не удалось узнать название.
const DefaultName = "Товар WB"

// Subscription — отслеживаемый товар. ID — артикул WB; формально это число,
// но храним строкой и никогда не парсим (кроме показа пользователю).
type Subscription struct {
	ID     string  `json:"id"`
	Target float64 `json:"target"`
	Name   string  `json:"name"`
}
