package history

import "time"

// Observation — одна успешная проверка цены. Пишется всегда, когда цена
// получена, независимо от того, сработал алерт или нет.
type Observation struct {
	Timestamp time.Time
	ID        string
	Name      string
	Product   float64
	Logistics float64
	Return    float64
	Total     float64
	Target    float64
}
