package pricestate

import "time"

// State — кэш по одному товару: последняя цена, время проверки и
// антиспам-флаг. in_alert — именно сохранённый флаг, его нельзя выводить
// из сравнения last_price с целью: цель могла поменяться после установки.
type State struct {
	LastPrice     *float64 `json:"last_price,omitempty"`
	LastCheckTime string   `json:"last_check_time,omitempty"`
	InAlert       bool     `json:"in_alert"`
}

// Patch — частичное обновление State. nil-поля не трогаются,
// чтобы запись last_price не затёрла in_alert и наоборот.
type Patch struct {
	LastPrice     *float64
	LastCheckTime *string
	InAlert       *bool
}

// IsStale: кэш устарел, если проверки ещё не было, метка времени битая
// или прошло не меньше ttl.
func (s State) IsStale(now time.Time, ttl time.Duration) bool {
	if s.LastCheckTime == "" {
		return true
	}
	t, err := time.Parse(time.RFC3339, s.LastCheckTime)
	if err != nil {
		return true
	}
	return now.Sub(t) >= ttl
}
