package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChecksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricebot_checks_total",
		Help: "Completed scan passes.",
	})

	FetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricebot_fetch_errors_total",
		Help: "Products skipped in a pass because WB returned no usable price.",
	})

	AlertsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricebot_alerts_sent_total",
		Help: "Below-target notifications delivered.",
	})

	HistoryRotationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricebot_history_rotations_total",
		Help: "Price history CSV rotations.",
	})
)
