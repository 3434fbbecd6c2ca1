package ws

import "github.com/prometheus/client_golang/prometheus"

var subscribersGauge = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "ws_subscribers",
	Help: "Open change-event subscriptions across all tenants",
})

var droppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "ws_dropped_subscribers_total",
	Help: "Subscribers disconnected because their send buffer was full",
})

func init() {
	prometheus.MustRegister(subscribersGauge)
	prometheus.MustRegister(droppedTotal)
}
