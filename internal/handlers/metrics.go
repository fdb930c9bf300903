package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ms_wb_orders",
		Help: "Количество заказов в последней выгрузке из Wildberries",
	})

	ordersImportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "ms_wb_orders_time_seconds",
		Help: "Длительность импорта заказов",
	})

	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ms_wb_events_total",
		Help: "Количество обработанных событий платформы",
	}, []string{"event", "status"})
)
