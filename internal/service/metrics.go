package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	watchlistOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "animetracker_watchlist_operations_total",
		Help: "Watchlist operations by operation and result.",
	}, []string{"operation", "result"})

	airingNotifications = promauto.NewCounter(prometheus.CounterOpts{
		Name: "animetracker_airing_notifications_total",
		Help: "Episode airing events published.",
	})
)

func observe(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	watchlistOperations.WithLabelValues(operation, result).Inc()
}
