package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	photoTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pupshare_photo_transitions_total",
		Help: "Photo status transitions by target status",
	}, []string{"to"})

	likeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pupshare_like_events_total",
		Help: "Like and unlike operations that changed state",
	}, []string{"op"})

	mediaCleanupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pupshare_media_cleanup_failures_total",
		Help: "Uploaded files that could not be removed after their record was deleted",
	})
)
