package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yttools_http_requests_total",
		Help: "HTTP requests served, by path and status code.",
	}, []string{"path", "status"})

	httpInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "yttools_http_in_flight_requests",
		Help: "HTTP requests currently being served.",
	})

	transcodeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "yttools_transcode_duration_seconds",
		Help:    "Wall-clock time of yt-dlp MP3 conversions, including failed ones.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
)
