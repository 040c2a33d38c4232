package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notescan_uploads_total",
		Help: "Successfully ingested slide documents.",
	})
	scansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notescan_scans_total",
		Help: "Successful note scans.",
	})
	refreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notescan_refreshes_total",
		Help: "Successful question refreshes.",
	})
)
