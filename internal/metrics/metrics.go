// Package metrics provides the Prometheus collectors exposed by the proxy,
// grouped the way the proxy itself is: per-client gauges and the two
// singleton upstream tasks.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus metric the proxy records, passed by
// pointer into every component that needs to record one.
type Metrics struct {
	ClientsConnected        prometheus.Gauge
	ProxyIDsAssignedTotal   prometheus.Counter
	HandshakeFailuresTotal  prometheus.Counter
	RepliesDroppedTotal     prometheus.Counter
	EventPacketsTotal       prometheus.Counter
	IncomingQueueDepth      prometheus.Gauge
	OutstandingQueueDepth   prometheus.Gauge
	CorrespondenceTableSize prometheus.Gauge
}

// New creates and registers all metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		ClientsConnected: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "jdwp_proxy",
				Name:      "clients_connected",
				Help:      "Number of debugger clients currently attached",
			},
		),
		ProxyIDsAssignedTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "jdwp_proxy",
				Name:      "proxy_ids_assigned_total",
				Help:      "Total number of proxy ids assigned to outgoing commands",
			},
		),
		HandshakeFailuresTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "jdwp_proxy",
				Name:      "handshake_failures_total",
				Help:      "Total number of client handshakes that did not match the JDWP handshake string",
			},
		),
		RepliesDroppedTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "jdwp_proxy",
				Name:      "replies_dropped_total",
				Help:      "Total number of replies or event packets dropped because the destination client was gone",
			},
		),
		EventPacketsTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "jdwp_proxy",
				Name:      "event_packets_total",
				Help:      "Total number of JDWP event packets broadcast from the JVM",
			},
		),
		IncomingQueueDepth: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "jdwp_proxy",
				Name:      "incoming_queue_depth",
				Help:      "Current depth of the shared incoming-command queue",
			},
		),
		OutstandingQueueDepth: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "jdwp_proxy",
				Name:      "outstanding_queue_depth",
				Help:      "Current depth of the shared outstanding-command queue",
			},
		),
		CorrespondenceTableSize: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "jdwp_proxy",
				Name:      "correspondence_table_size",
				Help:      "Number of commands currently in flight to the JVM",
			},
		),
	}
}
