// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package metrics exports driver-host request statistics as Prometheus
// collectors. Grounded on prometheus/collectors/collectors.go's
// namespace/subsystem naming convention (fqName built from namespace,
// subsystem, name) and label shape, adapted from that package's
// pull-from-Stats-struct collector to direct instrumentation since the
// driver-host increments counters itself at dispatch time rather than
// exposing a polled stats snapshot.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dbflux"

// Metrics is every Prometheus collector the driver-host registers.
// One Metrics is shared across every open session of one process.
type Metrics struct {
	OpenSessions    prometheus.Gauge
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ErrorsTotal     *prometheus.CounterVec
}

// New builds a Metrics instance labeled with the bound driver kind, and
// registers every collector with reg.
func New(reg prometheus.Registerer, driverKind string) *Metrics {
	m := &Metrics{
		OpenSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "driverhost",
			Name:        "open_sessions",
			Help:        "The number of sessions currently open in this driver-host process.",
			ConstLabels: prometheus.Labels{"driver": driverKind},
		}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "driverhost",
			Name:        "requests_total",
			Help:        "The total number of requests dispatched, by request kind.",
			ConstLabels: prometheus.Labels{"driver": driverKind},
		}, []string{"kind"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "driverhost",
			Name:        "request_duration_seconds",
			Help:        "Time spent dispatching one request, by request kind.",
			ConstLabels: prometheus.Labels{"driver": driverKind},
			Buckets:     prometheus.DefBuckets,
		}, []string{"kind"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "driverhost",
			Name:        "errors_total",
			Help:        "The total number of requests that failed, by error code.",
			ConstLabels: prometheus.Labels{"driver": driverKind},
		}, []string{"code"}),
	}
	reg.MustRegister(m.OpenSessions, m.RequestsTotal, m.RequestDuration, m.ErrorsTotal)
	return m
}

// ObserveRequest records one dispatched request's outcome and latency.
func (m *Metrics) ObserveRequest(kind string, start time.Time, errCode string) {
	m.RequestsTotal.WithLabelValues(kind).Inc()
	m.RequestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if errCode != "" {
		m.ErrorsTotal.WithLabelValues(errCode).Inc()
	}
}
