// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Command dbflux-driver-host binds one registered coredb.Driver and
// serves it over a local socket, per spec.md §4.8. Grounded on
// cmd/bulkbench's flag-driven main (one command, a handful of flags, a
// straight-line setup-then-run body).
package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dbflux/dbflux/coredb"
	"github.com/dbflux/dbflux/dbkind"
	"github.com/dbflux/dbflux/driverhost"
	"github.com/dbflux/dbflux/driverhost/metrics"
	"github.com/dbflux/dbflux/drivers/sqlite"
	"github.com/dbflux/dbflux/internal/transport"
)

func main() {
	driverName := flag.String("driver", "", "registered driver kind to bind (e.g. sqlite)")
	socket := flag.String("socket", "", "local socket path (unix) or pipe name (windows)")
	metricsAddr := flag.String("metrics-addr", "", "address to serve Prometheus metrics on; empty disables it")
	flag.Parse()

	if *driverName == "" || *socket == "" {
		log.Fatal("dbflux-driver-host: --driver and --socket are required")
	}

	registry := coredb.NewRegistry()
	registry.Register(sqlite.NewDriver())

	drv, err := registry.Lookup(dbkind.Kind(*driverName))
	if err != nil {
		log.Fatalf("dbflux-driver-host: %v", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg, string(drv.Kind()))
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Printf("dbflux-driver-host: metrics server: %v", err)
			}
		}()
	}

	ln, err := transport.Listen(*socket)
	if err != nil {
		log.Fatalf("dbflux-driver-host: listen %s: %v", *socket, err)
	}
	defer ln.Close()

	host := &driverhost.Host{Driver: drv, Metrics: m}
	log.Printf("dbflux-driver-host: serving %s on %s", drv.Kind(), *socket)
	if err := host.Serve(ln); err != nil {
		log.Println("dbflux-driver-host: serve:", err)
		os.Exit(1)
	}
}
