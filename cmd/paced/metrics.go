package main

import (
	"context"
	"expvar"
	"net/http"
	"time"

	"github.com/erinpentecost/pace"
	"github.com/zserge/metric"
)

// MetricsServer publishes pacing statistics over expvar.
type MetricsServer struct {
	addr         string
	avgFrameTime metric.Metric
	avgFPS       metric.Metric
	lag          metric.Metric
}

// NewMetricsServer creates a new metrics server.
func NewMetricsServer(addr string) *MetricsServer {
	return &MetricsServer{
		addr:         addr,
		avgFrameTime: metric.NewGauge("5m5s"),
		avgFPS:       metric.NewGauge("5m5s"),
		lag:          metric.NewGauge("5m5s"),
	}
}

// Serve starts an http server.
func (m *MetricsServer) Serve(done <-chan interface{}) {
	expvar.Publish("AverageFrameTimeMs", m.avgFrameTime)
	expvar.Publish("AverageFPS", m.avgFPS)
	expvar.Publish("LagMs", m.lag)

	server := &http.Server{Addr: m.addr, Handler: metric.Handler(metric.Exposed)}

	// Start hosting http nonblocking.
	go func() {
		server.ListenAndServe()
	}()

	// Wait for cancellation and then shutdown http.
	go func() {
		<-done
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()
}

// Publish takes in a heartbeat sample.
func (m *MetricsServer) Publish(sample pace.PaceSample) {
	m.avgFrameTime.Add(sample.AverageFrameTime)
	m.avgFPS.Add(sample.AverageFPS)
	m.lag.Add(float64(sample.Lag) / float64(time.Millisecond))
}
