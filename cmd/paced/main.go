package main

import (
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/erinpentecost/pace"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "paced"
	app.Description = "Runs a rate-capped update loop and reports pacing statistics"
	app.Usage = "paced [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "hz",
			Usage: "Maximum update rate in frames per second (0 = uncapped)",
			Value: pace.DefaultMaxUpdateHz,
		},
		cli.DurationFlag{
			Name:  "duration",
			Usage: "How long to run the loop (0 = until interrupted)",
			Value: 10 * time.Second,
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to a YAML config file",
		},
		cli.StringFlag{
			Name:  "metrics-addr",
			Usage: "Listen address for the expvar metrics server (empty = disabled)",
		},
		cli.BoolFlag{
			Name:  "no-yield",
			Usage: "Don't yield the processor on frames with no timed wait",
		},
	}
	app.Action = runLoop

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running loop", "error", err)
		os.Exit(1)
	}
}

func runLoop(c *cli.Context) error {
	cfg := DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return err
		}
	}
	if c.IsSet("hz") {
		cfg.MaxUpdateHz = c.Int("hz")
	}
	if c.Bool("no-yield") {
		cfg.AlwaysYield = false
	}

	update := func(step time.Duration) error {
		return nil
	}
	loop, err := pace.NewLoop(update, cfg.MaxUpdateHz)
	if err != nil {
		return err
	}
	loop.Pacer().AlwaysYield = cfg.AlwaysYield

	var metrics *MetricsServer
	if addr := c.String("metrics-addr"); addr != "" {
		metrics = NewMetricsServer(addr)
		metrics.Serve(loop.Done())
	}

	if err := loop.Start(); err != nil {
		return err
	}
	slog.Info("Loop started", "hz", cfg.MaxUpdateHz, "always_yield", cfg.AlwaysYield)

	beatsDone := make(chan struct{})
	go func() {
		defer close(beatsDone)
		for sample := range loop.Heartbeat() {
			slog.Info("pace",
				"frame", sample.Frame,
				"avg_frame_ms", sample.AverageFrameTime,
				"avg_fps", sample.AverageFPS,
				"window_mean", sample.WindowMean,
				"window_stddev", sample.WindowStdDev,
				"lag", sample.Lag)
			if metrics != nil {
				metrics.Publish(sample)
			}
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	var timeout <-chan time.Time
	if d := c.Duration("duration"); d > 0 {
		timeout = time.After(d)
	}

	select {
	case <-interrupt:
		slog.Info("Interrupted")
	case <-timeout:
	case <-loop.Done():
	}
	loop.Stop(nil)
	<-loop.Done()
	<-beatsDone

	return loop.Err()
}
