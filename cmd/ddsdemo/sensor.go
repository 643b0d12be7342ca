package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/dds/core/config"
	"github.com/dmitrymomot/dds/core/dds"
	"github.com/dmitrymomot/dds/core/health"
	"github.com/dmitrymomot/dds/core/logger"
	"github.com/dmitrymomot/dds/core/server"
	"github.com/dmitrymomot/dds/pkg/async"
	"github.com/dmitrymomot/dds/pkg/metrics"
	"github.com/dmitrymomot/dds/pkg/qosprofile"
)

const (
	sensorTopic    = "SensorTopic"
	sensorTypeName = "SensorData"
)

type sensorOptions struct {
	samples     int
	interval    time.Duration
	profileFile string
	profile     string
	metricsAddr string
	async       bool
}

func newSensorCmd() *cobra.Command {
	opts := sensorOptions{}

	cmd := &cobra.Command{
		Use:   "sensor",
		Short: "Publish sensor readings and print what the reader receives",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}

			var cfg dds.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			var srvCfg server.Config
			if err := config.Load(&srvCfg); err != nil {
				return err
			}
			if opts.metricsAddr != "" {
				srvCfg.Addr = opts.metricsAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, err = runSensor(ctx, opts, cfg, srvCfg, log, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().IntVarP(&opts.samples, "samples", "n", 5, "number of samples to publish")
	cmd.Flags().DurationVar(&opts.interval, "interval", 200*time.Millisecond, "delay between samples")
	cmd.Flags().StringVar(&opts.profileFile, "profile-file", "", "YAML file with named QoS profiles")
	cmd.Flags().StringVar(&opts.profile, "profile", "sensor", "profile to use from --profile-file")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")
	cmd.Flags().BoolVar(&opts.async, "async", false, "consume samples on a separate goroutine")

	return cmd
}

// resolveQoS picks the profile from the file when one is given, otherwise
// the environment configuration.
func resolveQoS(opts sensorOptions, cfg dds.Config) (dds.QoS, error) {
	if opts.profileFile == "" {
		qos := cfg.QoS()
		return qos, qos.Validate()
	}

	profiles, err := qosprofile.LoadFile(opts.profileFile)
	if err != nil {
		return dds.QoS{}, err
	}
	return profiles.Get(opts.profile)
}

// runSensor publishes opts.samples readings and returns how many the reader
// received.
func runSensor(ctx context.Context, opts sensorOptions, cfg dds.Config, srvCfg server.Config, log *slog.Logger, out io.Writer) (int64, error) {
	qos, err := resolveQoS(opts, cfg)
	if err != nil {
		return 0, err
	}

	participant := dds.NewDomainParticipant(cfg.DomainID, dds.WithParticipantLogger(log))
	defer participant.Close()

	topic, err := participant.CreateTopic(sensorTopic, sensorTypeName, qos)
	if err != nil {
		return 0, err
	}
	pub, err := participant.CreatePublisher()
	if err != nil {
		return 0, err
	}
	sub, err := participant.CreateSubscriber()
	if err != nil {
		return 0, err
	}
	writer, err := pub.CreateDataWriter(topic)
	if err != nil {
		return 0, err
	}
	reader, err := sub.CreateDataReader(topic)
	if err != nil {
		return 0, err
	}

	out = &syncWriter{w: out}

	var received atomic.Int64
	drain := func() {
		for {
			data, info, ok := dds.TakeAs[*SensorData](reader)
			if !ok {
				return
			}
			if !info.ValidData {
				continue
			}
			fmt.Fprintf(out, "Received: %s\n", data)
			received.Add(1)
		}
	}

	var asyncListener *dds.AsyncListener
	if opts.async {
		asyncListener = dds.NewAsyncListener(drain, dds.WithAsyncListenerLogger(log))
		defer asyncListener.Close()
		reader.SetListener(asyncListener)
	} else {
		reader.SetListener(dds.ListenerFunc(drain))
	}

	participant.MatchWriterReader(writer, reader)

	log.Info("publishing sensor data",
		logger.Topic(sensorTopic),
		logger.Count("samples", opts.samples),
		logger.History(qos.History),
		logger.Depth(qos.Depth))

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	if srvCfg.Enabled() {
		srv, err := server.NewFromConfig(srvCfg, server.WithLogger(log))
		if err != nil {
			return 0, err
		}
		g.Go(srv.Run(runCtx, adminHandler(participant, writer, log)))
	}

	publishing := async.Exec(runCtx, opts, func(ctx context.Context, opts sensorOptions) error {
		return publish(ctx, writer, opts, out)
	})
	g.Go(func() error {
		defer cancel()
		return publishing.Await()
	})

	if err := g.Wait(); err != nil && !isStop(err) {
		return received.Load(), err
	}

	if asyncListener != nil {
		// Close runs one last drain if a notification is still pending.
		_ = asyncListener.Close()
	}

	fmt.Fprintf(out, "\nReceived %d samples\n", received.Load())
	log.Info("sensor demo complete",
		logger.Count("published", int(writer.Stats().SamplesWritten)),
		logger.Count("received", int(received.Load())))
	return received.Load(), nil
}

// adminHandler serves metrics and health probes on the metrics address.
func adminHandler(p *dds.DomainParticipant, w *dds.DataWriter, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metrics.Handler(p))
	mux.Handle("GET /health/live", health.Liveness())
	mux.Handle("GET /health/ready", health.Readiness(log,
		health.ParticipantOpen(p),
		health.WriterAlive(w),
	))
	return mux
}

// isStop reports whether err only signals that the run was interrupted.
func isStop(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func publish(ctx context.Context, w *dds.DataWriter, opts sensorOptions, out io.Writer) error {
	ticker := time.NewTicker(max(opts.interval, time.Millisecond))
	defer ticker.Stop()

	for i := 1; i <= opts.samples; i++ {
		fmt.Fprintf(out, "Publishing sample %d...\n", i)
		if err := w.Write(reading(i)); err != nil {
			return fmt.Errorf("write sample %d: %w", i, err)
		}

		if i == opts.samples || opts.interval <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// syncWriter serializes output from the publishing and listener goroutines.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
