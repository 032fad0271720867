// Command ticketserver runs the connectionless UDP ticket reservation
// server. See SPEC_FULL.md for the full protocol and ambient-stack
// description; this file only wires the pieces together.
package main

import (
	"context"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"ticketserver/catalog"
	"ticketserver/config"
	"ticketserver/cookie"
	"ticketserver/diagnostics"
	"ticketserver/metrics"
	"ticketserver/reservation"
	"ticketserver/retry"
	"ticketserver/server"
	"ticketserver/signalctx"
	"ticketserver/ticket"
	"ticketserver/udp"
)

// referenceSeed seeds the cookie generator's pseudorandom source so
// runs against identical request sequences reproduce identical cookies
// (spec.md §4.6).
const referenceSeed = 2137

var logger = logrus.WithField("component", "cmd")

func main() {
	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		logrus.WithError(err).Error("invalid arguments")
		os.Exit(1)
	}
	if err := config.ApplyAmbient(cfg); err != nil {
		logrus.WithError(err).Error("failed to apply ambient configuration")
		os.Exit(1)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	if err := run(cfg); err != nil {
		logger.WithError(err).Fatal("ticketserver exited with error")
	}
}

func run(cfg *config.Config) error {
	cat, err := catalog.Load(cfg.EventsFile)
	if err != nil {
		return errors.Errorf("load events file %q: %w", cfg.EventsFile, err)
	}
	logger.WithField("event_count", len(cat.Enumerate())).Info("catalog loaded")

	if cfg.CatalogDump != "" {
		if err := diagnostics.DumpCatalog(cfg.CatalogDump, cat); err != nil {
			logger.WithError(err).Warn("failed to write catalog diagnostics dump")
		}
	}

	cookies := cookie.NewGenerator(rand.New(rand.NewSource(referenceSeed)))
	store := reservation.New(int64(cfg.Timeout), cat, cookies)
	issuer := ticket.NewIssuer()

	m, registry := metrics.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listenCtx, listenCancel := context.WithTimeout(ctx, 10*time.Second)
	conn, err := bindListener(listenCtx, cfg.Port)
	listenCancel()
	if err != nil {
		return errors.Errorf("bind UDP listener: %w", err)
	}
	defer conn.Close()
	logger.WithField("port", cfg.Port).Info("listening")

	disp := server.New(conn, cat, store, issuer, m, nil)

	sigDone := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		close(sigDone)
	}()

	metricsDone := make(chan struct{})
	close(metricsDone)
	if cfg.MetricsAddr != "" {
		metricsServer := metrics.NewServer(cfg.MetricsAddr, registry)
		metricsDone = make(chan struct{})
		go func() {
			defer close(metricsDone)
			if err := metricsServer.Run(ctx); err != nil {
				logger.WithError(err).Error("metrics server stopped with error")
			}
		}()
		logger.WithField("addr", cfg.MetricsAddr).Info("metrics listener enabled")
	}

	shutdown := signalctx.Or(sigDone, ctx.Done())

	dispatchErr := make(chan error, 1)
	go func() {
		dispatchErr <- disp.Run()
	}()

	select {
	case <-shutdown:
		logger.Info("shutdown signal received")
		cancel()
		conn.Close()
		<-dispatchErr
	case err := <-dispatchErr:
		if err != nil {
			return errors.Errorf("dispatcher loop: %w", err)
		}
	}

	<-metricsDone
	return nil
}

func bindListener(ctx context.Context, port uint16) (*net.UDPConn, error) {
	var conn *net.UDPConn
	err := retry.Bind(ctx, 10*time.Second, func() error {
		c, err := udp.ListenUDP(port)
		if err != nil {
			return err
		}
		conn = c
		return nil
	})
	return conn, err
}
