package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/khmm12/hostscan/internal/adapter/sink"
	"github.com/khmm12/hostscan/internal/common/logging"
	"github.com/khmm12/hostscan/internal/usecase"
)

type Scan struct {
	ScanFlags `embed:""`
	Output    Output `embed:"" prefix:"output."`
}

// Run logs to stderr so stdout carries only results.
func (s *Scan) Run() error {
	ctx := context.Background()
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logLevel, err := logging.ParseLevel(s.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to parse to log level: %w", err)
	}

	logger := logging.New(os.Stderr, logLevel)

	target, err := s.target()
	if err != nil {
		logger.ErrorContext(ctx, "Failed to determine target network", logging.Error(err))
		return err
	}

	env, err := newScanEnv(ctx, logger, &s.ScanFlags)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to set up scan", logging.Error(err))
		return err
	}

	defer func() { _ = env.Close() }()

	console := sink.NewConsole(os.Stdout, sink.Format(s.Output.Format))
	collector := sink.NewCollector()

	deps := env.deps
	if s.Output.Mode == "batch" {
		deps.Sink = collector
	} else {
		deps.Sink = console
		deps.Publisher = console
	}

	uc := usecase.NewScanSubnetUseCase(logger, deps, s.options())

	summary, err := uc.Execute(ctx, usecase.ScanSubnetCommand{
		Target:  target,
		Workers: s.Workers,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.WarnContext(ctx, "Scan interrupted")
		} else {
			logger.ErrorContext(ctx, "Scan failed", logging.Error(err))
		}

		return err
	}

	if s.Output.Mode == "batch" {
		if err := console.WriteHosts(collector.Hosts(sink.Order(s.Output.Sort))); err != nil {
			return err
		}

		return console.Publish(ctx, summary)
	}

	return nil
}

func (s *Scan) Validate() error {
	return errors.Join(s.validate()...)
}
