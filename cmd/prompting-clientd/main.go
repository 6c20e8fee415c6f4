// Command prompting-clientd is the user-session mediation daemon for
// AppArmor prompting: it relays prompt notices from the system policy
// service to a UI process over a local RPC socket and propagates the
// UI's replies back. See config.Load for the options below; flags here
// only override what the config layer would otherwise supply.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/snapcore/prompting-client/config"
	"github.com/snapcore/prompting-client/logfilter"
	"github.com/snapcore/prompting-client/perrors"
	"github.com/snapcore/prompting-client/policy"
	"github.com/snapcore/prompting-client/rpcapi"
	"github.com/snapcore/prompting-client/worker"
)

type options struct {
	ConfigFile       string `long:"config" description:"path to an optional YAML config file"`
	NorthboundSocket string `long:"ui-socket" description:"override the UI-facing RPC socket path"`
}

// Parser builds the go-flags parser, split out from main so tests can
// drive argument parsing directly, the same shape the teacher's own
// command-line tools use.
func Parser() (*flags.Parser, *options) {
	var opts options
	return flags.NewParser(&opts, flags.Default), &opts
}

func main() {
	parser, opts := Parser()
	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		if err == perrors.NotEnabled {
			fmt.Fprintln(os.Stderr, "apparmor-prompting feature is not enabled")
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "prompting-clientd:", err)
		os.Exit(1)
	}
}

func run(opts *options) error {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}
	if opts.NorthboundSocket != "" {
		cfg.NorthboundSocket = opts.NorthboundSocket
	}

	filter := logfilter.New(cfg.LogFilter)
	base := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(os.Stderr),
		zapcore.DebugLevel, // the leveledCore wrapper enforces the real threshold
	)
	logger := zap.New(filter.Core(base))
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	socketPath := cfg.SouthboundSocket
	if socketPath == "" {
		socketPath = policy.SocketPath()
	}
	client := policy.New(socketPath)
	client.SetLogger(logger)

	if err := client.ExitIfNotEnabled(ctx); err != nil {
		return err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return &perrors.TransportError{Op: "resolve home directory", Err: err}
	}

	w := worker.New(client, homeDir, logger)
	if err := w.Start(ctx); err != nil {
		return err
	}

	srv, err := rpcapi.New(cfg.NorthboundSocket, w, client, filter, logger)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Close()
	})
	g.Go(srv.Serve)
	g.Go(func() error {
		<-gctx.Done()
		return w.Stop()
	})

	return g.Wait()
}
