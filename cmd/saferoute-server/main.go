package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/safesphere/saferoute/pkg/api"
	"github.com/safesphere/saferoute/pkg/config"
	"github.com/safesphere/saferoute/pkg/engine"
	"github.com/safesphere/saferoute/pkg/feed"
	"github.com/safesphere/saferoute/pkg/graph"
	"github.com/safesphere/saferoute/pkg/logging"
	"github.com/safesphere/saferoute/pkg/metrics"
	"github.com/safesphere/saferoute/pkg/pubsub"
	"github.com/safesphere/saferoute/pkg/server"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	snapshotPath := flag.String("snapshot", "", "Risk graph snapshot to load at startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.Logging.Level))
	logger.Info("saferoute starting", logging.String("version", version))

	reg := metrics.NewRegistry()
	events := pubsub.NewPubSub()
	defer events.Shutdown()

	eng := engine.New(engine.Config{
		CostMode:            graph.ParseCostMode(cfg.Engine.CostMode),
		RiskPenaltyFactor:   cfg.Engine.RiskPenaltyFactor,
		InterpolationK:      cfg.Engine.InterpolationK,
		MaxIterations:       cfg.Engine.MaxIterations,
		QueryDeadline:       cfg.Engine.QueryDeadline,
		SampleStride:        cfg.Engine.SampleStride,
		ReferenceDistanceKm: cfg.Engine.ReferenceDistanceKm,
		ZoneTTL:             cfg.Engine.ZoneTTL,
	}, logger, reg, events)

	if *snapshotPath != "" {
		data, err := os.ReadFile(*snapshotPath)
		if err != nil {
			logger.Error("snapshot read failed", logging.Error(err))
			os.Exit(1)
		}
		stats, err := eng.ImportSnapshotJSON(data)
		if err != nil {
			logger.Error("snapshot load failed", logging.Error(err))
			os.Exit(1)
		}
		logger.Info("startup snapshot loaded",
			logging.Int("nodes", stats.NodeCount),
			logging.Int("edges", stats.EdgeCount))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go eng.RunExpirySweeper(ctx, cfg.Engine.ExpirySweepInterval)

	if cfg.Feed.Enabled {
		sub := feed.NewSubscriber(cfg.Feed.URL, cfg.Feed.Topic, eng, logger, reg)
		if err := sub.Start(); err != nil {
			logger.Error("incident feed failed to start", logging.Error(err))
			os.Exit(1)
		}
		defer sub.Stop()
	}

	apiServer := api.NewServer(eng, logger, reg, version)
	gs := server.NewGracefulServer(cfg.Server.ListenAddr, apiServer.Handler(), server.Options{
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, logger)

	if err := gs.Start(); err != nil {
		logger.Error("server failed", logging.Error(err))
		os.Exit(1)
	}
}
