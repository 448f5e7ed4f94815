package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"nftmarket/config"
	"nftmarket/core"
	"nftmarket/core/genesis"
	"nftmarket/observability/logging"
	"nftmarket/rpc"
	"nftmarket/storage"
)

const genesisPathEnv = "NFTMARKET_GENESIS"

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	genesisFlag := flag.String("genesis", "", "Path to a genesis spec JSON file (overrides NFTMARKET_GENESIS and config GenesisFile)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logger := logging.Setup("marketd", cfg.Environment, logging.ParseLevel(cfg.LogLevel))

	var db storage.Database
	if cfg.MemoryDatabase {
		db = storage.NewMemDB()
	} else {
		ldb, err := storage.NewLevelDB(filepath.Join(cfg.DataDir, "state"))
		if err != nil {
			logger.Error("failed to open database", "err", err)
			os.Exit(1)
		}
		db = ldb
	}
	defer db.Close()

	genesisPath := resolveGenesisPath(*genesisFlag, cfg.GenesisFile, os.LookupEnv)
	var spec *genesis.GenesisSpec
	if genesisPath != "" {
		spec, err = genesis.LoadGenesisSpec(genesisPath)
		if err != nil {
			logger.Error("failed to load genesis spec", "path", genesisPath, "err", err)
			os.Exit(1)
		}
	}

	node, err := core.NewNode(db, spec, core.Options{
		Logger:        logger,
		SnapshotEvery: cfg.SnapshotEvery,
		PauseMarket:   cfg.PauseMarket,
	})
	if err != nil {
		logger.Error("failed to start node", "err", err)
		os.Exit(1)
	}

	server := rpc.NewServer(node, logger)
	server.SetRateLimit(cfg.RPCRateLimit, cfg.RPCRateBurst)
	if err := server.Start(cfg.RPCAddress); err != nil {
		logger.Error("rpc server stopped", "err", err)
		os.Exit(1)
	}
}

// resolveGenesisPath prefers the CLI flag, then the environment, then the
// config file. An empty result means the node must restore stored state.
func resolveGenesisPath(flagValue, configValue string, lookupEnv func(string) (string, bool)) string {
	if trimmed := strings.TrimSpace(flagValue); trimmed != "" {
		return trimmed
	}
	if envValue, ok := lookupEnv(genesisPathEnv); ok {
		if trimmed := strings.TrimSpace(envValue); trimmed != "" {
			return trimmed
		}
	}
	return strings.TrimSpace(configValue)
}
