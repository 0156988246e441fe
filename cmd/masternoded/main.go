// Command masternoded runs the masternode lifecycle and announcement core
// as a standalone daemon for local development and testing. Wiring of real
// Chain/Network/Signer/Spork collaborators is left to the embedding node;
// this binary wires none of them. It loads the registry snapshot, logs a
// summary and saves the snapshot again, so the registry persistence and
// logging paths can be run end to end.
package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btclog"

	"github.com/MultiSysNetwork/MultiSys/chaincfg"
	"github.com/MultiSysNetwork/MultiSys/internal/config"
	"github.com/MultiSysNetwork/MultiSys/internal/mnlog"
	"github.com/MultiSysNetwork/MultiSys/internal/store"
	"github.com/MultiSysNetwork/MultiSys/masternode"
)

type stdoutWriter struct{}

func (stdoutWriter) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	backend := btclog.NewBackend(stdoutWriter{})
	logger := backend.Logger("MNOD")
	level, ok := btclog.LevelFromString(cfg.DebugLevel)
	if !ok {
		level = btclog.LevelInfo
	}
	logger.SetLevel(level)
	mnlog.UseLogger(logger)

	params := chaincfg.MainNetParams
	if cfg.RegTest {
		params = chaincfg.RegTestParams
	}

	reg := masternode.NewRegistry()
	snapshot := store.New(cfg.SnapshotPath())
	if err := reg.Load(snapshot); err != nil && err != store.ErrNotExist {
		logger.Warnf("could not load registry snapshot: %v", err)
	}

	logger.Infof("masternoded starting, network %s, %d masternodes loaded, %d enabled",
		params.Name, len(reg.Records()), reg.CountEnabled())

	if err := reg.Save(snapshot); err != nil {
		logger.Warnf("could not save registry snapshot: %v", err)
	}

	return nil
}
