// Package config defines and loads masternoded's configuration options,
// following the same jessevdk/go-flags command-line-plus-INI-file idiom
// btcd's own config.go uses.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "masternoded.conf"
	defaultLogLevel       = "info"
	defaultSnapshotFile   = "masternodes.json"
)

var (
	masternodedHomeDir = btcutil.AppDataDir("masternoded", false)
	defaultConfigFile  = filepath.Join(masternodedHomeDir, defaultConfigFilename)
	defaultDataDir     = filepath.Join(masternodedHomeDir, "data")
)

// Config defines the configuration options for masternoded.
//
// See Load for details on the configuration load process.
type Config struct {
	ConfigFile   string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir      string `short:"b" long:"datadir" description:"Directory to store masternode registry snapshots"`
	SnapshotFile string `long:"snapshotfile" description:"File name of the registry snapshot within DataDir"`
	RegTest      bool   `long:"regtest" description:"Use the regression test network parameters"`
	OperatorWIF  string `long:"operatorwif" description:"WIF-encoded operator secret for the locally-run masternode, if any"`
	Listen       string `long:"listen" description:"Service address to advertise for the locally-run masternode"`
	DebugLevel   string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
}

// defaultConfig returns a Config populated with default values, mirroring
// the pattern every btcd-family config.go uses before flag parsing
// overrides them.
func defaultConfig() Config {
	return Config{
		ConfigFile:   defaultConfigFile,
		DataDir:      defaultDataDir,
		SnapshotFile: defaultSnapshotFile,
		DebugLevel:   defaultLogLevel,
	}
}

// Load parses command-line flags, then an optional config file, into a
// Config, then the command-line flags again, so flags take precedence over
// the file. All parsers use flags.Default, mirroring the two-pass parse
// (pre-parse for -C, full parse after) common in the btcd-family config
// loaders.
func Load(args []string) (*Config, error) {
	preCfg := defaultConfig()
	preParser := flags.NewParser(&preCfg, flags.Default)
	if _, err := preParser.ParseArgs(args); err != nil {
		if ferr, ok := err.(*flags.Error); ok && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	cfg := preCfg
	if cfg.ConfigFile != "" {
		if err := flags.NewIniParser(flags.NewParser(&cfg, flags.Default)).ParseFile(cfg.ConfigFile); err != nil {
			if _, ok := err.(*os.PathError); !ok {
				return nil, fmt.Errorf("config: failed to parse %s: %w", cfg.ConfigFile, err)
			}
		}
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("config: cannot create data directory: %w", err)
	}

	return &cfg, nil
}

// SnapshotPath returns the full path to the registry snapshot file.
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, c.SnapshotFile)
}
