package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/popd/infrastructure/logger"
	"github.com/pkg/errors"
)

const (
	defaultConfigFilename = "popd.conf"
	defaultDataDirname    = "data"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "popd.log"
	defaultErrLogFilename = "popd_err.log"
	popStoreDirname       = "popstore"
	defaultBanThreshold   = 100
	// DefaultSubmitWorkers is the default number of endorsements checked concurrently in a batch
	DefaultSubmitWorkers = 8
)

var (
	// DefaultHomeDir is the default home directory for popd.
	DefaultHomeDir = btcutil.AppDataDir("popd", false)

	defaultConfigFile = filepath.Join(DefaultHomeDir, defaultConfigFilename)
	defaultDataDir    = filepath.Join(DefaultHomeDir, defaultDataDirname)
	defaultLogDir     = filepath.Join(DefaultHomeDir, defaultLogDirname)
)

// Flags defines the configuration options for popd.
//
// See LoadConfig for details on the configuration load process.
type Flags struct {
	ConfigFile     string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir        string `short:"b" long:"datadir" description:"Directory to store data"`
	LogDir         string `long:"logdir" description:"Directory to log output."`
	DebugLevel     string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	DisableBanning bool   `long:"nobanning" description:"Disable banning of misbehaving peers"`
	BanThreshold   uint32 `long:"banthreshold" description:"Maximum allowed ban score before disconnecting and banning misbehaving peers."`
	ScoreCacheSize int    `long:"scorecachesize" description:"Number of PopScores to keep in memory (0 uses the network default)"`
	SubmitWorkers  int    `long:"submitworkers" description:"Number of endorsements checked concurrently when submitting a batch"`
	NetworkFlags
}

// Config defines the configuration options for popd.
//
// See LoadConfig for details on the configuration load process.
type Config struct {
	*Flags
	LogFile    string
	ErrLogFile string
}

// PopStoreDir returns the directory of the PoP snapshot store
func (cfg *Config) PopStoreDir() string {
	return filepath.Join(cfg.DataDir, popStoreDirname)
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// DefaultFlags returns the flags popd uses when nothing is configured
func DefaultFlags() *Flags {
	return &Flags{
		ConfigFile:    defaultConfigFile,
		DataDir:       defaultDataDir,
		LogDir:        defaultLogDir,
		DebugLevel:    defaultLogLevel,
		BanThreshold:  defaultBanThreshold,
		SubmitWorkers: DefaultSubmitWorkers,
	}
}

// LoadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// Command line options always take precedence.
func LoadConfig(args []string) (*Config, []string, error) {
	cfgFlags := DefaultFlags()

	// Pre-parse the command line options to see if an alternative config
	// file was specified.
	preCfg := *cfgFlags
	preParser := flags.NewParser(&preCfg, flags.HelpFlag)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			return nil, nil, err
		}
	}

	parser := flags.NewParser(cfgFlags, flags.Default)
	if preCfg.ConfigFile != "" {
		configFile := cleanAndExpandPath(preCfg.ConfigFile)
		err := flags.NewIniParser(parser).ParseFile(configFile)
		if err != nil {
			var pathErr *os.PathError
			if ok := errors.As(err, &pathErr); !ok || preCfg.ConfigFile != defaultConfigFile {
				return nil, nil, errors.Wrapf(err, "error parsing config file %s", configFile)
			}
		}
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}

	err = cfgFlags.ResolveNetwork(parser)
	if err != nil {
		return nil, nil, err
	}

	cfg := &Config{Flags: cfgFlags}

	// Append the network type to the data and log directories so they are
	// "namespaced" per network.
	cfg.DataDir = filepath.Join(cleanAndExpandPath(cfg.DataDir), cfg.NetParams().Name)
	cfg.LogDir = filepath.Join(cleanAndExpandPath(cfg.LogDir), cfg.NetParams().Name)
	cfg.LogFile = filepath.Join(cfg.LogDir, defaultLogFilename)
	cfg.ErrLogFile = filepath.Join(cfg.LogDir, defaultErrLogFilename)

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", logger.SupportedSubsystems())
		os.Exit(0)
	}

	err = logger.ParseAndSetDebugLevels(cfg.DebugLevel)
	if err != nil {
		return nil, nil, err
	}

	if cfg.BanThreshold == 0 {
		return nil, nil, errors.New("banthreshold must be positive")
	}
	if cfg.SubmitWorkers <= 0 {
		return nil, nil, errors.Errorf("submitworkers must be positive, got %d", cfg.SubmitWorkers)
	}
	if cfg.ScoreCacheSize < 0 {
		return nil, nil, errors.Errorf("scorecachesize must not be negative, got %d", cfg.ScoreCacheSize)
	}
	if cfg.ScoreCacheSize > 0 {
		cfg.ActiveNetParams.ScoreCacheSize = cfg.ScoreCacheSize
	}

	return cfg, remainingArgs, nil
}
