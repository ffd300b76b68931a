package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/slang/api"
	"github.com/sarchlab/slang/config"
	"github.com/sarchlab/slang/core"
	"github.com/spf13/cobra"
)

var (
	logLevel     string
	archName     string
	degree       int
	maxSteps     uint64
	cacheEntries int
)

var rootCmd = &cobra.Command{
	Use:   "slang",
	Short: "Run and inspect S programs",
	Long: `slang loads S programs written as YAML documents. Programs can be
run directly, expanded to a lower degree, checked against an
architecture tier or stepped through in an interactive debugger.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseLogLevel(logLevel)
		if err != nil {
			return err
		}

		if cacheEntries <= 0 {
			return fmt.Errorf("--cache must be positive, got %d", cacheEntries)
		}

		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))

		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "warn",
		"Log level: debug, trace, info, warn or error")
	flags.StringVarP(&archName, "arch", "a", "IV",
		"Architecture tier the program runs on (I to IV)")
	flags.IntVarP(&degree, "degree", "d", 0,
		"Number of expansion rounds applied before running")
	flags.Uint64Var(&maxSteps, "max-steps", 0,
		"Abort runs after this many instructions (0 means no limit)")
	flags.IntVar(&cacheEntries, "cache", 128,
		"Number of expanded programs kept in memory")
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "trace":
		return core.LevelTrace, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return 0, fmt.Errorf("unknown log level %q", s)
}

// load reads a program file and builds a driver for it from the global
// flags.
func load(path string) (*core.Program, api.Driver, core.Registry, config.Architecture, error) {
	arch, err := config.ParseArchitecture(archName)
	if err != nil {
		return nil, nil, nil, 0, err
	}

	p, reg, err := core.LoadProgramFile(path)
	if err != nil {
		return nil, nil, nil, 0, err
	}

	driver := api.NewDriverBuilder().
		WithRegistry(reg).
		WithArchitecture(arch).
		WithCacheSize(cacheEntries).
		WithMaxSteps(maxSteps).
		Build()

	return p, driver, reg, arch, nil
}
