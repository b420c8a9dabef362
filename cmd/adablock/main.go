// Command adablock compiles and runs, or proves, Ada blocks from the command
// line and serves them to MCP clients.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonwraymond/adablock/block"
	"github.com/jonwraymond/adablock/config"
)

var version = "dev"

// errBlockFailed is returned when the toolchain rejected a block. Its
// diagnostics have already been printed.
var errBlockFailed = errors.New("block failed")

// app holds the global flags and the state built from them.
type app struct {
	configPath string
	verbose    bool

	settings *config.Settings
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "adablock",
		Short: "Compile and run, or prove, Ada blocks",
		Long: `adablock writes an Ada block to a scratch directory, compiles it with
gnatmake and runs the binary, or generates a project file and proves it with
gnatprove. Program output, verifier output, and diagnostics are printed as-is.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultFile, "Settings file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newRunCmd(a),
		newServeCmd(a),
		newSessionCmd(a),
		newToolsCmd(a),
	)
	return root
}

// setup loads settings and builds the logger.
func (a *app) setup(*cobra.Command, []string) error {
	settings, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.settings = settings

	zc := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(settings.Logging.Level); err == nil {
		zc.Level = lvl
	}
	if a.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

// executor builds a block executor from the loaded settings.
func (a *app) executor() (*block.Executor, error) {
	cfg := a.settings.BlockConfig()
	cfg.Logger = newZapLogger(a.logger)
	return block.New(cfg)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errBlockFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
