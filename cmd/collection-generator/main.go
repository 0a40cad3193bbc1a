// Package main provides the CLI entrypoint for collection-generator.
//
// collection-generator reads Go packages, finds type declarations annotated
// with +collection markers and writes a named wrapper collection type for
// each of them into a generated file next to the sources.
//
// Typical use is through go generate:
//
//	//go:generate go run collection-generator/cmd/collection-generator gen .
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"collection-generator/internal/config"
	"collection-generator/internal/runner"
)

var (
	// Global flags
	configPath string
	verbose    bool
	outputFile string
	prefix     string

	// Loaded configuration, flags applied.
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "collection-generator",
	Short: "Generate named collection types for annotated Go types",
	Long: `collection-generator turns annotated item types into companion collection types.

Annotate a type with marker comments:

	// +collection:name=Fruits
	// +collection:derive=Equal, Clone, String
	type Fruit struct { ... }

and run "collection-generator gen" in the package directory. The generated
file holds the Fruits type with constructors, iteration and the derived
capabilities.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error

		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = loadConfig(cmd)

		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Config file (default: "+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output-file", "o", "", "Generated file name (overrides config)")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "", "Marker prefix (overrides config)")

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides. An explicit
// --config must exist, except for init which creates it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, mustExist := configPath, cmd.Name() != initCmd.Name()
	if path == "" {
		path, mustExist = config.DefaultFile, false
	}

	c, err := config.LoadFile(path, mustExist)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output-file") {
		c.OutputFile = outputFile
	}

	if flags.Changed("prefix") {
		c.MarkerPrefix = prefix
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// newRunner builds a runner for the current working directory.
func newRunner() *runner.Runner {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg == nil {
		cfg = config.Default()
	}

	return runner.New(runner.Options{Config: cfg, Logger: logger})
}
