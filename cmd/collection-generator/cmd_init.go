package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"collection-generator/internal/config"
)

var forceInit bool

// initCmd writes a configuration file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the current settings",
	Long: `Writes the effective configuration (defaults, plus --prefix and
--output-file when given) to --config, or to ` + config.DefaultFile + `.
An existing file is kept unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultFile
	}

	if !forceInit {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}

	c := cfg
	if c == nil {
		c = config.Default()
	}

	if err := config.WriteFile(c, path); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("wrote config", zap.String("file", path))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)

	return nil
}
