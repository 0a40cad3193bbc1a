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
)

var (
	dryRun    bool
	watchMode bool
)

// genCmd generates collection files
var genCmd = &cobra.Command{
	Use:   "gen [patterns...]",
	Short: "Generate collection types for marked items",
	Long: `Loads the packages matching the patterns (default ".") and writes one
generated file per package that has marker items. Obsolete generated files
are removed. With --watch, regenerates whenever a source file changes.`,
	RunE: runGen,
}

func init() {
	genCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print generated code instead of writing it")
	genCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Regenerate on source changes")
	genCmd.MarkFlagsMutuallyExclusive("dry-run", "watch")
}

func runGen(cmd *cobra.Command, args []string) error {
	r := newRunner()

	if watchMode {
		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := r.Watch(ctx, args...)
		if errors.Is(err, context.Canceled) {
			return nil
		}

		return err
	}

	// Invalid packages are reported in err after the valid ones are done.
	res, err := r.Generate(commandContext(cmd), dryRun, args...)
	if res == nil {
		return err
	}

	out := cmd.OutOrStdout()

	if dryRun {
		for _, f := range res.Files {
			fmt.Fprintf(out, "// %s\n%s\n", f.Path, f.Content)
		}

		return err
	}

	logger.Debug("generation finished",
		zap.Int("files", len(res.Files)),
		zap.Int("written", len(res.Written)),
		zap.Int("removed", len(res.Removed)))

	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
