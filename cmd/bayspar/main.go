package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	bayspar "github.com/flywave/go-bayspar"
)

var (
	flagDataDir string
	flagSeed    uint64
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "bayspar",
	Short: "TEX86 / sea temperature calibration with spatially-varying Bayesian regression",
	Long: `bayspar predicts sea temperature from TEX86 series (or TEX86 from sea
temperature) using pre-fitted spatially-varying regression draws. Input
series are CSV, one value per row (the last column of each row is used);
output is one CSV row per time step with the 5th, 50th and 95th
percentiles of the predictive ensemble.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "data", "directory holding the calibration resource packs")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "random seed; 0 seeds from the clock")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

func newLogger() (*zap.Logger, error) {
	if flagVerbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newEngine() (*bayspar.Engine, *zap.Logger, error) {
	log, err := newLogger()
	if err != nil {
		return nil, nil, err
	}
	eng, err := bayspar.NewEngine(bayspar.Options{
		DataDir: flagDataDir,
		Logger:  log,
		Seed:    flagSeed,
	})
	if err != nil {
		return nil, nil, err
	}
	return eng, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
