package main

import (
	"errors"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	bayspar "github.com/flywave/go-bayspar"
)

var (
	stInput     string
	stOutput    string
	stLat       float64
	stLon       float64
	stPriorStd  float64
	stPriorMean float64
	stTempType  string
	stNEns      int
	stAnalog    bool
	stTolerance float64
)

var predictSeaTempCmd = &cobra.Command{
	Use:   "predict-seatemp",
	Short: "Predict sea temperature from a TEX86 series",
	RunE: func(cmd *cobra.Command, args []string) error {
		tt, err := bayspar.ParseTempType(stTempType)
		if err != nil {
			return err
		}
		tex, err := readSeries(stInput)
		if err != nil {
			return err
		}
		eng, log, err := newEngine()
		if err != nil {
			return err
		}
		defer log.Sync()

		var pred *bayspar.Prediction
		if stAnalog {
			if math.IsNaN(stPriorMean) {
				return errors.New("--prior-mean is required with --analog")
			}
			pred, err = eng.PredictSeaTempAnalog(tex, stPriorStd, tt, stTolerance, stPriorMean, stNEns)
		} else {
			var priorMean *float64
			if !math.IsNaN(stPriorMean) {
				priorMean = &stPriorMean
			}
			pred, err = eng.PredictSeaTemp(tex, stLat, stLon, stPriorStd, tt, priorMean, stNEns)
		}
		if err != nil {
			return err
		}

		if pred.PriorMean != nil {
			log.Info("prediction complete",
				zap.Int("timesteps", len(tex)),
				zap.Float64("prior_mean", *pred.PriorMean))
		}
		q := []float64{5, 50, 95}
		return writePercentiles(stOutput, pred.Percentile(q...), q)
	},
}

func init() {
	f := predictSeaTempCmd.Flags()
	f.StringVarP(&stInput, "input", "i", "", "CSV file with the TEX86 series")
	f.StringVarP(&stOutput, "output", "o", "", "output CSV file (default stdout)")
	f.Float64Var(&stLat, "lat", 0, "site latitude")
	f.Float64Var(&stLon, "lon", 0, "site longitude")
	f.Float64Var(&stPriorStd, "prior-std", 10, "prior standard deviation in degrees C")
	f.Float64Var(&stPriorMean, "prior-mean", math.NaN(), "prior mean in degrees C; unset estimates it from nearby climatology (required with --analog)")
	f.StringVar(&stTempType, "temp-type", "sst", "calibration: sst or subt")
	f.IntVar(&stNEns, "nens", 5000, "ensemble size")
	f.BoolVar(&stAnalog, "analog", false, "use the analog method instead of a site location")
	f.Float64Var(&stTolerance, "tolerance", 0.05, "analog search tolerance in TEX86 units")
	predictSeaTempCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(predictSeaTempCmd)
}
