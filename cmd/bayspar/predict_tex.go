package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	bayspar "github.com/flywave/go-bayspar"
)

var (
	txInput     string
	txOutput    string
	txLat       float64
	txLon       float64
	txTempType  string
	txNEns      int
	txAnalog    bool
	txTolerance float64
	txFootprint string
)

var predictTexCmd = &cobra.Command{
	Use:   "predict-tex",
	Short: "Predict TEX86 from a sea temperature series",
	RunE: func(cmd *cobra.Command, args []string) error {
		tt, err := bayspar.ParseTempType(txTempType)
		if err != nil {
			return err
		}
		seatemp, err := readSeries(txInput)
		if err != nil {
			return err
		}
		eng, log, err := newEngine()
		if err != nil {
			return err
		}
		defer log.Sync()

		var pred *bayspar.Prediction
		if txAnalog {
			pred, err = eng.PredictTexAnalog(seatemp, tt, txTolerance, txNEns)
		} else {
			pred, err = eng.PredictTex(seatemp, txLat, txLon, tt, txNEns)
		}
		if err != nil {
			return err
		}

		if txFootprint != "" {
			data, err := json.MarshalIndent(pred.FeatureCollection(), "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(txFootprint, data, 0o644); err != nil {
				return err
			}
		}

		q := []float64{5, 50, 95}
		return writePercentiles(txOutput, pred.Percentile(q...), q)
	},
}

func init() {
	f := predictTexCmd.Flags()
	f.StringVarP(&txInput, "input", "i", "", "CSV file with the sea temperature series")
	f.StringVarP(&txOutput, "output", "o", "", "output CSV file (default stdout)")
	f.Float64Var(&txLat, "lat", 0, "site latitude")
	f.Float64Var(&txLon, "lon", 0, "site longitude")
	f.StringVar(&txTempType, "temp-type", "sst", "calibration: sst or subt")
	f.IntVar(&txNEns, "nens", 5000, "ensemble size")
	f.BoolVar(&txAnalog, "analog", false, "use the analog method instead of a site location")
	f.Float64Var(&txTolerance, "tolerance", 5, "analog search tolerance in degrees C")
	f.StringVar(&txFootprint, "footprint", "", "write the gridcell/analog footprint as GeoJSON to this file")
	predictTexCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(predictTexCmd)
}
