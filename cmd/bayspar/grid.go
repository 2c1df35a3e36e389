package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	bayspar "github.com/flywave/go-bayspar"
)

var (
	grTempType string
	grOutput   string
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Export the calibration gridcell footprints as GeoJSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		tt, err := bayspar.ParseTempType(grTempType)
		if err != nil {
			return err
		}
		eng, log, err := newEngine()
		if err != nil {
			return err
		}
		defer log.Sync()

		d, err := eng.Draws(tt)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(bayspar.GridFeatureCollection(d.GridLocs()), "", "  ")
		if err != nil {
			return err
		}
		if grOutput == "" || grOutput == "-" {
			_, err = os.Stdout.Write(append(data, '\n'))
			return err
		}
		return os.WriteFile(grOutput, data, 0o644)
	},
}

func init() {
	f := gridCmd.Flags()
	f.StringVar(&grTempType, "temp-type", "sst", "calibration: sst or subt")
	f.StringVarP(&grOutput, "output", "o", "", "output GeoJSON file (default stdout)")
	rootCmd.AddCommand(gridCmd)
}
