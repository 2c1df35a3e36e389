package main

import (
	"github.com/spf13/cobra"

	bayspar "github.com/flywave/go-bayspar"
)

var (
	efInput  string
	efOutput string
	efPixel  float64

	ifInput  string
	ifOutput string
)

var exportFieldCmd = &cobra.Command{
	Use:   "export-field",
	Short: "Convert a climatology resource pack to a GeoTIFF raster",
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := bayspar.ReadSeaTempObsFile(efInput)
		if err != nil {
			return err
		}
		return bayspar.WriteSeaTempField(efOutput, o, [2]float64{efPixel, efPixel})
	},
}

var importFieldCmd = &cobra.Command{
	Use:   "import-field",
	Short: "Convert a GeoTIFF climatology raster to a resource pack",
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := bayspar.ReadSeaTempField(ifInput)
		if err != nil {
			return err
		}
		return bayspar.WriteSeaTempObsFile(ifOutput, o)
	},
}

func init() {
	f := exportFieldCmd.Flags()
	f.StringVarP(&efInput, "input", "i", "", "climatology pack (seatemp_<temptype>.bin.gz)")
	f.StringVarP(&efOutput, "output", "o", "", "output GeoTIFF file")
	f.Float64Var(&efPixel, "pixel-size", 1, "pixel size in degrees")
	exportFieldCmd.MarkFlagRequired("input")
	exportFieldCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(exportFieldCmd)

	g := importFieldCmd.Flags()
	g.StringVarP(&ifInput, "input", "i", "", "input GeoTIFF file")
	g.StringVarP(&ifOutput, "output", "o", "", "output climatology pack")
	importFieldCmd.MarkFlagRequired("input")
	importFieldCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(importFieldCmd)
}
