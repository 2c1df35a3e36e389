package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// readSeries reads one value per CSV row, taking the last column so
// files with a leading age column also work.
func readSeries(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := make([]float64, 0, len(records))
	for i, rec := range records {
		if len(rec) == 0 {
			continue
		}
		v, err := strconv.ParseFloat(rec[len(rec)-1], 64)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		series = append(series, v)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no values in %s", path)
	}
	return series, nil
}

// writePercentiles writes one CSV row per time step.
func writePercentiles(path string, perc *mat.Dense, q []float64) error {
	out := os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	header := make([]string, len(q))
	for j, qq := range q {
		header[j] = fmt.Sprintf("p%g", qq)
	}
	if err := w.Write(header); err != nil {
		return err
	}
	rows, cols := perc.Dims()
	rec := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rec[j] = strconv.FormatFloat(perc.At(i, j), 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
