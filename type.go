// Package bayspar calibrates the TEX86 proxy against sea temperature with
// spatially-varying Bayesian regression draws.
package bayspar

import (
	"errors"
	"fmt"
)

// TempType selects which calibration a prediction uses.
type TempType int

const (
	// SST is the sea-surface temperature calibration.
	SST TempType = iota
	// SubT is the sub-surface (0-200 m) temperature calibration.
	SubT
)

func (t TempType) String() string {
	switch t {
	case SST:
		return "sst"
	case SubT:
		return "subt"
	}
	return fmt.Sprintf("TempType(%d)", int(t))
}

func (t TempType) valid() bool {
	return t == SST || t == SubT
}

// ParseTempType converts "sst" or "subt" to a TempType.
func ParseTempType(s string) (TempType, error) {
	switch s {
	case "sst", "SST":
		return SST, nil
	case "subt", "subT", "SUBT":
		return SubT, nil
	}
	return 0, &UnknownTempTypeError{Name: s}
}

var (
	// ErrNoGridcell means no calibration gridcell lies within the
	// half-grid tolerance of the query point.
	ErrNoGridcell = errors.New("bayspar: no gridcell within tolerance of location")

	// ErrAmbiguousGridcell means more than one gridcell matched; draw
	// rows of distinct cells are not interchangeable, so the caller has
	// to pick a location that resolves uniquely.
	ErrAmbiguousGridcell = errors.New("bayspar: multiple gridcells within tolerance of location")

	// ErrEmptyField means an observation field holds no values.
	ErrEmptyField = errors.New("bayspar: observation field is empty")
)

// BadLatLonError reports a latitude outside [-90, 90] or a longitude
// outside (-180, 180]. Coordinates are never clamped.
type BadLatLonError struct {
	Lat, Lon float64
}

func (e *BadLatLonError) Error() string {
	return fmt.Sprintf("bayspar: latlon (%g, %g) outside [-90, 90] x (-180, 180]", e.Lat, e.Lon)
}

// EnsembleSizeError reports a requested ensemble at least as large as the
// number of available posterior draws.
type EnsembleSizeError struct {
	Available int
	Requested int
}

func (e *EnsembleSizeError) Error() string {
	return fmt.Sprintf("bayspar: requested ensemble of %d but only %d draws available", e.Requested, e.Available)
}

// NoAnalogError reports an analog search that matched no regions.
type NoAnalogError struct {
	Mean      float64
	Tolerance float64
}

func (e *NoAnalogError) Error() string {
	return fmt.Sprintf("bayspar: no analogs found for mean %g with tolerance %g; check the series or widen the tolerance", e.Mean, e.Tolerance)
}

// UnknownTempTypeError reports a temperature type other than SST or SubT.
type UnknownTempTypeError struct {
	TempType TempType
	Name     string
}

func (e *UnknownTempTypeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("bayspar: unknown temperature type %q", e.Name)
	}
	return fmt.Sprintf("bayspar: unknown temperature type %v", e.TempType)
}
