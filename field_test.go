package bayspar

import (
	"path/filepath"
	"testing"

	vec2d "github.com/flywave/go3d/float64/vec2"

	"github.com/stretchr/testify/assert"
)

func TestSeaTempFieldRoundTrip(t *testing.T) {
	a := assert.New(t)

	// Integer locations with a 1-degree pixel land the read-back pixel
	// centers exactly on the original points. The cell at (2, 1) stays
	// empty, so the nodata skip is exercised too.
	want, err := NewSeaTempObs(
		[]float64{10, 30, 20},
		[]vec2d.T{{0, 1}, {1, 1}, {2, 0}},
	)
	a.NoError(err)

	path := filepath.Join(t.TempDir(), "seatemp.tif")
	a.NoError(WriteSeaTempField(path, want, [2]float64{1, 1}))

	got, err := ReadSeaTempField(path)
	a.NoError(err)
	a.Equal(3, got.NObs())

	// Reading scans row-major from the northern edge.
	a.Equal([]float64{10, 30, 20}, got.values)
	a.Equal([]vec2d.T{{0, 1}, {1, 1}, {2, 0}}, got.locs)
}

func TestWriteSeaTempFieldBadInput(t *testing.T) {
	a := assert.New(t)

	path := filepath.Join(t.TempDir(), "seatemp.tif")
	o := newTestSeaTempObs(t)

	a.ErrorIs(WriteSeaTempField(path, &SeaTempObs{}, [2]float64{1, 1}), ErrEmptyField)
	a.Error(WriteSeaTempField(path, o, [2]float64{0, 1}))
	a.Error(WriteSeaTempField(path, o, [2]float64{1, -1}))
}

func TestReadSeaTempFieldMissing(t *testing.T) {
	a := assert.New(t)

	_, err := ReadSeaTempField(filepath.Join(t.TempDir(), "nope.tif"))
	a.Error(err)
}
