package bayspar

import (
	"errors"
	"image"
	"math"

	"github.com/flywave/go-cog"
	"github.com/flywave/go-geo"

	vec2d "github.com/flywave/go3d/float64/vec2"
)

const fieldNoData = float64(-9999)

var epsg4326 geo.Proj

func init() {
	epsg4326 = geo.NewProj(4326)
}

// ReadSeaTempField imports a climatology field from a GeoTIFF raster,
// one observation per data pixel. Pixels holding the nodata marker are
// skipped; rasters in other projections are transformed to lat/lon.
func ReadSeaTempField(path string) (*SeaTempObs, error) {
	bg := cog.Read(path)
	if bg == nil {
		return nil, errors.New("bayspar: cannot read climatology raster")
	}

	data, ok := bg.Data[0].([]float64)
	if !ok {
		return nil, errors.New("bayspar: climatology raster is not a float64 band")
	}
	si := bg.GetSize(0)
	bounds := bg.GetBounds(0)
	width, height := int(si[0]), int(si[1])

	dx := (bounds.Max[0] - bounds.Min[0]) / float64(width)
	dy := (bounds.Max[1] - bounds.Min[1]) / float64(height)

	epsilon := math.Nextafter(1, 2) - 1
	values := make([]float64, 0, len(data))
	locs := make([]vec2d.T, 0, len(data))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := data[y*width+x]
			if math.Abs(v-fieldNoData) <= epsilon {
				continue
			}
			lon := bounds.Min[0] + (float64(x)+0.5)*dx
			lat := bounds.Max[1] - (float64(y)+0.5)*dy
			values = append(values, v)
			locs = append(locs, vec2d.T{lon, lat})
		}
	}

	epsgcode, err := bg.GetEPSGCode(0)
	if err != nil {
		return nil, err
	}
	if epsgcode != 4326 {
		proj := geo.NewProj(epsgcode)
		locs = proj.TransformTo(epsg4326, locs)
	}

	return NewSeaTempObs(values, locs)
}

// WriteSeaTempField rasterizes a climatology field to a GeoTIFF with the
// given pixel size in degrees, filling cells without an observation with
// the nodata marker.
func WriteSeaTempField(path string, o *SeaTempObs, pixelSize [2]float64) error {
	if len(o.values) == 0 {
		return ErrEmptyField
	}
	if pixelSize[0] <= 0 || pixelSize[1] <= 0 {
		return errors.New("bayspar: pixel size must be positive")
	}

	bounds := vec2d.Rect{Min: vec2d.MaxVal, Max: vec2d.MinVal}
	for _, loc := range o.locs {
		bounds.ExtendToContainPoint(loc)
	}
	bounds.Min[0] -= pixelSize[0] / 2
	bounds.Min[1] -= pixelSize[1] / 2
	bounds.Max[0] += pixelSize[0] / 2
	bounds.Max[1] += pixelSize[1] / 2

	width := int(math.Ceil((bounds.Max[0] - bounds.Min[0]) / pixelSize[0]))
	height := int(math.Ceil((bounds.Max[1] - bounds.Min[1]) / pixelSize[1]))

	data := make([]float64, width*height)
	for i := range data {
		data[i] = fieldNoData
	}
	for i, loc := range o.locs {
		x := int((loc[0] - bounds.Min[0]) / pixelSize[0])
		y := int((bounds.Max[1] - loc[1]) / pixelSize[1])
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}
		data[y*width+x] = o.values[i]
	}

	si := [2]uint32{uint32(width), uint32(height)}
	rect := image.Rect(0, 0, width, height)
	src := cog.NewSource(data, &rect, cog.CTLZW)

	return cog.WriteTile(path, src, bounds, epsg4326, si, nil)
}
