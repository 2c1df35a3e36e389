package bayspar

import (
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	vec2d "github.com/flywave/go3d/float64/vec2"
)

// The calibration draws were published as MATLAB files; they are
// repacked into flat little-endian binary packs for distribution with
// this library.
const packVersion = 1

var (
	magicDraws   = [4]byte{'B', 'S', 'P', 'D'}
	magicSeaTemp = [4]byte{'B', 'S', 'P', 'O'}
	magicTexObs  = [4]byte{'B', 'S', 'P', 'X'}
)

// PackLoader reads resource packs from a directory, one file per
// calibration table:
//
//	draws_<temptype>.bin.gz
//	analog_draws_<temptype>.bin.gz
//	seatemp_<temptype>.bin.gz
//	texobs_<temptype>.bin.gz
type PackLoader struct {
	dir string
}

// NewPackLoader points a loader at a resource directory.
func NewPackLoader(dir string) *PackLoader {
	return &PackLoader{dir: dir}
}

func (l *PackLoader) path(prefix string, tt TempType) string {
	return filepath.Join(l.dir, fmt.Sprintf("%s_%s.bin.gz", prefix, tt))
}

func (l *PackLoader) LoadDraws(tt TempType) (*Draws, error) {
	return ReadDrawsFile(l.path("draws", tt))
}

func (l *PackLoader) LoadAnalogDraws(tt TempType) (*Draws, error) {
	return ReadDrawsFile(l.path("analog_draws", tt))
}

func (l *PackLoader) LoadSeaTempObs(tt TempType) (*SeaTempObs, error) {
	return ReadSeaTempObsFile(l.path("seatemp", tt))
}

func (l *PackLoader) LoadTexObs(tt TempType) (*TexObs, error) {
	return ReadTexObsFile(l.path("texobs", tt))
}

func readHeader(r io.Reader, magic [4]byte) error {
	var m [4]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return err
	}
	if m != magic {
		return fmt.Errorf("bayspar: bad resource magic %q, want %q", m, magic)
	}
	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return err
	}
	if version != packVersion {
		return fmt.Errorf("bayspar: unsupported resource version %d", version)
	}
	return nil
}

func writeHeader(w io.Writer, magic [4]byte) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, uint32(packVersion))
}

func readLocs(r io.Reader, n int) ([]vec2d.T, error) {
	flat := make([]float64, 2*n)
	if err := binary.Read(r, binary.LittleEndian, flat); err != nil {
		return nil, err
	}
	locs := make([]vec2d.T, n)
	for i := range locs {
		locs[i] = vec2d.T{flat[2*i], flat[2*i+1]}
	}
	return locs, nil
}

func writeLocs(w io.Writer, locs []vec2d.T) error {
	flat := make([]float64, 0, 2*len(locs))
	for _, loc := range locs {
		flat = append(flat, loc[0], loc[1])
	}
	return binary.Write(w, binary.LittleEndian, flat)
}

// ReadDraws decodes a draws table from its binary pack form.
func ReadDraws(r io.Reader) (*Draws, error) {
	if err := readHeader(r, magicDraws); err != nil {
		return nil, err
	}
	var ncells, ndraws uint32
	if err := binary.Read(r, binary.LittleEndian, &ncells); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &ndraws); err != nil {
		return nil, err
	}

	locs, err := readLocs(r, int(ncells))
	if err != nil {
		return nil, err
	}
	tau2 := make([]float64, ndraws)
	if err := binary.Read(r, binary.LittleEndian, tau2); err != nil {
		return nil, err
	}
	readRows := func() ([][]float64, error) {
		rows := make([][]float64, ncells)
		for i := range rows {
			rows[i] = make([]float64, ndraws)
			if err := binary.Read(r, binary.LittleEndian, rows[i]); err != nil {
				return nil, err
			}
		}
		return rows, nil
	}
	alpha, err := readRows()
	if err != nil {
		return nil, err
	}
	beta, err := readRows()
	if err != nil {
		return nil, err
	}
	return NewDraws(alpha, beta, tau2, locs)
}

// WriteDraws encodes a draws table in binary pack form.
func WriteDraws(w io.Writer, d *Draws) error {
	if err := writeHeader(w, magicDraws); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(d.NCells())); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(d.NDraws())); err != nil {
		return err
	}
	if err := writeLocs(w, d.locs); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, d.tau2); err != nil {
		return err
	}
	for _, row := range d.alpha {
		if err := binary.Write(w, binary.LittleEndian, row); err != nil {
			return err
		}
	}
	for _, row := range d.beta {
		if err := binary.Write(w, binary.LittleEndian, row); err != nil {
			return err
		}
	}
	return nil
}

// ReadSeaTempObs decodes a climatology field from its binary pack form.
func ReadSeaTempObs(r io.Reader) (*SeaTempObs, error) {
	if err := readHeader(r, magicSeaTemp); err != nil {
		return nil, err
	}
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	values := make([]float64, n)
	if err := binary.Read(r, binary.LittleEndian, values); err != nil {
		return nil, err
	}
	locs, err := readLocs(r, int(n))
	if err != nil {
		return nil, err
	}
	return NewSeaTempObs(values, locs)
}

// WriteSeaTempObs encodes a climatology field in binary pack form.
func WriteSeaTempObs(w io.Writer, o *SeaTempObs) error {
	if err := writeHeader(w, magicSeaTemp); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(o.values))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, o.values); err != nil {
		return err
	}
	return writeLocs(w, o.locs)
}

// ReadTexObs decodes a regional observation stack from its binary pack
// form.
func ReadTexObs(r io.Reader) (*TexObs, error) {
	if err := readHeader(r, magicTexObs); err != nil {
		return nil, err
	}
	var nregions, nobs uint32
	if err := binary.Read(r, binary.LittleEndian, &nregions); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &nobs); err != nil {
		return nil, err
	}
	locs, err := readLocs(r, int(nregions))
	if err != nil {
		return nil, err
	}
	obsStack := make([]float64, nobs)
	if err := binary.Read(r, binary.LittleEndian, obsStack); err != nil {
		return nil, err
	}
	rawInds := make([]uint32, nobs)
	if err := binary.Read(r, binary.LittleEndian, rawInds); err != nil {
		return nil, err
	}
	indsStack := make([]int, nobs)
	for i, v := range rawInds {
		indsStack[i] = int(v)
	}
	return NewTexObs(locs, obsStack, indsStack)
}

// WriteTexObs encodes a regional observation stack in binary pack form.
func WriteTexObs(w io.Writer, o *TexObs) error {
	if err := writeHeader(w, magicTexObs); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(o.locs))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(o.obsStack))); err != nil {
		return err
	}
	if err := writeLocs(w, o.locs); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, o.obsStack); err != nil {
		return err
	}
	rawInds := make([]uint32, len(o.indsStack))
	for i, v := range o.indsStack {
		rawInds[i] = uint32(v)
	}
	return binary.Write(w, binary.LittleEndian, rawInds)
}

func readGzipped(path string, decode func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()
	return decode(gz)
}

func writeGzipped(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	gz := gzip.NewWriter(f)
	if err := encode(gz); err != nil {
		f.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadDrawsFile reads a gzipped draws pack.
func ReadDrawsFile(path string) (*Draws, error) {
	var d *Draws
	err := readGzipped(path, func(r io.Reader) error {
		var err error
		d, err = ReadDraws(r)
		return err
	})
	return d, err
}

// WriteDrawsFile writes a gzipped draws pack.
func WriteDrawsFile(path string, d *Draws) error {
	return writeGzipped(path, func(w io.Writer) error {
		return WriteDraws(w, d)
	})
}

// ReadSeaTempObsFile reads a gzipped climatology pack.
func ReadSeaTempObsFile(path string) (*SeaTempObs, error) {
	var o *SeaTempObs
	err := readGzipped(path, func(r io.Reader) error {
		var err error
		o, err = ReadSeaTempObs(r)
		return err
	})
	return o, err
}

// WriteSeaTempObsFile writes a gzipped climatology pack.
func WriteSeaTempObsFile(path string, o *SeaTempObs) error {
	return writeGzipped(path, func(w io.Writer) error {
		return WriteSeaTempObs(w, o)
	})
}

// ReadTexObsFile reads a gzipped regional observation pack.
func ReadTexObsFile(path string) (*TexObs, error) {
	var o *TexObs
	err := readGzipped(path, func(r io.Reader) error {
		var err error
		o, err = ReadTexObs(r)
		return err
	})
	return o, err
}

// WriteTexObsFile writes a gzipped regional observation pack.
func WriteTexObsFile(path string, o *TexObs) error {
	return writeGzipped(path, func(w io.Writer) error {
		return WriteTexObs(w, o)
	})
}
