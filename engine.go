package bayspar

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// ResourceLoader supplies the pre-fitted reference data. Loading runs
// once, at engine construction; loader failures are construction
// failures, never request-time ones.
type ResourceLoader interface {
	LoadDraws(tt TempType) (*Draws, error)
	LoadAnalogDraws(tt TempType) (*Draws, error)
	LoadSeaTempObs(tt TempType) (*SeaTempObs, error)
	LoadTexObs(tt TempType) (*TexObs, error)
}

// Options configures an Engine.
type Options struct {
	// DataDir locates a resource pack on disk. Ignored when Loader is
	// set.
	DataDir string
	// Loader overrides the default pack loader.
	Loader ResourceLoader
	// Logger defaults to a nop logger.
	Logger *zap.Logger
	// Seed fixes the random stream of every prediction call. Zero seeds
	// from the clock per call.
	Seed uint64
	// Progress, when set, is invoked once per matched region during
	// analog inverse predictions.
	Progress func(done, total int)
}

// Engine holds the process-scoped calibration data and answers
// prediction requests. The reference data is loaded once and never
// mutated afterwards; accessors hand out deep copies, so an Engine is
// safe for concurrent use.
type Engine struct {
	draws       [2]*Draws
	analogDraws [2]*Draws
	seaTemp     [2]*SeaTempObs
	texObs      [2]*TexObs

	log      *zap.Logger
	seed     uint64
	progress func(done, total int)
}

// NewEngine loads both calibrations through the loader and returns a
// ready engine.
func NewEngine(opts Options) (*Engine, error) {
	loader := opts.Loader
	if loader == nil {
		loader = NewPackLoader(opts.DataDir)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	e := &Engine{
		log:      log,
		seed:     opts.Seed,
		progress: opts.Progress,
	}

	start := time.Now()
	for _, tt := range []TempType{SST, SubT} {
		d, err := loader.LoadDraws(tt)
		if err != nil {
			return nil, err
		}
		ad, err := loader.LoadAnalogDraws(tt)
		if err != nil {
			return nil, err
		}
		st, err := loader.LoadSeaTempObs(tt)
		if err != nil {
			return nil, err
		}
		tx, err := loader.LoadTexObs(tt)
		if err != nil {
			return nil, err
		}
		e.draws[tt] = d
		e.analogDraws[tt] = ad
		e.seaTemp[tt] = st
		e.texObs[tt] = tx
		log.Info("calibration loaded",
			zap.Stringer("temptype", tt),
			zap.Int("gridcells", d.NCells()),
			zap.Int("draws", d.NDraws()),
			zap.Int("climatology_obs", st.NObs()),
			zap.Int("analog_regions", tx.NRegions()))
	}
	log.Debug("engine ready", zap.Duration("elapsed", time.Since(start)))
	return e, nil
}

func (e *Engine) drawsFor(tt TempType) (*Draws, error) {
	if !tt.valid() {
		return nil, &UnknownTempTypeError{TempType: tt}
	}
	return e.draws[tt], nil
}

func (e *Engine) analogDrawsFor(tt TempType) (*Draws, error) {
	if !tt.valid() {
		return nil, &UnknownTempTypeError{TempType: tt}
	}
	return e.analogDraws[tt], nil
}

func (e *Engine) seaTempFor(tt TempType) (*SeaTempObs, error) {
	if !tt.valid() {
		return nil, &UnknownTempTypeError{TempType: tt}
	}
	return e.seaTemp[tt], nil
}

func (e *Engine) texObsFor(tt TempType) (*TexObs, error) {
	if !tt.valid() {
		return nil, &UnknownTempTypeError{TempType: tt}
	}
	return e.texObs[tt], nil
}

// Draws returns a deep copy of the compact calibration draws.
func (e *Engine) Draws(tt TempType) (*Draws, error) {
	d, err := e.drawsFor(tt)
	if err != nil {
		return nil, err
	}
	return d.Copy(), nil
}

// AnalogDraws returns a deep copy of the full-field draws used by the
// analog forward mode.
func (e *Engine) AnalogDraws(tt TempType) (*Draws, error) {
	d, err := e.analogDrawsFor(tt)
	if err != nil {
		return nil, err
	}
	return d.Copy(), nil
}

// SeaTempObs returns a deep copy of the climatology field.
func (e *Engine) SeaTempObs(tt TempType) (*SeaTempObs, error) {
	o, err := e.seaTempFor(tt)
	if err != nil {
		return nil, err
	}
	return o.Copy(), nil
}

// TexObs returns a deep copy of the regional observation stack.
func (e *Engine) TexObs(tt TempType) (*TexObs, error) {
	o, err := e.texObsFor(tt)
	if err != nil {
		return nil, err
	}
	return o.Copy(), nil
}

// newRand builds the random stream for one prediction call. A fixed seed
// gives every call the same stream, keeping results reproducible no
// matter how calls interleave.
func (e *Engine) newRand() *rand.Rand {
	seed := e.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}
