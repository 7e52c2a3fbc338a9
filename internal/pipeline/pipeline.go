package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/mapview"
	"github.com/couchcryptid/quake-map/internal/observability"
)

// Fetcher downloads the two GeoJSON documents the map is built from.
type Fetcher interface {
	FetchEarthquakes(ctx context.Context) ([]byte, error)
	FetchPlateBoundaries(ctx context.Context) ([]byte, error)
}

// State is a step of the initialization sequence.
type State int32

const (
	StateIdle State = iota
	StateHaveQuakes
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHaveQuakes:
		return "have_quakes"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// ErrAlreadyRun is returned when Run is called more than once.
var ErrAlreadyRun = errors.New("map initialization already run")

// Pipeline runs the one-shot initialization sequence: fetch earthquakes,
// then plate boundaries, then assemble the map. The two fetches never overlap.
type Pipeline struct {
	fetcher Fetcher
	opts    mapview.Options
	logger  *slog.Logger
	metrics *observability.Metrics

	started atomic.Bool
	state   atomic.Int32
	result  atomic.Pointer[mapview.Map]
	failure atomic.Pointer[domain.InitializationError]
}

// New creates a Pipeline in the idle state.
func New(f Fetcher, opts mapview.Options, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher: f,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

// State reports the current step.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Map returns the assembled map once Ready, nil otherwise.
func (p *Pipeline) Map() *mapview.Map {
	return p.result.Load()
}

// Err returns the terminal error once Failed, nil otherwise.
func (p *Pipeline) Err() error {
	if e := p.failure.Load(); e != nil {
		return e
	}
	return nil
}

// CheckReadiness returns nil once the map is assembled, the initialization
// error if it failed, or an error naming the step still in progress.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	switch s := p.State(); s {
	case StateReady:
		return nil
	case StateFailed:
		return p.Err()
	default:
		return fmt.Errorf("map initialization in progress (%s)", s)
	}
}

// Run executes the sequence once. On failure the pipeline ends in
// StateFailed and the returned error is a *domain.InitializationError.
func (p *Pipeline) Run(ctx context.Context) (*mapview.Map, error) {
	if !p.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRun
	}
	p.logger.Info("map initialization started")

	quakeDoc, err := p.fetcher.FetchEarthquakes(ctx)
	if err != nil {
		return nil, p.fail("earthquakes", err)
	}
	quakes, err := decodeEarthquakes(quakeDoc, p.logger, p.metrics)
	if err != nil {
		return nil, p.fail("decode", err)
	}
	p.setState(StateHaveQuakes)
	p.logger.Info("earthquakes loaded", "count", len(quakes))

	plateDoc, err := p.fetcher.FetchPlateBoundaries(ctx)
	if err != nil {
		return nil, p.fail("plates", err)
	}
	plates, err := decodePlateBoundaries(plateDoc, p.logger, p.metrics)
	if err != nil {
		return nil, p.fail("decode", err)
	}
	p.logger.Info("plate boundaries loaded", "count", len(plates))

	start := time.Now()
	m := mapview.Assemble(quakes, plates, p.opts)
	p.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	p.metrics.MarkersRendered.Set(float64(len(m.Earthquakes.Markers)))

	p.result.Store(m)
	p.setState(StateReady)
	p.logger.Info("map ready", "markers", len(m.Earthquakes.Markers), "plates", len(plates))
	return m, nil
}

func (p *Pipeline) fail(stage string, err error) error {
	initErr := &domain.InitializationError{Stage: stage, Err: err}
	p.failure.Store(initErr)
	p.setState(StateFailed)
	p.logger.Error("map initialization failed", "stage", stage, "error", err)
	return initErr
}

func (p *Pipeline) setState(s State) {
	p.state.Store(int32(s))
	p.metrics.InitializationState.Set(float64(s))
}
