package l5fusion

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/banshee-data/semgrid/internal/semmap"
	"github.com/banshee-data/semgrid/internal/semmap/l3grid"
)

var (
	// ErrConcurrentUpdate is returned when Step is entered while another
	// Step on the same session is still running. Callers must serialise.
	ErrConcurrentUpdate = errors.New("concurrent update on episode session")
	// ErrSessionClosed is returned by Step after Close.
	ErrSessionClosed = errors.New("episode session closed")
)

// Session scopes one accumulator to one episode. It is created at episode
// start, stepped once per timestep, and closed at episode end.
type Session struct {
	id    uuid.UUID
	spec  GridSpec
	acc   Accumulator
	steps atomic.Int64

	busy   atomic.Bool
	closed atomic.Bool
}

// NewSession builds a fresh accumulator via factory and wraps it.
func NewSession(factory Factory, spec GridSpec) (*Session, error) {
	if factory == nil {
		return nil, errors.New("nil accumulator factory")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grid spec: %w", err)
	}
	acc, err := factory(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to create accumulator: %w", err)
	}
	s := &Session{id: uuid.New(), spec: spec, acc: acc}
	semmap.Opsf("episode session %s started grid=%dx%d labels=%d", s.id, spec.Dim.H, spec.Dim.W, spec.SpatialLabels)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Spec returns the grid spec the session was created with.
func (s *Session) Spec() GridSpec { return s.spec }

// Steps returns the number of completed steps.
func (s *Session) Steps() int { return int(s.steps.Load()) }

// Step fuses one egocentric observation: ego to geo with (rel, abs), Bayes
// update, then geo back to ego with the same poses. It returns the fused
// egocentric grid holding every preceding view.
func (s *Session) Step(ctx semmap.ExecContext, ego *l3grid.Grid, rel, abs semmap.Pose) (*l3grid.Grid, error) {
	if s.closed.Load() {
		return nil, ErrSessionClosed
	}
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrConcurrentUpdate
	}
	defer s.busy.Store(false)

	if err := ctx.Check(ego.Device); err != nil {
		return nil, err
	}
	if ego.C != s.spec.SpatialLabels || ego.H != s.spec.Dim.H || ego.W != s.spec.Dim.W {
		return nil, fmt.Errorf("%w: grid %s, session expects (%d, %d, %d)",
			semmap.ErrShapeMismatch, ego, s.spec.SpatialLabels, s.spec.Dim.H, s.spec.Dim.W)
	}

	geo, err := s.acc.SpatialTransform(ctx, ego, rel, abs)
	if err != nil {
		return nil, fmt.Errorf("spatial transform: %w", err)
	}
	fused, err := s.acc.UpdateBayes(ctx, geo)
	if err != nil {
		return nil, fmt.Errorf("bayes update: %w", err)
	}
	out, err := s.acc.RotateMap(ctx, fused, rel, abs)
	if err != nil {
		return nil, fmt.Errorf("rotate map: %w", err)
	}

	n := s.steps.Add(1)
	semmap.Tracef("episode session %s step=%d rel=%+v abs=%+v", s.id, n, rel, abs)
	return out, nil
}

// Close ends the episode. Further steps fail with ErrSessionClosed.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	semmap.Opsf("episode session %s closed after %d steps", s.id, s.Steps())
	return nil
}

// AccumulateEpisode runs a whole episode through a fresh session: egos[t]
// is fused with rel[t] and abs[t], and the fused egocentric grid after each
// step is returned.
func AccumulateEpisode(ctx semmap.ExecContext, factory Factory, egos []*l3grid.Grid, rel, abs []semmap.Pose, cropSize int, cellSize float64) ([]*l3grid.Grid, error) {
	if len(egos) != len(rel) || len(egos) != len(abs) {
		return nil, fmt.Errorf("%w: grids=%d rel=%d abs=%d", semmap.ErrLengthMismatch, len(egos), len(rel), len(abs))
	}
	if len(egos) == 0 {
		return nil, nil
	}

	s, err := NewSession(factory, SpecForGrid(egos[0], cropSize, cellSize))
	if err != nil {
		return nil, err
	}
	defer s.Close()

	out := make([]*l3grid.Grid, len(egos))
	for t, ego := range egos {
		g, err := s.Step(ctx, ego, rel[t], abs[t])
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", t, err)
		}
		out[t] = g
	}
	return out, nil
}
