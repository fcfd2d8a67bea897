package state

import (
	"context"
	"errors"

	"github.com/five82/dex/internal/pokeapi"
)

// Phase is the fetch lifecycle shared by both view machines.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ErrorKind classifies fetch failures.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNotFound
	KindUnavailable
	// KindCancelled marks a superseded request. It never reaches the UI.
	KindCancelled
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindUnavailable:
		return "unavailable"
	case KindCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Classify maps an error from the catalog client onto an ErrorKind.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, pokeapi.ErrNotFound):
		return KindNotFound
	default:
		return KindUnavailable
	}
}

// Generation identifies one request lifecycle. Only the current generation of
// a machine may mutate its state.
type Generation uint64

// generation tracks the current request and its cancellation.
type generation struct {
	current Generation
	cancel  context.CancelFunc
}

// next cancels the in-flight request and starts a new one derived from parent.
func (g *generation) next(parent context.Context) (Generation, context.Context) {
	g.stop()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	g.current++
	g.cancel = cancel
	return g.current, ctx
}

// settle releases the context of gen once its result has been applied.
func (g *generation) settle(gen Generation) {
	if gen == g.current && g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

func (g *generation) stop() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

func (g *generation) isCurrent(gen Generation) bool {
	return gen == g.current
}
