package state

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/five82/dex/internal/cache"
	"github.com/five82/dex/internal/pokeapi"
	"github.com/five82/dex/internal/route"
)

// notFoundMessage is shown when the first stage reports ErrNotFound.
const notFoundMessage = "item not found"

// DetailSource is the subset of the catalog client the detail view needs.
type DetailSource interface {
	GetItem(ctx context.Context, nameOrID string) (pokeapi.DetailRecord, error)
	GetSpecies(ctx context.Context, id int) (pokeapi.SpeciesMetadata, error)
}

// DetailRequest is one detail fetch generation.
type DetailRequest struct {
	Gen        Generation
	Identifier string
	Ctx        context.Context
}

// DetailResult carries both fetch stages back to the machine. Err is set by
// whichever stage failed first.
type DetailResult struct {
	Gen     Generation
	Record  pokeapi.DetailRecord
	Species pokeapi.SpeciesMetadata
	Cached  bool
	Err     error
}

// FetchDetail runs the two-stage detail fetch. The record comes from the
// session cache when present; otherwise it is fetched and written back, but
// only while req's context is still live. Species metadata is always fetched
// after the record resolves since it needs the record's numeric id. Species
// failures other than cancellation classify as unavailable.
func FetchDetail(src DetailSource, sess *cache.Session, req DetailRequest) DetailResult {
	ctx := req.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	res := DetailResult{Gen: req.Gen}
	key := cache.Key(req.Identifier)

	rec, ok := sess.Get(key)
	if ok {
		res.Cached = true
	} else {
		var err error
		rec, err = src.GetItem(ctx, req.Identifier)
		if err == nil {
			err = ctx.Err()
		}
		if err == nil {
			err = sess.PutLive(ctx, key, rec)
		}
		if err != nil {
			res.Err = fmt.Errorf("fetch item %q: %w", req.Identifier, err)
			return res
		}
	}
	res.Record = rec

	species, err := src.GetSpecies(ctx, rec.ID)
	if err == nil {
		err = ctx.Err()
	}
	switch {
	case err == nil:
	case Classify(err) == KindCancelled:
		res.Err = fmt.Errorf("fetch species %d: %w", rec.ID, err)
		return res
	default:
		// Only the record lookup may report NotFound; the record exists here.
		res.Err = fmt.Errorf("fetch species %d: %w: %v", rec.ID, pokeapi.ErrUnavailable, err)
		return res
	}
	res.Species = species
	return res
}

// Detail is the detail view state machine.
type Detail struct {
	phase      Phase
	identifier string
	record     pokeapi.DetailRecord
	species    pokeapi.SpeciesMetadata
	kind       ErrorKind
	message    string
	gen        generation
}

// NewDetail returns an idle machine.
func NewDetail() *Detail {
	return &Detail{}
}

// Navigate starts loading identifier, cancelling any in-flight request.
func (d *Detail) Navigate(parent context.Context, identifier string) DetailRequest {
	d.identifier = strings.ToLower(strings.TrimSpace(identifier))
	gen, ctx := d.gen.next(parent)
	d.phase = PhaseLoading
	d.kind = KindNone
	d.message = ""
	d.record = pokeapi.DetailRecord{}
	d.species = pokeapi.SpeciesMetadata{}
	return DetailRequest{Gen: gen, Identifier: d.identifier, Ctx: ctx}
}

// Retry re-issues the current identifier under a new generation.
func (d *Detail) Retry(parent context.Context) DetailRequest {
	return d.Navigate(parent, d.identifier)
}

// Resolve applies res if it belongs to the current generation. Cancelled and
// stale results are dropped and Resolve returns false.
func (d *Detail) Resolve(res DetailResult) bool {
	if !d.gen.isCurrent(res.Gen) || d.phase != PhaseLoading {
		return false
	}
	kind := Classify(res.Err)
	if kind == KindCancelled {
		return false
	}
	d.gen.settle(res.Gen)
	switch kind {
	case KindNone:
		d.phase = PhaseReady
		d.record = res.Record
		d.species = res.Species
	case KindNotFound:
		d.phase = PhaseFailed
		d.kind = KindNotFound
		d.message = notFoundMessage
	default:
		d.phase = PhaseFailed
		d.kind = KindUnavailable
		d.message = res.Err.Error()
	}
	return true
}

// Cancel aborts the in-flight request, if any.
func (d *Detail) Cancel() {
	d.gen.stop()
}

func (d *Detail) Phase() Phase                     { return d.phase }
func (d *Detail) Identifier() string               { return d.identifier }
func (d *Detail) Record() pokeapi.DetailRecord     { return d.record }
func (d *Detail) Species() pokeapi.SpeciesMetadata { return d.species }
func (d *Detail) Kind() ErrorKind                  { return d.kind }
func (d *Detail) Message() string                  { return d.message }

// Route reflects the current identifier.
func (d *Detail) Route() route.Route {
	return route.Item(d.identifier)
}

// Adjacent returns the identifier of the neighbouring record by numeric id.
// delta is usually -1 or +1. ok is false when no record is loaded or the
// neighbour would fall below id 1.
func (d *Detail) Adjacent(delta int) (string, bool) {
	if d.phase != PhaseReady || d.record.ID == 0 {
		return "", false
	}
	id := d.record.ID + delta
	if id < 1 {
		return "", false
	}
	return strconv.Itoa(id), true
}
