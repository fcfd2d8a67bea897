package state

import (
	"context"
	"strings"

	"github.com/five82/dex/internal/pokeapi"
	"github.com/five82/dex/internal/route"
)

// PageSource is the subset of the catalog client the list view needs.
type PageSource interface {
	ListPage(ctx context.Context, pageNumber, pageSize int) (pokeapi.CatalogPage, error)
}

// PageRequest is one list fetch generation.
type PageRequest struct {
	Gen  Generation
	Page int
	Ctx  context.Context
}

// PageResult carries a finished list fetch back to the machine.
type PageResult struct {
	Gen  Generation
	Page pokeapi.CatalogPage
	Err  error
}

// FetchPage executes req against src.
func FetchPage(src PageSource, req PageRequest) PageResult {
	ctx := req.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	page, err := src.ListPage(ctx, req.Page, pokeapi.PageSize)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return PageResult{Gen: req.Gen, Page: page, Err: err}
}

// Catalog is the list view state machine.
type Catalog struct {
	phase      Phase
	page       int
	query      string
	totalCount int
	items      []pokeapi.CatalogEntry
	filtered   []pokeapi.CatalogEntry
	message    string
	gen        generation
}

// NewCatalog seeds page and query from r.
func NewCatalog(r route.Route) *Catalog {
	if r.Kind != route.KindCatalog {
		r = route.Default()
	}
	return &Catalog{
		page:  max(r.Page, 1),
		query: strings.ToLower(strings.TrimSpace(r.Query)),
	}
}

// Load enters Loading for the current page and returns the request to run.
func (c *Catalog) Load(parent context.Context) PageRequest {
	gen, ctx := c.gen.next(parent)
	c.phase = PhaseLoading
	c.message = ""
	return PageRequest{Gen: gen, Page: c.page, Ctx: ctx}
}

// Next moves one page forward, clamped to the last page. ok is false when the
// page did not change and no fetch is needed.
func (c *Catalog) Next(parent context.Context) (PageRequest, bool) {
	return c.goTo(parent, c.page+1)
}

// Prev moves one page back, clamped to page 1.
func (c *Catalog) Prev(parent context.Context) (PageRequest, bool) {
	return c.goTo(parent, c.page-1)
}

func (c *Catalog) goTo(parent context.Context, page int) (PageRequest, bool) {
	page = ClampPage(page, c.TotalPages())
	if page == c.page {
		return PageRequest{}, false
	}
	c.page = page
	return c.Load(parent), true
}

// Retry re-issues the current page without touching page or query.
func (c *Catalog) Retry(parent context.Context) PageRequest {
	return c.Load(parent)
}

// SetQuery narrows the already-fetched page locally. It never fetches.
func (c *Catalog) SetQuery(q string) {
	c.query = strings.ToLower(strings.TrimSpace(q))
	c.filtered = FilterEntries(c.items, c.query)
}

// Resolve applies res if it belongs to the current generation. It reports
// whether visible state changed.
func (c *Catalog) Resolve(res PageResult) bool {
	if !c.gen.isCurrent(res.Gen) || c.phase != PhaseLoading {
		return false
	}
	if Classify(res.Err) == KindCancelled {
		return false
	}
	c.gen.settle(res.Gen)
	if res.Err != nil {
		c.phase = PhaseFailed
		c.message = res.Err.Error()
		return true
	}
	c.phase = PhaseReady
	c.message = ""
	c.items = res.Page.Items
	c.totalCount = res.Page.TotalCount
	c.filtered = FilterEntries(c.items, c.query)
	return true
}

// Cancel aborts the in-flight request, if any.
func (c *Catalog) Cancel() {
	c.gen.stop()
}

// Phase returns the lifecycle phase.
func (c *Catalog) Phase() Phase { return c.phase }

// Page returns the current 1-based page number.
func (c *Catalog) Page() int { return c.page }

// Query returns the active page-local filter.
func (c *Catalog) Query() string { return c.query }

// TotalCount returns the catalog size reported by the last successful fetch.
func (c *Catalog) TotalCount() int { return c.totalCount }

// TotalPages returns ceil(TotalCount / PageSize).
func (c *Catalog) TotalPages() int {
	return pokeapi.TotalPages(c.totalCount, pokeapi.PageSize)
}

// Items returns the unfiltered entries of the current page.
func (c *Catalog) Items() []pokeapi.CatalogEntry { return c.items }

// Visible returns the entries that match the current query.
func (c *Catalog) Visible() []pokeapi.CatalogEntry { return c.filtered }

// Message returns the failure message while Failed.
func (c *Catalog) Message() string { return c.message }

// Route reflects page and query as a shareable route.
func (c *Catalog) Route() route.Route {
	return route.Catalog(c.page, c.query)
}

// ClampPage bounds page to [1, totalPages], with 1 as the floor even when
// there are no pages.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}
