// Package route encodes navigable dex state as short, shareable strings:
//
//	/?page=2&q=char   catalog page 2 filtered by "char"
//	/item/pikachu     detail view for pikachu (name or numeric id)
package route

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Kind distinguishes the two route shapes.
type Kind int

const (
	KindCatalog Kind = iota
	KindItem
)

// Route is a parsed navigable location.
type Route struct {
	Kind       Kind
	Page       int    // catalog only; >= 1
	Query      string // catalog only; lowercased
	Identifier string // item only
}

// Catalog builds a catalog route, normalizing page and query.
func Catalog(page int, query string) Route {
	return Route{Kind: KindCatalog, Page: max(page, 1), Query: strings.ToLower(strings.TrimSpace(query))}
}

// Item builds a detail route.
func Item(identifier string) Route {
	return Route{Kind: KindItem, Identifier: strings.ToLower(strings.TrimSpace(identifier))}
}

// Default is the catalog's first page with no query.
func Default() Route {
	return Catalog(1, "")
}

// Parse reads a route string. An empty string yields Default. Unparsable page
// numbers fall back to 1.
func Parse(raw string) (Route, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Default(), nil
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return Route{}, fmt.Errorf("parse route %q: %w", raw, err)
	}

	path := strings.Trim(u.Path, "/")
	switch {
	case path == "":
		values := u.Query()
		page, err := strconv.Atoi(values.Get("page"))
		if err != nil {
			page = 1
		}
		return Catalog(page, values.Get("q")), nil
	case strings.HasPrefix(path, "item/"):
		ident := strings.TrimPrefix(path, "item/")
		if ident == "" || strings.Contains(ident, "/") {
			return Route{}, fmt.Errorf("parse route %q: invalid item identifier", raw)
		}
		return Item(ident), nil
	default:
		return Route{}, fmt.Errorf("parse route %q: unknown path /%s", raw, path)
	}
}

// String renders the route. The catalog form always carries page and omits q
// when empty.
func (r Route) String() string {
	switch r.Kind {
	case KindItem:
		return "/item/" + url.PathEscape(r.Identifier)
	default:
		values := url.Values{}
		values.Set("page", strconv.Itoa(max(r.Page, 1)))
		if r.Query != "" {
			values.Set("q", r.Query)
		}
		return "/?" + values.Encode()
	}
}
