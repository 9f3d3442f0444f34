// Package view builds the page subtrees for the launch site and decides which
// one a location shows.
package view

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/Nixie-Tech-LLC/launches/internal/elements"
	"github.com/Nixie-Tech-LLC/launches/internal/launchapi"
	"github.com/Nixie-Tech-LLC/launches/internal/model"
)

// History is the browser history capability used after a search submit.
type History interface {
	PushState(location string)
}

// SearchLog keeps submitted search terms. It is optional.
type SearchLog interface {
	RecordSearch(ctx context.Context, term string) error
	RecentSearches(ctx context.Context, limit int) ([]model.SearchRecord, error)
}

const defaultRecentLimit = 5

// Router renders the view for a location into a root container.
type Router struct {
	api         launchapi.Fetcher
	searches    SearchLog
	recentLimit int
	logger      zerolog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithSearchLog enables recording and listing of search terms.
func WithSearchLog(s SearchLog, limit int) Option {
	return func(r *Router) {
		r.searches = s
		if limit > 0 {
			r.recentLimit = limit
		}
	}
}

// WithLogger replaces the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// NewRouter returns a Router that fetches launches through api.
func NewRouter(api launchapi.Fetcher, opts ...Option) *Router {
	r := &Router{
		api:         api,
		recentLimit: defaultRecentLimit,
		logger:      log.Logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route empties root and renders the view selected by location into it.
// The selected route is returned.
func (r *Router) Route(ctx context.Context, root *html.Node, location *url.URL) Route {
	route := RouteFor(location)

	elements.Empty(root)

	switch rt := route.(type) {
	case DetailRoute:
		r.RenderDetails(ctx, root, rt.ID)
	case SearchRoute:
		r.RenderFrontpage(ctx, root, rt.Query)
	}
	return route
}

// OnSearch handles a submitted search form: it re-renders only the results
// region inside container and pushes the new location onto history. Blank
// terms are ignored. It reports whether a search was performed.
func (r *Router) OnSearch(ctx context.Context, container *html.Node, history History, term string) bool {
	route := ParseRoute(url.Values{"query": {term}}).(SearchRoute)
	if route.Query == "" {
		return false
	}

	results := elements.Find(container, elements.ByClass(resultsClass))
	if results == nil {
		results = newResultsRegion()
		container.AppendChild(results)
	}
	r.SearchAndRender(ctx, results, route.Query)
	r.recordSearch(ctx, route.Query)

	if history != nil {
		history.PushState(route.URL())
	}
	return true
}

func (r *Router) recordSearch(ctx context.Context, term string) {
	if r.searches == nil {
		return
	}
	if err := r.searches.RecordSearch(ctx, term); err != nil {
		r.logger.Warn().Err(err).Str("query", term).Msg("failed to record search")
	}
}
