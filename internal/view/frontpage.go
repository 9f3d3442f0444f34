package view

import (
	"context"

	"golang.org/x/net/html"

	"github.com/Nixie-Tech-LLC/launches/internal/elements"
	"github.com/Nixie-Tech-LLC/launches/internal/model"
)

const (
	frontpageClass = "frontpage"
	formClass      = "search"
	resultsClass   = "results"
	recentClass    = "recent"
)

// RenderFrontpage appends the search form to parent. When query is set the
// search runs immediately and its results are rendered below the form.
func (r *Router) RenderFrontpage(ctx context.Context, parent *html.Node, query string) {
	inputAttrs := elements.Attrs{
		"type":        "search",
		"name":        "query",
		"placeholder": searchLabel,
		"aria-label":  searchLabel,
	}
	if query != "" {
		inputAttrs["value"] = query
	}

	form := elements.El("form", elements.Attrs{"class": formClass, "method": "get", "action": "/"},
		elements.El("input", inputAttrs),
		elements.El("button", elements.Attrs{"type": "submit"}, searchButton),
	)
	results := newResultsRegion()

	page := elements.El("div", elements.Attrs{"class": frontpageClass},
		elements.El("h1", nil, pageTitle),
		form,
		results,
	)
	if recent := r.recentSearches(ctx); recent != nil {
		page.AppendChild(recent)
	}
	parent.AppendChild(page)

	if query != "" {
		r.SearchAndRender(ctx, results, query)
	}
}

// SearchAndRender replaces the content of the results region with the
// results for query.
func (r *Router) SearchAndRender(ctx context.Context, results *html.Node, query string) {
	elements.Empty(results)
	results.AppendChild(elements.El("h2", nil, resultsHeading(query)))

	loading := setLoading(results)
	launches, err := r.api.SearchLaunches(ctx, query)
	elements.Remove(loading)

	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search launches")
		results.AppendChild(elements.El("p", elements.Attrs{"class": errorClass}, searchErrorText))
		return
	}
	if len(launches) == 0 {
		results.AppendChild(elements.El("p", nil, noResultsText(query)))
		return
	}

	list := elements.El("ul", nil)
	for _, l := range launches {
		list.AppendChild(r.resultItem(l))
	}
	results.AppendChild(list)
}

func (r *Router) resultItem(l model.LaunchSummary) *html.Node {
	item := elements.El("li", elements.Attrs{"class": "result"},
		elements.El("a", elements.Attrs{"href": DetailRoute{ID: l.ID}.URL()}, l.Name),
	)
	if l.Status != nil && l.Status.Name != "" {
		item.AppendChild(elements.Text(" "))
		item.AppendChild(elements.El("span", elements.Attrs{"class": "status"}, l.Status.Name))
	}
	return item
}

// recentSearches renders the recent search terms, or nil when there are none
// or no search log is configured.
func (r *Router) recentSearches(ctx context.Context) *html.Node {
	if r.searches == nil {
		return nil
	}
	records, err := r.searches.RecentSearches(ctx, r.recentLimit)
	if err != nil {
		r.logger.Warn().Err(err).Msg("failed to load recent searches")
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	list := elements.El("ul", nil)
	for _, rec := range records {
		list.AppendChild(elements.El("li", nil,
			elements.El("a", elements.Attrs{"href": SearchRoute{Query: rec.Term}.URL()}, rec.Term),
		))
	}
	return elements.El("aside", elements.Attrs{"class": recentClass},
		elements.El("h2", nil, recentHeading),
		list,
	)
}

func newResultsRegion() *html.Node {
	return elements.El("section", elements.Attrs{"class": resultsClass, "aria-live": "polite"})
}
