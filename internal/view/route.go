package view

import "net/url"

// Route is the view selected by the query string: DetailRoute or SearchRoute.
type Route interface {
	// URL is the client-side location for the route.
	URL() string
	isRoute()
}

// DetailRoute shows a single launch.
type DetailRoute struct {
	ID string
}

// SearchRoute shows the front page, with results when Query is set.
type SearchRoute struct {
	Query string
}

func (DetailRoute) isRoute() {}
func (SearchRoute) isRoute() {}

func (r DetailRoute) URL() string {
	return "/?" + url.Values{"id": {r.ID}}.Encode()
}

func (r SearchRoute) URL() string {
	if r.Query == "" {
		return "/"
	}
	return "/?" + url.Values{"query": {r.Query}}.Encode()
}

// ParseRoute picks the route for a query string. A non-empty id always wins
// over query. Values are taken as given; " " is a present id.
func ParseRoute(q url.Values) Route {
	if id := q.Get("id"); id != "" {
		return DetailRoute{ID: id}
	}
	return SearchRoute{Query: q.Get("query")}
}

// RouteFor parses the route from a location. A nil location is the front page.
func RouteFor(location *url.URL) Route {
	if location == nil {
		return SearchRoute{}
	}
	return ParseRoute(location.Query())
}
