package view

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/Nixie-Tech-LLC/launches/internal/elements"
	"github.com/Nixie-Tech-LLC/launches/internal/launchapi"
	"github.com/Nixie-Tech-LLC/launches/internal/model"
)

type fakeAPI struct {
	launch     *model.Launch
	launchErr  error
	results    []model.LaunchSummary
	searchErr  error
	launchIDs  []string
	searches   []string
	onFetchHit func()
}

func (f *fakeAPI) GetLaunch(_ context.Context, id string) (*model.Launch, error) {
	f.launchIDs = append(f.launchIDs, id)
	if f.onFetchHit != nil {
		f.onFetchHit()
	}
	return f.launch, f.launchErr
}

func (f *fakeAPI) SearchLaunches(_ context.Context, query string) ([]model.LaunchSummary, error) {
	f.searches = append(f.searches, query)
	if f.onFetchHit != nil {
		f.onFetchHit()
	}
	return f.results, f.searchErr
}

type fakeHistory struct {
	pushed []string
}

func (h *fakeHistory) PushState(location string) {
	h.pushed = append(h.pushed, location)
}

type fakeSearchLog struct {
	recorded []string
	recent   []model.SearchRecord
}

func (s *fakeSearchLog) RecordSearch(_ context.Context, term string) error {
	s.recorded = append(s.recorded, term)
	return nil
}

func (s *fakeSearchLog) RecentSearches(_ context.Context, limit int) ([]model.SearchRecord, error) {
	if len(s.recent) > limit {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

func falcon() *model.Launch {
	return &model.Launch{
		ID:          "abc123",
		Name:        "Falcon 9",
		WindowStart: "2024-01-01T00:00Z",
		WindowEnd:   "2024-01-01T02:00Z",
		Status:      model.Status{Name: "Go", Description: "Confirmed"},
	}
}

func newRoot() *html.Node {
	return elements.El("main", elements.Attrs{"id": "root"})
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	out, err := elements.Render(n)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func TestParseRoute(t *testing.T) {
	cases := []struct {
		raw  string
		want Route
	}{
		{"/", SearchRoute{}},
		{"/?query=", SearchRoute{}},
		{"/?query=falcon", SearchRoute{Query: "falcon"}},
		{"/?id=abc123", DetailRoute{ID: "abc123"}},
		{"/?id=abc123&query=falcon", DetailRoute{ID: "abc123"}},
		{"/?query=falcon&id=abc123", DetailRoute{ID: "abc123"}},
		{"/?id=&query=falcon", SearchRoute{Query: "falcon"}},
		{"/?id=%20&query=falcon", DetailRoute{ID: " "}},
		{"/?query=%20%20", SearchRoute{Query: "  "}},
	}
	for _, tc := range cases {
		if got := RouteFor(mustURL(t, tc.raw)); got != tc.want {
			t.Errorf("RouteFor(%q) = %#v, want %#v", tc.raw, got, tc.want)
		}
	}
	if got := RouteFor(nil); got != (SearchRoute{}) {
		t.Errorf("RouteFor(nil) = %#v", got)
	}
}

func TestRouteURL(t *testing.T) {
	if got := (SearchRoute{}).URL(); got != "/" {
		t.Errorf("empty search url = %q", got)
	}
	if got := (SearchRoute{Query: "falcon 9&x"}).URL(); got != "/?query=falcon+9%26x" {
		t.Errorf("search url = %q", got)
	}
	if got := (DetailRoute{ID: "abc123"}).URL(); got != "/?id=abc123" {
		t.Errorf("detail url = %q", got)
	}
}

func TestRouter_DetailModeIgnoresQuery(t *testing.T) {
	api := &fakeAPI{launch: falcon()}
	r := NewRouter(api, WithLogger(zerolog.Nop()))
	root := newRoot()

	route := r.Route(context.Background(), root, mustURL(t, "/?id=abc123&query=starship"))

	if _, ok := route.(DetailRoute); !ok {
		t.Fatalf("expected DetailRoute, got %#v", route)
	}
	if len(api.searches) != 0 {
		t.Fatalf("expected no search requests, got %v", api.searches)
	}
	if len(api.launchIDs) != 1 || api.launchIDs[0] != "abc123" {
		t.Fatalf("unexpected launch requests: %v", api.launchIDs)
	}
	if elements.Find(root, elements.ByClass(frontpageClass)) != nil {
		t.Fatalf("front page rendered in detail mode")
	}
}

func TestRouter_FrontPageSearchesOnceWithQuery(t *testing.T) {
	api := &fakeAPI{results: []model.LaunchSummary{{ID: "1", Name: "Falcon 9 Block 5"}}}
	r := NewRouter(api, WithLogger(zerolog.Nop()))
	root := newRoot()

	route := r.Route(context.Background(), root, mustURL(t, "/?query=falcon"))

	if route != (SearchRoute{Query: "falcon"}) {
		t.Fatalf("unexpected route %#v", route)
	}
	if len(api.searches) != 1 || api.searches[0] != "falcon" {
		t.Fatalf("expected exactly one search for falcon, got %v", api.searches)
	}
	if len(api.launchIDs) != 0 {
		t.Fatalf("unexpected launch requests: %v", api.launchIDs)
	}
	link := elements.Find(root, elements.ByTag("a"))
	if href, _ := elements.Attr(link, "href"); href != "/?id=1" {
		t.Fatalf("result link href = %q", href)
	}
	input := elements.Find(root, elements.ByTag("input"))
	if v, _ := elements.Attr(input, "value"); v != "falcon" {
		t.Fatalf("input value = %q", v)
	}
}

func TestRouter_FrontPageWithoutQueryDoesNotSearch(t *testing.T) {
	api := &fakeAPI{}
	r := NewRouter(api, WithLogger(zerolog.Nop()))
	root := newRoot()

	r.Route(context.Background(), root, mustURL(t, "/"))

	if len(api.searches) != 0 || len(api.launchIDs) != 0 {
		t.Fatalf("expected no requests, got searches=%v launches=%v", api.searches, api.launchIDs)
	}
	if elements.Find(root, elements.ByTag("form")) == nil {
		t.Fatalf("search form missing")
	}
	results := elements.Find(root, elements.ByClass(resultsClass))
	if results == nil || results.FirstChild != nil {
		t.Fatalf("expected an empty results region")
	}
}

func TestRouter_ReplacesPreviousView(t *testing.T) {
	api := &fakeAPI{launch: falcon()}
	r := NewRouter(api, WithLogger(zerolog.Nop()))
	root := newRoot()

	r.Route(context.Background(), root, mustURL(t, "/"))
	r.Route(context.Background(), root, mustURL(t, "/?id=abc123"))

	if root.FirstChild == nil || root.FirstChild != root.LastChild {
		t.Fatalf("root must hold exactly one subtree")
	}
	if !elements.HasClass(root.FirstChild, detailsClass) {
		t.Fatalf("root holds %q, want details", render(t, root.FirstChild))
	}
}

func TestRenderDetails_FullRecordWithoutImageOrMission(t *testing.T) {
	api := &fakeAPI{launch: falcon()}
	r := NewRouter(api, WithLogger(zerolog.Nop()))
	root := newRoot()

	r.Route(context.Background(), root, mustURL(t, "/?id=abc123"))
	out := render(t, root)

	for _, want := range []string{"Falcon 9", "2024-01-01T00:00Z - 2024-01-01T02:00Z", "Go - Confirmed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
	if elements.Find(root, elements.ByTag("img")) != nil {
		t.Errorf("unexpected image: %s", out)
	}
	if elements.Find(root, elements.ByClass(missionClass)) != nil || strings.Contains(out, "Mission:") {
		t.Errorf("unexpected mission paragraph: %s", out)
	}
	if elements.Find(root, elements.ByClass(loadingClass)) != nil {
		t.Errorf("loading placeholder left behind: %s", out)
	}
}

func TestRenderDetails_ImageAndMission(t *testing.T) {
	l := falcon()
	l.Image = "https://example.com/f9.jpg"
	l.Mission = &model.Mission{Name: "Starlink", Description: "Internet satellites"}
	r := NewRouter(&fakeAPI{launch: l}, WithLogger(zerolog.Nop()))
	root := newRoot()

	r.RenderDetails(context.Background(), root, "abc123")

	img := elements.Find(root, elements.ByTag("img"))
	if img == nil {
		t.Fatalf("image missing")
	}
	if src, _ := elements.Attr(img, "src"); src != "https://example.com/f9.jpg" {
		t.Errorf("img src = %q", src)
	}
	if alt, _ := elements.Attr(img, "alt"); alt != "Image of Falcon 9" {
		t.Errorf("img alt = %q", alt)
	}
	mission := elements.Find(root, elements.ByClass(missionClass))
	if mission == nil {
		t.Fatalf("mission paragraph missing")
	}
	if got := elements.TextContent(mission); got != "Mission: Starlink - Internet satellites" {
		t.Errorf("mission text = %q", got)
	}
}

func TestRenderDetails_RejectsNonHTTPImage(t *testing.T) {
	l := falcon()
	l.Image = "javascript:alert(1)"
	r := NewRouter(&fakeAPI{launch: l}, WithLogger(zerolog.Nop()))
	root := newRoot()

	r.RenderDetails(context.Background(), root, "abc123")

	if elements.Find(root, elements.ByTag("img")) != nil {
		t.Fatalf("unexpected image for non-http src")
	}
}

func TestRenderDetails_LoadingPlaceholderPresentDuringFetch(t *testing.T) {
	root := newRoot()
	api := &fakeAPI{launch: falcon()}
	var sawLoading bool
	api.onFetchHit = func() {
		sawLoading = elements.Find(root, elements.ByClass(loadingClass)) != nil
	}
	r := NewRouter(api, WithLogger(zerolog.Nop()))

	r.RenderDetails(context.Background(), root, "abc123")

	if !sawLoading {
		t.Fatalf("loading placeholder was not in place before the fetch")
	}
	if elements.Find(root, elements.ByClass(loadingClass)) != nil {
		t.Fatalf("loading placeholder left behind")
	}
}

func TestRenderDetails_NotFound(t *testing.T) {
	r := NewRouter(&fakeAPI{}, WithLogger(zerolog.Nop()))
	root := newRoot()

	r.RenderDetails(context.Background(), root, "missing")
	out := render(t, root)

	if !strings.Contains(out, noDataText) {
		t.Fatalf("expected not-found message: %s", out)
	}
	if elements.Find(root, elements.ByClass(launchClass)) != nil {
		t.Fatalf("unexpected data block: %s", out)
	}
	if elements.Find(root, elements.ByClass(errorClass)) != nil {
		t.Fatalf("unexpected error message: %s", out)
	}
}

func TestRenderDetails_FetchFailureLogsAndShowsError(t *testing.T) {
	var logs bytes.Buffer
	api := &fakeAPI{launchErr: errors.New("connection refused")}
	r := NewRouter(api, WithLogger(zerolog.New(&logs)))
	root := newRoot()

	r.RenderDetails(context.Background(), root, "abc123")
	out := render(t, root)

	errs := elements.FindAll(root, elements.ByClass(errorClass))
	if len(errs) != 1 || elements.TextContent(errs[0]) != detailErrorText {
		t.Fatalf("expected exactly one error message: %s", out)
	}
	if strings.Contains(out, noDataText) {
		t.Fatalf("not-found message shown with error: %s", out)
	}
	if elements.Find(root, elements.ByClass(launchClass)) != nil {
		t.Fatalf("data block shown with error: %s", out)
	}
	if elements.Find(root, elements.ByClass(loadingClass)) != nil {
		t.Fatalf("loading placeholder left behind: %s", out)
	}
	if !strings.Contains(logs.String(), "connection refused") || !strings.Contains(logs.String(), `"id":"abc123"`) {
		t.Fatalf("error was not logged: %s", logs.String())
	}
}

func TestRenderDetails_UpstreamTextRendersLiterally(t *testing.T) {
	l := falcon()
	l.Name = "Falcon 9 <Block 5>"
	l.Mission = &model.Mission{Name: "Crew-8", Description: "<b>ISS</b> rotation & resupply"}
	r := NewRouter(&fakeAPI{launch: l}, WithLogger(zerolog.Nop()))
	root := newRoot()

	r.RenderDetails(context.Background(), root, "abc123")
	out := render(t, root)

	h1 := elements.Find(root, elements.ByTag("h1"))
	if got := elements.TextContent(h1); got != "Falcon 9 <Block 5>" {
		t.Fatalf("heading = %q", got)
	}
	mission := elements.Find(root, elements.ByClass(missionClass))
	if got := elements.TextContent(mission); got != "Mission: Crew-8 - <b>ISS</b> rotation & resupply" {
		t.Fatalf("mission text = %q", got)
	}
	if !strings.Contains(out, "<h1>Falcon 9 &lt;Block 5&gt;</h1>") {
		t.Fatalf("heading not escaped: %s", out)
	}
	if elements.Find(root, elements.ByTag("b")) != nil {
		t.Fatalf("upstream markup became an element: %s", out)
	}
}

func TestRenderDetails_BlankIDIsNotFound(t *testing.T) {
	var logs bytes.Buffer
	api := &fakeAPI{launchErr: launchapi.ErrEmptyID}
	r := NewRouter(api, WithLogger(zerolog.New(&logs)))
	root := newRoot()

	route := r.Route(context.Background(), root, mustURL(t, "/?id=%20"))
	out := render(t, root)

	if route != (DetailRoute{ID: " "}) {
		t.Fatalf("route = %#v", route)
	}
	if len(api.launchIDs) != 1 || api.launchIDs[0] != " " {
		t.Fatalf("fetches = %v", api.launchIDs)
	}
	if !strings.Contains(out, noDataText) {
		t.Fatalf("expected not-found message: %s", out)
	}
	if elements.Find(root, elements.ByClass(errorClass)) != nil || logs.Len() != 0 {
		t.Fatalf("blank id reported as failure: %s %s", out, logs.String())
	}
}

func TestRouter_WhitespaceQuerySearches(t *testing.T) {
	api := &fakeAPI{}
	r := NewRouter(api, WithLogger(zerolog.Nop()))
	root := newRoot()

	r.Route(context.Background(), root, mustURL(t, "/?query=%20%20"))

	if len(api.searches) != 1 || api.searches[0] != "  " {
		t.Fatalf("searches = %q", api.searches)
	}
	if elements.Find(root, elements.ByClass(resultsClass)) == nil {
		t.Fatalf("results region missing")
	}
}

func TestSearchAndRender_States(t *testing.T) {
	t.Run("results", func(t *testing.T) {
		api := &fakeAPI{results: []model.LaunchSummary{
			{ID: "2", Name: "Electron", Status: &model.Status{Name: "Success"}},
			{ID: "1", Name: "Falcon 9"},
		}}
		r := NewRouter(api, WithLogger(zerolog.Nop()))
		results := newResultsRegion()

		r.SearchAndRender(context.Background(), results, "e")

		items := elements.FindAll(results, elements.ByTag("li"))
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if got := elements.TextContent(items[0]); got != "Electron Success" {
			t.Errorf("first item = %q", got)
		}
		if got := elements.TextContent(items[1]); got != "Falcon 9" {
			t.Errorf("second item = %q", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		r := NewRouter(&fakeAPI{results: []model.LaunchSummary{}}, WithLogger(zerolog.Nop()))
		results := newResultsRegion()

		r.SearchAndRender(context.Background(), results, "nothing")

		if got := elements.TextContent(results); !strings.Contains(got, noResultsText("nothing")) {
			t.Fatalf("results = %q", got)
		}
	})

	t.Run("failure", func(t *testing.T) {
		var logs bytes.Buffer
		r := NewRouter(&fakeAPI{searchErr: errors.New("boom")}, WithLogger(zerolog.New(&logs)))
		results := newResultsRegion()

		r.SearchAndRender(context.Background(), results, "falcon")

		if elements.Find(results, elements.ByClass(errorClass)) == nil {
			t.Fatalf("error message missing")
		}
		if elements.Find(results, elements.ByTag("ul")) != nil {
			t.Fatalf("unexpected result list")
		}
		if !strings.Contains(logs.String(), "boom") {
			t.Fatalf("error not logged: %s", logs.String())
		}
	})
}

func TestOnSearch_RendersResultsAndPushesHistory(t *testing.T) {
	api := &fakeAPI{results: []model.LaunchSummary{{ID: "1", Name: "Falcon 9"}}}
	searches := &fakeSearchLog{}
	r := NewRouter(api, WithLogger(zerolog.Nop()), WithSearchLog(searches, 5))
	root := newRoot()
	r.Route(context.Background(), root, mustURL(t, "/"))
	form := elements.Find(root, elements.ByTag("form"))
	history := &fakeHistory{}

	if !r.OnSearch(context.Background(), root, history, "falcon 9") {
		t.Fatalf("expected a search to run")
	}

	if len(api.searches) != 1 || api.searches[0] != "falcon 9" {
		t.Fatalf("expected exactly one search, got %v", api.searches)
	}
	if len(history.pushed) != 1 || history.pushed[0] != "/?query=falcon+9" {
		t.Fatalf("unexpected history pushes: %v", history.pushed)
	}
	if got := elements.Find(root, elements.ByTag("form")); got != form {
		t.Fatalf("form was re-rendered; only the results region may change")
	}
	if len(elements.FindAll(root, elements.ByClass(resultsClass))) != 1 {
		t.Fatalf("expected a single results region")
	}
	if len(searches.recorded) != 1 || searches.recorded[0] != "falcon 9" {
		t.Fatalf("search not recorded: %v", searches.recorded)
	}
}

func TestOnSearch_BlankTermIsIgnored(t *testing.T) {
	api := &fakeAPI{}
	r := NewRouter(api, WithLogger(zerolog.Nop()))
	root := newRoot()
	history := &fakeHistory{}

	if r.OnSearch(context.Background(), root, history, "") {
		t.Fatalf("blank term must not search")
	}
	if len(api.searches) != 0 || len(history.pushed) != 0 {
		t.Fatalf("unexpected side effects: searches=%v pushes=%v", api.searches, history.pushed)
	}
}

func TestOnSearch_CreatesResultsRegionWhenMissing(t *testing.T) {
	api := &fakeAPI{results: []model.LaunchSummary{{ID: "1", Name: "Falcon 9"}}}
	r := NewRouter(api, WithLogger(zerolog.Nop()))
	container := elements.El("div", nil)

	r.OnSearch(context.Background(), container, nil, "falcon")

	if elements.Find(container, elements.ByClass(resultsClass)) == nil {
		t.Fatalf("results region not created")
	}
}

func TestFrontpage_ListsRecentSearches(t *testing.T) {
	searches := &fakeSearchLog{recent: []model.SearchRecord{{Term: "electron"}, {Term: "falcon 9"}}}
	r := NewRouter(&fakeAPI{}, WithLogger(zerolog.Nop()), WithSearchLog(searches, 1))
	root := newRoot()

	r.RenderFrontpage(context.Background(), root, "")

	aside := elements.Find(root, elements.ByClass(recentClass))
	if aside == nil {
		t.Fatalf("recent searches missing")
	}
	links := elements.FindAll(aside, elements.ByTag("a"))
	if len(links) != 1 {
		t.Fatalf("expected limit of 1 link, got %d", len(links))
	}
	if href, _ := elements.Attr(links[0], "href"); href != "/?query=electron" {
		t.Fatalf("href = %q", href)
	}
}
