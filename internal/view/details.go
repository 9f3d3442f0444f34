package view

import (
	"context"
	"errors"
	"net/url"

	"golang.org/x/net/html"

	"github.com/Nixie-Tech-LLC/launches/internal/elements"
	"github.com/Nixie-Tech-LLC/launches/internal/launchapi"
	"github.com/Nixie-Tech-LLC/launches/internal/model"
)

const (
	detailsClass = "details"
	loadingClass = "loading"
	errorClass   = "error"
	launchClass  = "launch"
	missionClass = "mission"
)

// RenderDetails appends the detail view for id to parent. The loading
// placeholder is in place for the duration of the fetch and removed before
// the record, the not-found message or the error message is appended.
func (r *Router) RenderDetails(ctx context.Context, parent *html.Node, id string) {
	container := elements.El("div", elements.Attrs{"class": detailsClass},
		elements.El("p", elements.Attrs{"class": "back"},
			elements.El("a", elements.Attrs{"href": SearchRoute{}.URL()}, backLinkText),
		),
	)
	parent.AppendChild(container)

	loading := setLoading(container)

	launch, err := r.api.GetLaunch(ctx, id)
	elements.Remove(loading)

	if errors.Is(err, launchapi.ErrEmptyID) {
		// a blank id names no launch
		launch, err = nil, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Str("id", id).Msg("failed to fetch launch")
		container.AppendChild(elements.El("p", elements.Attrs{"class": errorClass}, detailErrorText))
		return
	}
	if launch == nil {
		container.AppendChild(elements.El("p", nil, noDataText))
		return
	}
	container.AppendChild(r.launchBlock(launch))
}

func (r *Router) launchBlock(l *model.Launch) *html.Node {
	name := l.Name
	block := elements.El("div", elements.Attrs{"class": launchClass},
		elements.El("h1", nil, name),
		elements.El("p", elements.Attrs{"class": "window"},
			"Window: "+l.WindowStart+" - "+l.WindowEnd),
	)
	if src, ok := imageURL(l.Image); ok {
		block.AppendChild(elements.El("img", elements.Attrs{"src": src, "alt": "Image of " + name}))
	}
	block.AppendChild(elements.El("p", elements.Attrs{"class": "status"},
		"Status: "+l.Status.Name+" - "+l.Status.Description))
	if l.Mission != nil {
		block.AppendChild(elements.El("p", elements.Attrs{"class": missionClass},
			"Mission: "+l.Mission.Name+" - "+l.Mission.Description))
	}
	return block
}

// imageURL accepts absolute http(s) URLs only.
func imageURL(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	return u.String(), true
}

func setLoading(container *html.Node) *html.Node {
	loading := elements.El("div", elements.Attrs{"class": loadingClass}, loadingText)
	container.AppendChild(loading)
	return loading
}
