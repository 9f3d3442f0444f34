package pages

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/Nixie-Tech-LLC/launches/internal/elements"
	"github.com/Nixie-Tech-LLC/launches/internal/http/api"
	"github.com/Nixie-Tech-LLC/launches/internal/model"
	"github.com/Nixie-Tech-LLC/launches/internal/view"
)

// PushURLHeader carries the location the client pushes onto its history
// after a search fragment is applied.
const PushURLHeader = "X-Push-Url"

const (
	layoutTemplate = "layout.html"
	fragmentType   = "text/html; charset=utf-8"
)

type PageController struct {
	router *view.Router
}

func newPageController(router *view.Router) *PageController {
	return &PageController{router: router}
}

// PagesModule mounts the HTML pages and the fragments the client script uses.
func PagesModule(router *view.Router) api.Module {
	ctl := newPageController(router)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/", ctl.index)
		c.GET("/view", ctl.fragment)
		c.GET("/search", ctl.search)
	})
}

// headerHistory hands the pushed location to the client in a response header.
type headerHistory struct {
	ctx *gin.Context
}

func (h headerHistory) PushState(location string) {
	h.ctx.Header(PushURLHeader, location)
}

func newRoot() *html.Node {
	return elements.El("main", elements.Attrs{"id": "root"})
}

// index renders the full page for the current location.
func (p *PageController) index(ctx *gin.Context) {
	root := newRoot()
	route := p.router.Route(ctx.Request.Context(), root, ctx.Request.URL)

	body, err := elements.Render(root)
	if err != nil {
		p.renderFailed(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, layoutTemplate, model.PageData{
		Title: title(route),
		Root:  template.HTML(body),
	})
}

// fragment renders only the content of the root container, for back/forward
// navigation on the client.
func (p *PageController) fragment(ctx *gin.Context) {
	root := newRoot()
	p.router.Route(ctx.Request.Context(), root, ctx.Request.URL)

	body, err := elements.RenderChildren(root)
	if err != nil {
		p.renderFailed(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, fragmentType, []byte(body))
}

// search re-renders the results region for a submitted term and tells the
// client which location to push.
func (p *PageController) search(ctx *gin.Context) {
	container := elements.El("div", nil)
	if !p.router.OnSearch(ctx.Request.Context(), container, headerHistory{ctx: ctx}, ctx.Query("query")) {
		ctx.Status(http.StatusNoContent)
		return
	}

	body, err := elements.RenderChildren(container)
	if err != nil {
		p.renderFailed(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, fragmentType, []byte(body))
}

func (p *PageController) renderFailed(ctx *gin.Context, err error) {
	log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("failed to render page")
	ctx.String(http.StatusInternalServerError, "failed to render page")
}

func title(route view.Route) string {
	if _, ok := route.(view.DetailRoute); ok {
		return "Launch details"
	}
	return "Launch search"
}
