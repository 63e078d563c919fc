package hubsite

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/flyballhub/hubsite/builder"
	"github.com/flyballhub/hubsite/content"
	"github.com/flyballhub/hubsite/geo"
	"github.com/flyballhub/hubsite/teams"
	"github.com/flyballhub/hubsite/views"
)

// homeSlug is the page document served at the root route.
const homeSlug = "index"

func (a *App) handleHome(c echo.Context) error {
	return a.renderPage(c, homeSlug, false)
}

func (a *App) handlePage(c echo.Context) error {
	return a.renderPage(c, c.Param("slug"), false)
}

func (a *App) renderPage(c echo.Context, slug string, preview bool) error {
	var page content.Page
	var err error
	if preview {
		page, err = a.Store.GetPageAny(slug)
	} else {
		page, err = a.Cache.GetPage(slug)
	}
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound,
				views.Layout(a.Config.viewConfig(), views.PageMeta{Title: "Not found", NoIndex: true}, views.NotFound()))
		}
		return err
	}
	if preview {
		// Pending editor patches shadow the stored document.
		page = *a.Overlay.ResolvePage(&page)
	}

	rc, err := a.renderContext(c, &page, preview, c.QueryParam("q"))
	if err != nil {
		return err
	}

	meta := views.PageMeta{
		Title:       page.Title,
		Description: page.Description,
		URL:         a.canonicalURL(slug),
		OGType:      "website",
		NoIndex:     preview,
	}
	body := a.Blocks.RenderPage(rc, &page)
	return Render(c, views.Layout(a.Config.viewConfig(), meta, body))
}

// handleFragment serves a single block for deferred loading. The team finder
// also reloads itself through here with a ?q= search applied.
func (a *App) handleFragment(c echo.Context) error {
	slug := c.Param("slug")
	key := c.Param("key")

	page, err := a.Cache.GetPage(slug)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}

	var block *content.Block
	for i := range page.Blocks {
		if page.Blocks[i].Key == key {
			block = &page.Blocks[i]
			break
		}
	}
	if block == nil {
		return c.NoContent(http.StatusNotFound)
	}

	rc, err := a.blockContext(c, &page, *block, false, c.QueryParam("q"))
	if err != nil {
		return err
	}
	return Render(c, a.Blocks.RenderFragment(rc, *block))
}

// renderContext resolves the data every block on the page may need.
func (a *App) renderContext(c echo.Context, page *content.Page, preview bool, teamQuery string) (builder.RenderContext, error) {
	rc := builder.RenderContext{
		DocumentID:   page.ID,
		DocumentType: page.Type,
		Slug:         page.Slug,
		CSRF:         CsrfToken(c),
		TeamQuery:    teamQuery,
		Preview:      preview,
	}
	needPosts, needTeams := false, false
	for _, b := range page.Blocks {
		switch b.Type {
		case "latestPosts":
			needPosts = true
		case "teamFinder":
			needTeams = true
		}
	}
	return a.fillContext(c, rc, needPosts, needTeams)
}

// blockContext resolves data for a single block fragment.
func (a *App) blockContext(c echo.Context, page *content.Page, b content.Block, preview bool, teamQuery string) (builder.RenderContext, error) {
	rc := builder.RenderContext{
		DocumentID:   page.ID,
		DocumentType: page.Type,
		Slug:         page.Slug,
		CSRF:         CsrfToken(c),
		TeamQuery:    teamQuery,
		Preview:      preview,
	}
	return a.fillContext(c, rc, b.Type == "latestPosts", b.Type == "teamFinder")
}

func (a *App) fillContext(c echo.Context, rc builder.RenderContext, needPosts, needTeams bool) (builder.RenderContext, error) {
	if needPosts {
		posts, err := a.Cache.ListPosts()
		if err != nil {
			return rc, err
		}
		rc.Posts = posts
	}
	if needTeams {
		ctx := c.Request().Context()
		list, _ := a.teams.ListOrFallback(ctx, a.Config.TeamFinderLimit)
		var origin *geo.Coords
		if rc.TeamQuery != "" {
			// An unresolvable location still shows the full list, alphabetical.
			origin = a.geocoder.Geocode(ctx, rc.TeamQuery)
			rc.GeocodeFailed = origin == nil
		}
		rc.Teams = teams.Rank(list, origin)
	}
	return rc, nil
}

func (a *App) handleBlogIndex(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	cfg := a.Config.viewConfig()
	meta := views.PageMeta{
		Title:       "News",
		Description: "Latest news and updates from " + a.Config.Name,
		URL:         a.canonicalURL("blog"),
		OGType:      "website",
	}
	return Render(c, views.Layout(cfg, meta, views.BlogIndex(cfg, posts, a.imgb)))
}

func (a *App) handleBlogPost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Cache.GetPost(slug)
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound,
				views.Layout(a.Config.viewConfig(), views.PageMeta{Title: "Not found", NoIndex: true}, views.NotFound()))
		}
		return err
	}
	cfg := a.Config.viewConfig()
	meta := views.PageMeta{
		Title:       post.Title,
		Description: post.Description,
		URL:         BuildURL(a.Config.URL, "blog", post.Slug),
		OGType:      "article",
	}
	if post.Image.Valid() {
		meta.OGImage = a.imgb.URL(post.Image, 1200)
	}
	return Render(c, views.Layout(cfg, meta, views.BlogPost(cfg, post, a.imgb)))
}

// handleTeamsJSON exposes the ranked team directory as JSON for client-side
// consumers. A ?q= parameter ranks by distance from the geocoded location.
func (a *App) handleTeamsJSON(c echo.Context) error {
	ctx := c.Request().Context()
	list, live := a.teams.ListOrFallback(ctx, a.Config.TeamFinderLimit)

	query := c.QueryParam("q")
	geocodeFailed := false
	var origin *geo.Coords
	if query != "" {
		origin = a.geocoder.Geocode(ctx, query)
		geocodeFailed = origin == nil
	}
	ranked := teams.Rank(list, origin)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":           ranked,
		"live":           live,
		"query":          query,
		"geocode_failed": geocodeFailed,
	})
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nDisallow: /admin/\nDisallow: /preview/\n\nSitemap: " +
		strings.TrimSuffix(a.Config.URL, "/") + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

func (a *App) canonicalURL(slug string) string {
	if slug == homeSlug {
		return BuildURL(a.Config.URL)
	}
	return BuildURL(a.Config.URL, slug)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	cfg := a.Config.viewConfig()
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound,
			views.Layout(cfg, views.PageMeta{Title: "Not found", NoIndex: true}, views.NotFound()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code,
			views.Layout(cfg, views.PageMeta{Title: "Error", NoIndex: true}, views.ServerError()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
