package hubsite

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/flyballhub/hubsite/content"
	"github.com/flyballhub/hubsite/schema"
	"github.com/flyballhub/hubsite/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(c.RealIP())
	return Render(c, views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	pages, err := a.Store.ListAllPages()
	if err != nil {
		return err
	}
	posts, err := a.Store.ListAllPosts()
	if err != nil {
		return err
	}
	return Render(c, views.AdminDashboard(pages, posts, msg, CsrfToken(c)))
}

func (a *App) handleAdminPageNew(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, views.AdminPageForm(content.Page{}, "[]", nil, CsrfToken(c)))
}

func (a *App) handleAdminPageEdit(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	page, err := a.Store.GetPageAny(c.Param("slug"))
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, views.AdminPageForm(page, blocksJSON(page.Blocks), nil, CsrfToken(c)))
}

func (a *App) handleAdminPageSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+title+or+slug.")
	}

	page := content.Page{
		ID:          strings.TrimSpace(c.FormValue("id")),
		Type:        "page",
		Slug:        slug,
		Title:       title,
		Description: strings.TrimSpace(c.FormValue("description")),
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
		Published:   c.FormValue("published") != "",
	}

	rawBlocks := c.FormValue("blocks")
	blocks, err := content.DecodeBlocks([]byte(rawBlocks))
	if err != nil {
		issues := []schema.Issue{{Severity: schema.Error, Message: "page builder is not valid JSON: " + err.Error()}}
		return Render(c, views.AdminPageForm(page, rawBlocks, issues, CsrfToken(c)))
	}
	blocks = mintBlockKeys(blocks)
	page.Blocks = blocks

	var issues []schema.Issue
	for _, b := range blocks {
		issues = append(issues, schema.ValidateBlock(b.Type, b.Key, b.Raw)...)
	}
	if schema.HasErrors(issues) {
		return Render(c, views.AdminPageForm(page, blocksJSON(blocks), issues, CsrfToken(c)))
	}

	saved, err := a.Store.SavePage(page)
	if err != nil {
		return err
	}
	a.Cache.Invalidate()
	// A publish supersedes any pending preview patch.
	a.Overlay.Clear(saved.ID)

	if len(issues) > 0 {
		return Render(c, views.AdminPageForm(saved, blocksJSON(blocks), issues, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminPageDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Store.DeletePage(c.Param("slug")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) handleAdminPostNew(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, views.AdminPostForm(content.Post{}, "[]", CsrfToken(c)))
}

func (a *App) handleAdminPostEdit(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post, err := a.Store.GetPostAny(c.Param("slug"))
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	body, err := json.Marshal(post.Body)
	if err != nil {
		return err
	}
	return Render(c, views.AdminPostForm(post, string(body), CsrfToken(c)))
}

func (a *App) handleAdminPostSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+title+or+slug.")
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
	}

	post := content.Post{
		Slug:        slug,
		Title:       title,
		Description: strings.TrimSpace(c.FormValue("description")),
		Date:        date,
		Published:   c.FormValue("published") != "",
	}
	if body := c.FormValue("body"); body != "" {
		if err := json.Unmarshal([]byte(body), &post.Body); err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Post+body+is+not+valid+JSON.")
		}
	}

	if err := a.Store.SavePost(post); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminPostDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Store.DeletePost(c.Param("slug")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) handleAdminRedirects(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return a.renderAdminRedirects(c, c.QueryParam("msg"))
}

func (a *App) handleAdminRedirectSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	from := c.FormValue("from")
	to := strings.TrimSpace(c.FormValue("to"))
	if strings.TrimSpace(from) == "" || to == "" {
		return a.renderAdminRedirects(c, "Both fields are required.")
	}
	if err := a.Store.SaveRedirect(from, to); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminRedirects(c, "saved")
}

func (a *App) handleAdminRedirectDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Store.DeleteRedirect(c.FormValue("from")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminRedirects(c, "deleted")
}

func (a *App) renderAdminRedirects(c echo.Context, msg string) error {
	redirects, err := a.Store.ListRedirects()
	if err != nil {
		return err
	}
	return Render(c, views.AdminRedirects(redirects, msg, CsrfToken(c)))
}

// mintBlockKeys assigns a key to any block saved without one. Existing keys
// are never touched; editor paths and fragment URLs depend on their
// stability.
func mintBlockKeys(blocks []content.Block) []content.Block {
	for i := range blocks {
		if blocks[i].Key != "" {
			continue
		}
		key := uuid.NewString()
		blocks[i].Key = key
		// Rewrite the raw payload so the key round-trips through the store.
		var payload map[string]json.RawMessage
		if err := json.Unmarshal(blocks[i].Raw, &payload); err != nil {
			continue
		}
		keyJSON, _ := json.Marshal(key)
		payload["_key"] = keyJSON
		if raw, err := json.Marshal(payload); err == nil {
			blocks[i].Raw = raw
		}
	}
	return blocks
}

func blocksJSON(blocks []content.Block) string {
	raw, err := content.EncodeBlocks(blocks)
	if err != nil {
		return "[]"
	}
	return string(raw)
}
