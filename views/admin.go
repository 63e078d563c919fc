package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/flyballhub/hubsite/content"
	"github.com/flyballhub/hubsite/schema"
)

// adminLayout wraps admin bodies in a minimal chrome separate from the public
// layout. Admin pages are never indexed.
func adminLayout(title string, body func(buf *bytes.Buffer)) templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		buf.WriteString(`<meta name="robots" content="noindex, nofollow">`)
		buf.WriteString(`<title>` + e(title) + `</title>`)
		buf.WriteString(`<link rel="stylesheet" href="/public/admin.css">`)
		buf.WriteString(`<script src="https://unpkg.com/htmx.org@1.9.12/dist/htmx.min.js" defer></script>`)
		buf.WriteString(`</head><body class="admin">`)
		body(buf)
		buf.WriteString(`</body></html>`)
	})
}

// AdminLogin renders the login form, optionally with a failure notice.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return adminLayout("Login", func(buf *bytes.Buffer) {
		buf.WriteString(`<main class="admin-login"><h1>Sign in</h1>`)
		if showError {
			buf.WriteString(`<p class="form-error" role="alert">Wrong password, or too many attempts. Wait a minute and try again.</p>`)
		}
		buf.WriteString(`<form method="post" action="/admin/login/">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + e(csrfToken) + `">`)
		buf.WriteString(`<label for="password">Password</label>`)
		buf.WriteString(`<input id="password" type="password" name="password" required autofocus>`)
		buf.WriteString(`<button type="submit">Sign in</button>`)
		buf.WriteString(`</form></main>`)
	})
}

// AdminDashboard lists pages and posts with edit links.
func AdminDashboard(pages []content.Page, posts []content.Post, message, csrfToken string) templ.Component {
	return adminLayout("Dashboard", func(buf *bytes.Buffer) {
		buf.WriteString(`<main class="admin-dashboard"><header class="admin-header"><h1>Dashboard</h1>`)
		buf.WriteString(`<form method="post" action="/admin/logout/"><input type="hidden" name="_csrf" value="` + e(csrfToken) + `"><button type="submit">Sign out</button></form>`)
		buf.WriteString(`</header>`)
		if message != "" {
			buf.WriteString(`<p class="admin-message" role="status">` + e(message) + `</p>`)
		}

		buf.WriteString(`<section><h2>Pages</h2><p><a class="admin-new" href="/admin/pages/new/">New page</a></p><table class="admin-table"><thead><tr><th>Title</th><th>Slug</th><th>Blocks</th><th>Status</th></tr></thead><tbody>`)
		for _, p := range pages {
			status := "draft"
			if p.Published {
				status = "published"
			}
			buf.WriteString(`<tr><td><a href="/admin/pages/` + PathEscape(p.Slug) + `/">` + e(p.Title) + `</a></td>`)
			buf.WriteString(`<td>` + e(p.Slug) + `</td><td>` + itoa(len(p.Blocks)) + `</td><td>` + status + `</td></tr>`)
		}
		buf.WriteString(`</tbody></table></section>`)

		buf.WriteString(`<section><h2>Posts</h2><p><a class="admin-new" href="/admin/posts/new/">New post</a></p><table class="admin-table"><thead><tr><th>Title</th><th>Date</th><th>Status</th></tr></thead><tbody>`)
		for _, p := range posts {
			status := "draft"
			if p.Published {
				status = "published"
			}
			buf.WriteString(`<tr><td><a href="/admin/posts/` + PathEscape(p.Slug) + `/">` + e(p.Title) + `</a></td>`)
			buf.WriteString(`<td>` + e(p.Date) + `</td><td>` + status + `</td></tr>`)
		}
		buf.WriteString(`</tbody></table></section>`)

		buf.WriteString(`<nav class="admin-links"><a href="/admin/redirects/">Redirects</a> <a href="/admin/images/">Images</a></nav></main>`)
	})
}

// AdminPageForm edits one page document. The builder array is edited as raw
// JSON; validation issues from the last save attempt render above the form.
func AdminPageForm(page content.Page, blocksJSON string, issues []schema.Issue, csrfToken string) templ.Component {
	return adminLayout("Edit page", func(buf *bytes.Buffer) {
		buf.WriteString(`<main class="admin-form"><p><a href="/admin/">&larr; Dashboard</a></p>`)
		buf.WriteString(`<h1>Edit page</h1>`)
		writeIssues(buf, issues)
		buf.WriteString(`<form method="post" action="/admin/pages/save/">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + e(csrfToken) + `">`)
		buf.WriteString(`<input type="hidden" name="id" value="` + e(page.ID) + `">`)
		writeInput(buf, "slug", "Slug", page.Slug)
		writeInput(buf, "title", "Title", page.Title)
		writeInput(buf, "description", "Description", page.Description)
		buf.WriteString(`<label for="blocks">Page builder (JSON)</label>`)
		buf.WriteString(`<textarea id="blocks" name="blocks" rows="24" spellcheck="false">` + e(blocksJSON) + `</textarea>`)
		writePublishedToggle(buf, page.Published)
		buf.WriteString(`<button type="submit">Save</button>`)
		if page.ID != "" {
			buf.WriteString(` <a class="admin-preview" href="/preview/` + PathEscape(page.Slug) + `/" target="_blank">Preview</a>`)
		}
		buf.WriteString(`</form></main>`)
	})
}

// AdminPostForm edits one blog post.
func AdminPostForm(post content.Post, bodyJSON string, csrfToken string) templ.Component {
	return adminLayout("Edit post", func(buf *bytes.Buffer) {
		buf.WriteString(`<main class="admin-form"><p><a href="/admin/">&larr; Dashboard</a></p>`)
		buf.WriteString(`<h1>Edit post</h1>`)
		buf.WriteString(`<form method="post" action="/admin/posts/save/">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + e(csrfToken) + `">`)
		writeInput(buf, "slug", "Slug", post.Slug)
		writeInput(buf, "title", "Title", post.Title)
		writeInput(buf, "description", "Description", post.Description)
		writeInput(buf, "date", "Published at", post.Date)
		buf.WriteString(`<label for="body">Body (rich text JSON)</label>`)
		buf.WriteString(`<textarea id="body" name="body" rows="24" spellcheck="false">` + e(bodyJSON) + `</textarea>`)
		writePublishedToggle(buf, post.Published)
		buf.WriteString(`<button type="submit">Save</button>`)
		buf.WriteString(`</form></main>`)
	})
}

// AdminRedirects manages the redirect table.
func AdminRedirects(redirects [][2]string, message, csrfToken string) templ.Component {
	return adminLayout("Redirects", func(buf *bytes.Buffer) {
		buf.WriteString(`<main class="admin-form"><p><a href="/admin/">&larr; Dashboard</a></p>`)
		buf.WriteString(`<h1>Redirects</h1>`)
		if message != "" {
			buf.WriteString(`<p class="admin-message" role="status">` + e(message) + `</p>`)
		}
		buf.WriteString(`<table class="admin-table"><thead><tr><th>From</th><th>To</th><th></th></tr></thead><tbody>`)
		for _, r := range redirects {
			buf.WriteString(`<tr><td>` + e(r[0]) + `</td><td>` + e(r[1]) + `</td>`)
			buf.WriteString(`<td><form method="post" action="/admin/redirects/delete/">`)
			buf.WriteString(`<input type="hidden" name="_csrf" value="` + e(csrfToken) + `">`)
			buf.WriteString(`<input type="hidden" name="from" value="` + e(r[0]) + `">`)
			buf.WriteString(`<button type="submit">Delete</button></form></td></tr>`)
		}
		buf.WriteString(`</tbody></table>`)
		buf.WriteString(`<h2>Add redirect</h2><form method="post" action="/admin/redirects/save/">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + e(csrfToken) + `">`)
		writeInput(buf, "from", "From path", "")
		writeInput(buf, "to", "To path or URL", "")
		buf.WriteString(`<button type="submit">Add</button></form></main>`)
	})
}

// AdminImage is one uploaded image row in the media library.
type AdminImage struct {
	Filename   string
	URL        string
	Width      int
	Height     int
	Size       int
	UploadedAt string
}

// AdminImages renders the media library with an upload form.
func AdminImages(images []AdminImage, csrfToken string) templ.Component {
	return adminLayout("Images", func(buf *bytes.Buffer) {
		buf.WriteString(`<main class="admin-form"><p><a href="/admin/">&larr; Dashboard</a></p>`)
		buf.WriteString(`<h1>Images</h1>`)
		buf.WriteString(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + e(csrfToken) + `">`)
		buf.WriteString(`<label for="image">Upload image</label>`)
		buf.WriteString(`<input id="image" type="file" name="image" accept="image/*" required>`)
		buf.WriteString(`<button type="submit">Upload</button></form>`)
		buf.WriteString(`<table class="admin-table"><thead><tr><th>Preview</th><th>Filename</th><th>Dimensions</th><th>Size</th><th></th></tr></thead><tbody>`)
		for _, img := range images {
			buf.WriteString(`<tr><td><img src="` + e(img.URL) + `" alt="" width="80" loading="lazy"></td>`)
			buf.WriteString(`<td><code>` + e(img.URL) + `</code></td>`)
			buf.WriteString(`<td>` + itoa(img.Width) + `&times;` + itoa(img.Height) + `</td>`)
			buf.WriteString(`<td>` + itoa(img.Size/1024) + ` KB</td>`)
			buf.WriteString(`<td><button hx-delete="/admin/images/` + PathEscape(img.Filename) + `/" hx-headers='{"X-CSRF-Token":"` + e(csrfToken) + `"}' hx-confirm="Delete this image?" hx-target="body">Delete</button></td></tr>`)
		}
		buf.WriteString(`</tbody></table></main>`)
	})
}

func writeInput(buf *bytes.Buffer, name, label, value string) {
	buf.WriteString(`<label for="` + name + `">` + e(label) + `</label>`)
	buf.WriteString(`<input id="` + name + `" type="text" name="` + name + `" value="` + e(value) + `">`)
}

func writePublishedToggle(buf *bytes.Buffer, published bool) {
	buf.WriteString(`<label class="admin-toggle"><input type="checkbox" name="published" value="1"`)
	if published {
		buf.WriteString(` checked`)
	}
	buf.WriteString(`> Published</label>`)
}

func writeIssues(buf *bytes.Buffer, issues []schema.Issue) {
	if len(issues) == 0 {
		return
	}
	buf.WriteString(`<ul class="admin-issues">`)
	for _, i := range issues {
		class := "issue-warning"
		if i.Severity == schema.Error {
			class = "issue-error"
		}
		buf.WriteString(`<li class="` + class + `">` + e(i.String()) + `</li>`)
	}
	buf.WriteString(`</ul>`)
}
