package hubsite

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flyballhub/hubsite/contact"
	"github.com/flyballhub/hubsite/content"
	"github.com/flyballhub/hubsite/views"
)

// handleContact validates and dispatches a contact form submission. The
// response is the form fragment itself: re-rendered with errors, or replaced
// by the success message.
func (a *App) handleContact(c echo.Context) error {
	state := views.ContactFormState{
		CSRF:     CsrfToken(c),
		Slug:     c.FormValue("slug"),
		BlockKey: c.FormValue("block"),
	}

	if !a.formLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many submissions. Try again later.")
	}

	sub := contact.Submission{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Subject: c.FormValue("subject"),
		Message: c.FormValue("message"),
	}
	state.Values = sub

	if errs := contact.Validate(sub); errs != nil {
		state.Errors = errs
		return RenderStatus(c, http.StatusUnprocessableEntity, views.ContactForm(state))
	}

	msg := contact.BuildMessage(sub, a.Config.ContactFrom, a.Config.ContactTo)
	if err := a.mailer.Send(c.Request().Context(), msg); err != nil {
		c.Logger().Errorf("contact: send failed: %v", err)
		state.SendFailed = true
		return RenderStatus(c, http.StatusBadGateway, views.ContactForm(state))
	}

	state.Success = true
	state.SuccessMessage = a.successMessageFor(state.Slug, state.BlockKey)
	return Render(c, views.ContactForm(state))
}

// successMessageFor pulls the editor-authored success copy from the contact
// block that submitted the form, falling back to the default.
func (a *App) successMessageFor(slug, key string) string {
	if slug == "" || key == "" {
		return ""
	}
	page, err := a.Cache.GetPage(slug)
	if err != nil {
		return ""
	}
	for _, b := range page.Blocks {
		if b.Key != key {
			continue
		}
		if cf, ok := b.Data.(*content.ContactFormBlock); ok {
			return cf.SuccessMessage
		}
	}
	return ""
}

// handleSubscribe records a newsletter signup.
func (a *App) handleSubscribe(c echo.Context) error {
	if !a.formLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many submissions. Try again later.")
	}
	email := c.FormValue("email")
	if !contact.ValidateEmail(email) {
		return RenderStatus(c, http.StatusUnprocessableEntity,
			views.NewsletterResult(false, "Please enter a valid email address"))
	}
	if err := a.Store.AddSubscriber(email, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return Render(c, views.NewsletterResult(true, "You're subscribed! Watch your inbox."))
}
