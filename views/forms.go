package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/flyballhub/hubsite/contact"
)

// ContactFormState carries everything needed to render the contact form,
// including previous values and validation errors on re-render.
type ContactFormState struct {
	CSRF       string
	Slug       string
	BlockKey   string
	ButtonText string

	Values contact.Submission
	Errors contact.FieldErrors

	// Set after a successful send; replaces the form.
	Success        bool
	SuccessMessage string
	// Set when the mail provider rejected the send.
	SendFailed bool
}

// ContactForm renders the form as a standalone component for the POST
// /contact/ response.
func ContactForm(state ContactFormState) templ.Component {
	return component(func(buf *bytes.Buffer) {
		WriteContactForm(buf, state)
	})
}

// WriteContactForm writes the contact form, its error states or its success
// confirmation. The form posts via htmx and swaps itself.
func WriteContactForm(buf *bytes.Buffer, state ContactFormState) {
	if state.Success {
		msg := state.SuccessMessage
		if msg == "" {
			msg = "Thank you! We'll get back to you soon."
		}
		buf.WriteString(`<div class="contact-success" role="status">` + e(msg) + `</div>`)
		return
	}

	buf.WriteString(`<form class="contact-form" method="post" action="/contact/" hx-post="/contact/" hx-target="this" hx-swap="outerHTML">`)
	buf.WriteString(`<input type="hidden" name="_csrf" value="` + e(state.CSRF) + `">`)
	buf.WriteString(`<input type="hidden" name="slug" value="` + e(state.Slug) + `">`)
	buf.WriteString(`<input type="hidden" name="block" value="` + e(state.BlockKey) + `">`)

	if state.SendFailed {
		buf.WriteString(`<p class="form-error" role="alert">Something went wrong sending your message. Please try again.</p>`)
	}

	writeField(buf, state, "name", "Name", "text", state.Values.Name, true)
	writeField(buf, state, "email", "Email", "email", state.Values.Email, true)
	writeField(buf, state, "subject", "Subject", "text", state.Values.Subject, false)

	buf.WriteString(`<div class="form-field">`)
	buf.WriteString(`<label for="contact-message">Message</label>`)
	buf.WriteString(`<textarea id="contact-message" name="message" rows="6" required>` + e(state.Values.Message) + `</textarea>`)
	writeFieldErrors(buf, state.Errors, "message")
	buf.WriteString(`</div>`)

	text := state.ButtonText
	if text == "" {
		text = "Send Message"
	}
	buf.WriteString(`<button type="submit" class="btn btn-default">` + e(text) + `</button>`)
	buf.WriteString(`</form>`)
}

func writeField(buf *bytes.Buffer, state ContactFormState, name, label, typ, value string, required bool) {
	id := "contact-" + name
	buf.WriteString(`<div class="form-field">`)
	buf.WriteString(`<label for="` + id + `">` + e(label) + `</label>`)
	buf.WriteString(`<input id="` + id + `" type="` + typ + `" name="` + name + `" value="` + e(value) + `"`)
	if required {
		buf.WriteString(` required`)
	}
	if len(state.Errors[name]) > 0 {
		buf.WriteString(` aria-invalid="true"`)
	}
	buf.WriteString(`>`)
	writeFieldErrors(buf, state.Errors, name)
	buf.WriteString(`</div>`)
}

func writeFieldErrors(buf *bytes.Buffer, errs contact.FieldErrors, field string) {
	for _, msg := range errs[field] {
		buf.WriteString(`<p class="field-error">` + e(msg) + `</p>`)
	}
}

// NewsletterResult replaces the subscribe form after a POST /subscribe/.
func NewsletterResult(ok bool, message string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		if ok {
			buf.WriteString(`<p class="newsletter-success" role="status">` + e(message) + `</p>`)
			return
		}
		buf.WriteString(`<p class="newsletter-error" role="alert">` + e(message) + `</p>`)
	})
}
