// Package contact validates contact form submissions and dispatches them to
// a transactional email provider. Validation evaluates every rule so the
// submitter sees all violations at once rather than one at a time.
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Field length limits.
const (
	NameMin    = 2
	NameMax    = 100
	SubjectMax = 200
	MessageMin = 10
	MessageMax = 5000
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission is one contact form post.
type Submission struct {
	Name    string
	Email   string
	Subject string // optional
	Message string
}

// FieldErrors maps field name to its violation messages.
type FieldErrors map[string][]string

// Validate checks every field independently and returns nil when the
// submission is acceptable.
func Validate(s Submission) FieldErrors {
	errs := FieldErrors{}

	name := strings.TrimSpace(s.Name)
	if len(name) < NameMin {
		errs["name"] = append(errs["name"], fmt.Sprintf("Name must be at least %d characters", NameMin))
	} else if len(name) > NameMax {
		errs["name"] = append(errs["name"], fmt.Sprintf("Name must be less than %d characters", NameMax))
	}

	if s.Email == "" || !emailPattern.MatchString(s.Email) {
		errs["email"] = append(errs["email"], "Please enter a valid email address")
	}

	if s.Subject != "" && len(s.Subject) > SubjectMax {
		errs["subject"] = append(errs["subject"], fmt.Sprintf("Subject must be less than %d characters", SubjectMax))
	}

	msg := strings.TrimSpace(s.Message)
	if len(msg) < MessageMin {
		errs["message"] = append(errs["message"], fmt.Sprintf("Message must be at least %d characters", MessageMin))
	} else if len(msg) > MessageMax {
		errs["message"] = append(errs["message"], fmt.Sprintf("Message must be less than %d characters", MessageMax))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateEmail checks a bare email address (newsletter subscribe).
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Message is an outbound email.
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

// Mailer delivers outbound email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// HTTPMailer posts messages to a Resend-style /emails endpoint with bearer
// authentication.
type HTTPMailer struct {
	Endpoint string // e.g. "https://api.resend.com/emails"
	APIKey   string
	Client   *http.Client
}

// Send delivers msg, returning an error for any non-2xx response.
func (m *HTTPMailer) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := m.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("contact: mail provider returned %d", resp.StatusCode)
	}
	return nil
}

// BuildMessage formats a validated submission as an email to the site inbox.
func BuildMessage(s Submission, from string, to []string) Message {
	subject := s.Subject
	if subject == "" {
		subject = "New contact form submission from " + s.Name
	}

	var htmlBuf bytes.Buffer
	htmlBuf.WriteString("<h2>New Contact Form Submission</h2>")
	htmlBuf.WriteString("<p><strong>Name:</strong> " + html.EscapeString(s.Name) + "</p>")
	htmlBuf.WriteString("<p><strong>Email:</strong> " + html.EscapeString(s.Email) + "</p>")
	if s.Subject != "" {
		htmlBuf.WriteString("<p><strong>Subject:</strong> " + html.EscapeString(s.Subject) + "</p>")
	}
	htmlBuf.WriteString("<p><strong>Message:</strong></p>")
	htmlBuf.WriteString("<p>" + strings.ReplaceAll(html.EscapeString(s.Message), "\n", "<br>") + "</p>")

	var textBuf bytes.Buffer
	textBuf.WriteString("New Contact Form Submission\n\n")
	textBuf.WriteString("Name: " + s.Name + "\n")
	textBuf.WriteString("Email: " + s.Email + "\n")
	if s.Subject != "" {
		textBuf.WriteString("Subject: " + s.Subject + "\n")
	}
	textBuf.WriteString("\nMessage:\n" + s.Message + "\n")

	return Message{
		From:    from,
		To:      to,
		ReplyTo: s.Email,
		Subject: subject,
		HTML:    htmlBuf.String(),
		Text:    textBuf.String(),
	}
}
