package notify

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/formd/formd/pkg/form"
)

// timestampLayout is the explicit date/time format stamped into messages.
const timestampLayout = "2006-01-02 15:04:05"

// notAvailable is rendered for absent optional fields.
const notAvailable = "N/A"

var bodyTemplate = template.Must(template.New("email").Parse(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2>New Contact Form Submission</h2>

    <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h3 style="margin-top: 0;">Contact Information</h3>
        <p><strong>Name:</strong> {{.Name}}</p>
        <p><strong>Email:</strong> {{.Email}}</p>
        <p><strong>Company:</strong> {{.Company}}</p>
    </div>

    <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h3 style="margin-top: 0;">Project Details</h3>
        <p><strong>Project Type:</strong> {{.ProjectType}}</p>
        <p><strong>Budget:</strong> {{.Budget}}</p>
        <p><strong>Timeline:</strong> {{.Timeline}}</p>
        <p><strong>Location:</strong> {{.Location}}</p>
    </div>

    <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h3 style="margin-top: 0;">Project Description</h3>
        <p>{{.Description}}</p>
    </div>

    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #dee2e6;">
        <p style="color: #666; font-size: 12px;">Submitted on {{.Timestamp}}</p>
    </div>
</body>
</html>
`))

// Message is a rendered notification for one submission.
type Message struct {
	sub *form.Submission
	at  time.Time
}

// Compose pairs a validated submission with its timestamp for rendering.
func Compose(sub *form.Submission, at time.Time) *Message {
	return &Message{sub: sub, at: at.UTC()}
}

// Subject returns the email subject line.
func (m *Message) Subject() string {
	return fmt.Sprintf("New Contact Form Submission from %s", m.sub.Field(form.FieldName))
}

// HTML renders the email body. User input is escaped; literal newlines in
// the description become <br> line breaks.
func (m *Message) HTML() (string, error) {
	desc := template.HTMLEscapeString(m.sub.FieldOr(form.FieldDescription, notAvailable))
	desc = strings.ReplaceAll(desc, "\n", "<br>")

	data := struct {
		Name, Email, Company string
		ProjectType, Budget  string
		Timeline, Location   string
		Description          template.HTML
		Timestamp            string
	}{
		Name:        m.sub.FieldOr(form.FieldName, notAvailable),
		Email:       m.sub.FieldOr(form.FieldEmail, notAvailable),
		Company:     m.sub.FieldOr(form.FieldCompany, notAvailable),
		ProjectType: m.sub.FieldOr(form.FieldProjectType, notAvailable),
		Budget:      m.sub.FieldOr(form.FieldBudget, notAvailable),
		Timeline:    m.sub.FieldOr(form.FieldTimeline, notAvailable),
		Location:    m.sub.FieldOr(form.FieldLocation, notAvailable),
		Description: template.HTML(desc), //nolint:gosec // escaped above
		Timestamp:   m.Timestamp() + " UTC",
	}

	var sb strings.Builder
	if err := bodyTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render email body: %w", err)
	}
	return sb.String(), nil
}

// Text renders the plain-text block written to the submission log: one
// "Label: value" line per field, N/A for absent optional fields. Newlines
// inside the description are preserved verbatim.
func (m *Message) Text() string {
	var sb strings.Builder
	lines := []struct {
		label string
		field string
	}{
		{"Name", form.FieldName},
		{"Email", form.FieldEmail},
		{"Company", form.FieldCompany},
		{"Project Type", form.FieldProjectType},
		{"Budget", form.FieldBudget},
		{"Timeline", form.FieldTimeline},
		{"Location", form.FieldLocation},
		{"Description", form.FieldDescription},
	}
	for _, l := range lines {
		fmt.Fprintf(&sb, "%s: %s\n", l.label, m.sub.FieldOr(l.field, notAvailable))
	}
	return sb.String()
}

// Timestamp returns the submission time formatted as YYYY-MM-DD HH:MM:SS
// in UTC.
func (m *Message) Timestamp() string {
	return m.at.Format(timestampLayout)
}
