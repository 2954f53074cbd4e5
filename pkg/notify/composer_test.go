package notify

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formd/formd/pkg/form"
)

var testTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func testSubmission(extra url.Values) *form.Submission {
	values := url.Values{
		"name":         {"Ada"},
		"email":        {"ada@x.com"},
		"project_type": {"web"},
		"budget":       {"$10k"},
		"description":  {"Need a site.\nFast turnaround."},
	}
	for k, v := range extra {
		values[k] = v
	}
	return form.FromValues(values)
}

func TestSubject(t *testing.T) {
	msg := Compose(testSubmission(nil), testTime)
	assert.Equal(t, "New Contact Form Submission from Ada", msg.Subject())
}

func TestTimestampFormat(t *testing.T) {
	msg := Compose(testSubmission(nil), testTime)
	assert.Equal(t, "2026-03-14 09:26:53", msg.Timestamp())
}

func TestTimestampConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	msg := Compose(testSubmission(nil), time.Date(2026, 3, 14, 11, 26, 53, 0, loc))
	assert.Equal(t, "2026-03-14 09:26:53", msg.Timestamp())
}

func TestTextBlock(t *testing.T) {
	msg := Compose(testSubmission(url.Values{"company": {"Lovelace Ltd"}}), testTime)

	text := msg.Text()
	assert.Contains(t, text, "Name: Ada\n")
	assert.Contains(t, text, "Email: ada@x.com\n")
	assert.Contains(t, text, "Company: Lovelace Ltd\n")
	assert.Contains(t, text, "Project Type: web\n")
	assert.Contains(t, text, "Budget: $10k\n")

	// Absent optional fields render N/A.
	assert.Contains(t, text, "Timeline: N/A\n")
	assert.Contains(t, text, "Location: N/A\n")

	// Embedded newlines in the description are preserved, not escaped.
	assert.Contains(t, text, "Description: Need a site.\nFast turnaround.\n")
}

func TestHTMLBody(t *testing.T) {
	msg := Compose(testSubmission(nil), testTime)

	html, err := msg.HTML()
	require.NoError(t, err)

	assert.Contains(t, html, "Ada")
	assert.Contains(t, html, "ada@x.com")
	assert.Contains(t, html, "Submitted on 2026-03-14 09:26:53 UTC")

	// Newlines in the description become line breaks.
	assert.Contains(t, html, "Need a site.<br>Fast turnaround.")

	// Absent optional fields render N/A.
	assert.Contains(t, html, "<strong>Company:</strong> N/A")
}

func TestHTMLEscapesUserInput(t *testing.T) {
	sub := testSubmission(url.Values{
		"name":        {"<script>alert(1)</script>"},
		"description": {"a <b> & c"},
	})
	msg := Compose(sub, testTime)

	html, err := msg.HTML()
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "a &lt;b&gt; &amp; c")
}

func TestDeterministic(t *testing.T) {
	sub := testSubmission(nil)
	first, err := Compose(sub, testTime).HTML()
	require.NoError(t, err)
	second, err := Compose(sub, testTime).HTML()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
