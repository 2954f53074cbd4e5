package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formd/formd/pkg/dispatch"
	"github.com/formd/formd/pkg/form"
	"github.com/formd/formd/pkg/httputil"
)

// stubDispatcher records dispatched submissions and returns a canned error.
type stubDispatcher struct {
	mode string
	err  error
	got  []*form.Submission
}

func (d *stubDispatcher) Dispatch(_ context.Context, sub *form.Submission) error {
	d.got = append(d.got, sub)
	return d.err
}

func (d *stubDispatcher) Mode() string { return d.mode }

// panicDispatcher simulates an unexpected fault inside the pipeline.
type panicDispatcher struct{}

func (panicDispatcher) Dispatch(context.Context, *form.Submission) error { panic("boom") }

func (panicDispatcher) Mode() string { return dispatch.ModeMail }

func validForm() url.Values {
	return url.Values{
		"name":         {"Ada"},
		"email":        {"ada@x.com"},
		"project_type": {"web"},
		"budget":       {"$10k"},
		"description":  {"Need a site.\nFast turnaround."},
	}
}

func postForm(t *testing.T, h http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) httputil.Result {
	t.Helper()
	var result httputil.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestSubmitMailSuccess(t *testing.T) {
	d := &stubDispatcher{mode: dispatch.ModeMail}
	h := NewFormHandler(d, t.TempDir())

	rec := postForm(t, h, SubmitPath, validForm())

	assert.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)
	assert.True(t, result.Success)
	assert.Equal(t, MsgSent, result.Message)

	require.Len(t, d.got, 1)
	assert.Equal(t, "Ada", d.got[0].Field("name"))
	assert.NotEmpty(t, d.got[0].ID)
	assert.False(t, d.got[0].Received.IsZero())
}

func TestSubmitMailFailure(t *testing.T) {
	d := &stubDispatcher{mode: dispatch.ModeMail, err: errors.New("smtp down")}
	h := NewFormHandler(d, t.TempDir())

	rec := postForm(t, h, SubmitPath, validForm())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	result := decodeResult(t, rec)
	assert.False(t, result.Success)
	assert.Equal(t, MsgSendFailed, result.Message)
}

func TestSubmitLogFallbackAlwaysSucceeds(t *testing.T) {
	t.Run("write ok", func(t *testing.T) {
		d := &stubDispatcher{mode: dispatch.ModeLog}
		h := NewFormHandler(d, t.TempDir())

		rec := postForm(t, h, SubmitPath, validForm())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, MsgReceived, decodeResult(t, rec).Message)
	})

	t.Run("write error is not surfaced to client", func(t *testing.T) {
		d := &stubDispatcher{mode: dispatch.ModeLog, err: errors.New("disk full")}
		h := NewFormHandler(d, t.TempDir())

		rec := postForm(t, h, SubmitPath, validForm())

		assert.Equal(t, http.StatusOK, rec.Code)
		result := decodeResult(t, rec)
		assert.True(t, result.Success)
		assert.Equal(t, MsgReceived, result.Message)
	})
}

func TestSubmitMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		drop    []string
		message string
	}{
		{
			name:    "one missing",
			drop:    []string{"email"},
			message: "Missing required fields: email",
		},
		{
			name:    "several missing in canonical order",
			drop:    []string{"description", "name"},
			message: "Missing required fields: name, description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &stubDispatcher{mode: dispatch.ModeMail}
			h := NewFormHandler(d, t.TempDir())

			values := validForm()
			for _, f := range tt.drop {
				delete(values, f)
			}
			rec := postForm(t, h, SubmitPath, values)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			result := decodeResult(t, rec)
			assert.False(t, result.Success)
			assert.Equal(t, tt.message, result.Message)

			// Nothing is dispatched for an invalid submission.
			assert.Empty(t, d.got)
		})
	}
}

func TestSubmitMalformedBody(t *testing.T) {
	d := &stubDispatcher{mode: dispatch.ModeMail}
	h := NewFormHandler(d, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, SubmitPath, strings.NewReader("a=%zz&b=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, MsgInternalError, decodeResult(t, rec).Message)
	assert.Empty(t, d.got)
}

func TestSubmitPanicRecovered(t *testing.T) {
	h := NewFormHandler(panicDispatcher{}, t.TempDir())

	var rec *httptest.ResponseRecorder
	require.NotPanics(t, func() {
		rec = postForm(t, h, SubmitPath, validForm())
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	result := decodeResult(t, rec)
	assert.False(t, result.Success)
	assert.Equal(t, MsgInternalError, result.Message)
}

func TestPostUnknownPath(t *testing.T) {
	d := &stubDispatcher{mode: dispatch.ModeMail}
	h := NewFormHandler(d, t.TempDir())

	rec := postForm(t, h, "/does-not-exist-form-path", validForm())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeResult(t, rec).Success)
	assert.Empty(t, d.got)
}

func TestGetServesStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"),
		[]byte("<html>hello</html>"), 0o644))

	h := NewFormHandler(&stubDispatcher{mode: dispatch.ModeLog}, dir)

	// FileServer serves index.html for the directory root.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>hello</html>", rec.Body.String())
}

func TestEndToEndLogFallback(t *testing.T) {
	// Full path through the real file logger: valid submission in
	// unconfigured mode lands in the log with fields verbatim.
	dir := t.TempDir()
	logPath := filepath.Join(dir, "form_submissions.log")
	h := NewFormHandler(dispatch.NewFileLogger(logPath), dir)

	rec := postForm(t, h, SubmitPath, validForm())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, MsgReceived, decodeResult(t, rec).Message)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	block := string(data)
	assert.Contains(t, block, "Name: Ada")
	assert.Contains(t, block, "Email: ada@x.com")
	assert.Contains(t, block, "Description: Need a site.\nFast turnaround.")
	assert.Contains(t, block, "Company: N/A")
}
