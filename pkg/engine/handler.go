// Core HTTP request handler for the form server.

package engine

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/formd/formd/pkg/dispatch"
	"github.com/formd/formd/pkg/form"
	"github.com/formd/formd/pkg/httputil"
	"github.com/formd/formd/pkg/logging"
)

// SubmitPath is the fixed path form submissions are posted to.
const SubmitPath = "/submit-form"

// MaxBodySize is the maximum allowed request body size for form
// submissions (1MB). This prevents denial-of-service via oversized bodies.
const MaxBodySize = 1 << 20

// User-visible response messages. These are part of the endpoint's
// contract; clients match on them.
const (
	MsgSent = "Thank you! Your message has been sent successfully."

	MsgReceived = "Thank you! Your message has been received. We'll get back to you soon."

	MsgSendFailed = "Failed to send email. Please try again or contact us directly."

	MsgInternalError = "An error occurred. Please try again."
)

// FormHandler terminates contact-form submissions and serves static files
// for everything else.
type FormHandler struct {
	dispatcher dispatch.Dispatcher
	static     http.Handler
	log        *slog.Logger
	now        func() time.Time
}

// NewFormHandler creates a FormHandler. GET and HEAD requests are
// delegated to a file server rooted at staticDir.
func NewFormHandler(dispatcher dispatch.Dispatcher, staticDir string) *FormHandler {
	return &FormHandler{
		dispatcher: dispatcher,
		static:     http.FileServer(http.Dir(staticDir)),
		log:        logging.Nop(),
		now:        time.Now,
	}
}

// SetLogger sets the operational logger.
func (h *FormHandler) SetLogger(log *slog.Logger) {
	if log != nil {
		h.log = log
	}
}

// ServeHTTP implements the http.Handler interface.
func (h *FormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		if r.URL.Path != SubmitPath {
			httputil.WriteNotFound(w, "Not Found")
			return
		}
		h.handleSubmission(w, r)
	case http.MethodGet, http.MethodHead:
		h.static.ServeHTTP(w, r)
	default:
		httputil.WriteFailure(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

// handleSubmission runs the submission pipeline: decode, validate,
// dispatch, respond. Any panic below is converted to a generic failure
// response; an internal fault must never drop the connection without a
// structured reply.
func (h *FormHandler) handleSubmission(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error("panic handling form submission", "panic", rec, "path", r.URL.Path)
			httputil.WriteFailure(w, http.StatusBadRequest, MsgInternalError)
		}
	}()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		h.log.Warn("failed to read form body", "error", err)
		httputil.WriteFailure(w, http.StatusBadRequest, MsgInternalError)
		return
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		h.log.Warn("failed to decode form body", "error", err)
		httputil.WriteFailure(w, http.StatusBadRequest, MsgInternalError)
		return
	}

	sub := form.FromValues(values)
	sub.ID = uuid.NewString()
	sub.Received = h.now().UTC()

	h.log.Info("received form submission",
		"id", sub.ID,
		"from", sub.FieldOr(form.FieldEmail, "unknown"))

	if missing := sub.MissingFields(); len(missing) > 0 {
		httputil.WriteFailure(w, http.StatusBadRequest,
			"Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	err = h.dispatcher.Dispatch(r.Context(), sub)

	if h.dispatcher.Mode() == dispatch.ModeMail {
		if err != nil {
			httputil.WriteFailure(w, http.StatusBadRequest, MsgSendFailed)
			return
		}
		httputil.WriteSuccess(w, MsgSent)
		return
	}

	// Log fallback: a write failure is an infrastructure detail the
	// client should not see.
	if err != nil {
		h.log.Error("failed to log submission", "id", sub.ID, "error", err)
	}
	httputil.WriteSuccess(w, MsgReceived)
}
