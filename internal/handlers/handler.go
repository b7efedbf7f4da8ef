package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/medics-admin/internal/client"
	"github.com/harentsoaR/medics-admin/internal/listview"
	"github.com/harentsoaR/medics-admin/internal/middleware"
	"github.com/harentsoaR/medics-admin/internal/models"
	"github.com/harentsoaR/medics-admin/internal/services"
	"github.com/harentsoaR/medics-admin/internal/session"
	"github.com/harentsoaR/medics-admin/internal/store"
)

// Deps is everything the console pages need.
type Deps struct {
	API      *client.Client
	Refs     *services.ReferenceCatalog
	Sessions *session.Manager
	Drafts   store.DraftStore
	Notifier *services.Notifier
	Log      zerolog.Logger
	// ViewTTL bounds how long an idle session keeps its list state.
	ViewTTL time.Duration
	// Location is used to show and parse appointment times. Defaults to time.Local.
	Location *time.Location
}

type Handler struct {
	API      *client.Client
	Refs     *services.ReferenceCatalog
	Sessions *session.Manager
	Drafts   store.DraftStore
	Notifier *services.Notifier
	Log      zerolog.Logger
	Location *time.Location
	Now      func() time.Time

	appointments *listview.Registry[models.Appointment]
	doctors      *listview.Registry[models.User]
	patients     *listview.Registry[models.User]
}

func NewHandler(d Deps) *Handler {
	h := &Handler{
		API:      d.API,
		Refs:     d.Refs,
		Sessions: d.Sessions,
		Drafts:   d.Drafts,
		Notifier: d.Notifier,
		Log:      d.Log,
		Location: d.Location,
		Now:      time.Now,
	}
	if h.Location == nil {
		h.Location = time.Local
	}
	h.appointments = listview.NewRegistry(h.fetchAppointments, "Failed to load appointments. Please try again.", d.ViewTTL)
	h.doctors = listview.NewRegistry(h.fetchDoctors, "Failed to load doctors. Please try again.", d.ViewTTL)
	h.patients = listview.NewRegistry(h.fetchPatients, "Failed to load patients. Please try again.", d.ViewTTL)

	if h.Sessions != nil {
		h.Sessions.OnLogout(h.dropSession)
	}
	return h
}

// dropSession releases everything the console keeps for a signed-out session.
func (h *Handler) dropSession(sid string) {
	h.appointments.Drop(sid)
	h.doctors.Drop(sid)
	h.patients.Drop(sid)
	if err := h.Drafts.Delete(context.Background(), store.WizardKey(sid)); err != nil {
		h.Log.Warn().Err(err).Str("session_id", sid).Msg("failed to discard wizard state")
	}
}

// Layout carries what every HTML page shows around its content.
type Layout struct {
	Title string
	User  *models.User
}

func (h *Handler) layout(c *gin.Context, title string) Layout {
	return Layout{Title: title, User: session.FromContext(c).User}
}

// ctx returns the request context carrying the session's bearer token.
func (h *Handler) ctx(c *gin.Context) context.Context {
	return session.FromContext(c).Context(c.Request.Context())
}

func (h *Handler) logger(c *gin.Context) *zerolog.Logger {
	return middleware.RequestLogger(c, h.Log)
}

// render serves the same view model as JSON (the default) or as an HTML page.
func (h *Handler) render(c *gin.Context, code int, page string, data any) {
	c.Negotiate(code, gin.Negotiate{
		Offered:  []string{binding.MIMEJSON, binding.MIMEHTML},
		HTMLName: page,
		Data:     data,
	})
}

// ErrorView is the page shown when nothing else can be rendered.
type ErrorView struct {
	Layout   `json:"-"`
	Error    string `json:"error"`
	BackLink string `json:"-"`
}

func (h *Handler) renderError(c *gin.Context, code int, message, back string) {
	h.render(c, code, "error.html", ErrorView{Layout: h.layout(c, "Error"), Error: message, BackLink: back})
}

// upstreamStatus maps a backend failure onto the console's response code.
func upstreamStatus(err error) int {
	if errors.Is(err, client.ErrNoToken) {
		return http.StatusUnauthorized
	}
	switch s := client.StatusOf(err); {
	case s == http.StatusUnauthorized, s == http.StatusForbidden, s == http.StatusNotFound:
		return s
	case s >= 400 && s < 500:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// failure builds the banner text for a failed backend call, appending the
// backend's own message when it sent one.
func failure(prefix string, err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return prefix + ": " + apiErr.Message
	}
	if errors.Is(err, client.ErrNoToken) {
		return prefix + ": please sign in again"
	}
	return prefix
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
