package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medics-admin/internal/client"
	"github.com/harentsoaR/medics-admin/internal/middleware"
	"github.com/harentsoaR/medics-admin/internal/models"
	"github.com/harentsoaR/medics-admin/internal/session"
)

type LoginView struct {
	Layout `json:"-"`
	Email  string `json:"-"`
	Next   string `json:"-"`
	Error  string `json:"error,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
	Next     string `json:"next" form:"next"`
}

// safeNext only allows redirects to console-local paths.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return "/dashboard"
}

func (h *Handler) LoginPage(c *gin.Context) {
	next := safeNext(c.Query("next"))
	if session.FromContext(c).Authenticated() && middleware.WantsHTML(c) {
		c.Redirect(http.StatusSeeOther, next)
		return
	}
	h.render(c, http.StatusOK, "login.html", LoginView{Layout: h.layout(c, "Sign in"), Next: next})
}

// Login exchanges the credentials for a backend token and starts a session.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render(c, http.StatusBadRequest, "login.html", LoginView{
			Layout: h.layout(c, "Sign in"),
			Email:  req.Email,
			Next:   safeNext(req.Next),
			Error:  "Please enter a valid email and password.",
		})
		return
	}

	resp, err := h.API.EmailLogin(c.Request.Context(), client.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		h.logger(c).Warn().Err(err).Str("email", req.Email).Msg("login failed")
		code, msg := http.StatusUnauthorized, "Invalid email or password."
		if s := client.StatusOf(err); s == 0 || s >= 500 {
			code, msg = http.StatusBadGateway, "Login is unavailable right now. Please try again."
		}
		h.render(c, code, "login.html", LoginView{
			Layout: h.layout(c, "Sign in"),
			Email:  req.Email,
			Next:   safeNext(req.Next),
			Error:  msg,
		})
		return
	}

	s, err := h.Sessions.Login(c, resp.Token, resp.User)
	if err != nil {
		h.logger(c).Error().Err(err).Msg("failed to start session")
		h.renderError(c, http.StatusInternalServerError, "Failed to start session.", "/login")
		return
	}
	h.logger(c).Info().Str("user_id", resp.User.ID).Str("session_id", s.ID).Msg("admin signed in")

	if middleware.WantsHTML(c) {
		c.Redirect(http.StatusSeeOther, safeNext(req.Next))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": resp.User})
}

func (h *Handler) Logout(c *gin.Context) {
	h.Sessions.Logout(c)
	if middleware.WantsHTML(c) {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

type AdminView struct {
	Layout  `json:"-"`
	Form    client.CreateAdminRequest `json:"-"`
	Created *models.User              `json:"admin,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

type createAdminRequest struct {
	FirstName string `json:"firstName" form:"firstName" binding:"required"`
	LastName  string `json:"lastName" form:"lastName" binding:"required"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Password  string `json:"password" form:"password" binding:"required,min=8"`
}

func (h *Handler) NewAdminPage(c *gin.Context) {
	h.render(c, http.StatusOK, "admin.html", AdminView{Layout: h.layout(c, "Create admin")})
}

// CreateAdmin registers another console administrator with the backend.
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req createAdminRequest
	bindErr := c.ShouldBind(&req)
	view := AdminView{
		Layout: h.layout(c, "Create admin"),
		Form:   client.CreateAdminRequest{FirstName: req.FirstName, LastName: req.LastName, Email: req.Email},
	}
	if bindErr != nil {
		view.Error = "All fields are required and the password needs at least 8 characters."
		h.render(c, http.StatusBadRequest, "admin.html", view)
		return
	}

	admin, err := h.API.CreateAdmin(h.ctx(c), client.CreateAdminRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.logger(c).Error().Err(err).Str("email", req.Email).Msg("failed to create admin")
		view.Error = failure("Failed to create admin", err)
		h.render(c, upstreamStatus(err), "admin.html", view)
		return
	}
	h.logger(c).Info().Str("admin_id", admin.ID).Msg("admin created")

	view.Form = client.CreateAdminRequest{}
	view.Created = &admin
	h.render(c, http.StatusCreated, "admin.html", view)
}
