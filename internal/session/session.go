// Package session keeps the signed-in admin for the lifetime of a browser
// session. It is rebuilt from cookies on every request and handed down
// explicitly through the gin context.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/medics-admin/internal/client"
	"github.com/harentsoaR/medics-admin/internal/models"
)

const (
	TokenCookie    = "token"
	UserInfoCookie = "userInfo"

	contextKey = "session"
	cookieAge  = 7 * 24 * time.Hour
)

type Session struct {
	ID    string
	Token string
	User  *models.User
}

// Authenticated reports whether the session carries both a user and a token.
func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil && s.Token != ""
}

// Context attaches the bearer token for outgoing backend calls.
func (s *Session) Context(ctx context.Context) context.Context {
	if s == nil || s.Token == "" {
		return ctx
	}
	return client.WithToken(ctx, s.Token)
}

type Manager struct {
	secret []byte
	secure bool
	log    zerolog.Logger
	clock  func() time.Time

	mu       sync.Mutex
	onLogout []func(sid string)
}

func NewManager(secret []byte, secure bool, log zerolog.Logger) *Manager {
	return &Manager{secret: secret, secure: secure, log: log}
}

// OnLogout registers teardown work for a session's server-side state.
func (m *Manager) OnLogout(fn func(sid string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onLogout = append(m.onLogout, fn)
}

// Load rebuilds the session from cookies. It never fails: an unreadable
// userInfo cookie is logged and treated as "no session".
func (m *Manager) Load(c *gin.Context) *Session {
	s := &Session{}
	s.Token, _ = c.Cookie(TokenCookie)

	raw, err := c.Cookie(UserInfoCookie)
	if err != nil || raw == "" {
		return s
	}
	claims, err := m.decode(raw)
	if err != nil {
		m.log.Warn().Err(err).Msg("ignoring unreadable userInfo cookie")
		return s
	}
	user := claims.User
	s.ID = claims.SessionID
	s.User = &user
	return s
}

// Login stores the backend token and the user, starting a new session id.
func (m *Manager) Login(c *gin.Context, token string, user models.User) (*Session, error) {
	s := &Session{ID: uuid.NewString(), Token: token}
	if err := m.write(c, s.ID, user); err != nil {
		return nil, err
	}
	m.setCookie(c, TokenCookie, token, cookieAge)
	s.User = &user
	c.Set(contextKey, s)
	return s, nil
}

// SetUser replaces the session's user; nil clears it.
func (m *Manager) SetUser(c *gin.Context, user *models.User) error {
	s := FromContext(c)
	if user == nil {
		m.setCookie(c, UserInfoCookie, "", -1)
		s.User = nil
		return nil
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if err := m.write(c, s.ID, *user); err != nil {
		return err
	}
	u := *user
	s.User = &u
	return nil
}

// Logout clears both cookies and tears down the session's view state.
func (m *Manager) Logout(c *gin.Context) {
	s := FromContext(c)
	_ = m.SetUser(c, nil)
	m.setCookie(c, TokenCookie, "", -1)
	s.Token = ""

	if s.ID == "" {
		return
	}
	m.mu.Lock()
	hooks := append([]func(string){}, m.onLogout...)
	m.mu.Unlock()
	for _, fn := range hooks {
		fn(s.ID)
	}
	s.ID = ""
}

func (m *Manager) write(c *gin.Context, sid string, user models.User) error {
	value, err := m.encode(sid, user)
	if err != nil {
		return err
	}
	m.setCookie(c, UserInfoCookie, value, cookieAge)
	return nil
}

func (m *Manager) setCookie(c *gin.Context, name, value string, age time.Duration) {
	maxAge := int(age.Seconds())
	if age < 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", m.secure, true)
}

// Middleware loads the session once per request.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		Attach(c, m.Load(c))
		c.Next()
	}
}

// Attach makes s the request's session.
func Attach(c *gin.Context, s *Session) {
	c.Set(contextKey, s)
}

// FromContext returns the request's session, never nil.
func FromContext(c *gin.Context) *Session {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(*Session); ok && s != nil {
			return s
		}
	}
	s := &Session{}
	c.Set(contextKey, s)
	return s
}
