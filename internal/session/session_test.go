package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/medics-admin/internal/client"
	"github.com/harentsoaR/medics-admin/internal/models"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	c.Request = req
	return c, rec
}

func cookieFrom(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestLoad_InvalidUserInfoLeavesUserNil(t *testing.T) {
	m := NewManager(testSecret, false, zerolog.Nop())
	payloads := []string{
		"{not json",
		url.QueryEscape(`{"_id":"u1","email":"a@x.io"}`),
		"eyJhbGciOiJIUzI1NiJ9.e30.bogus",
		"",
	}
	for _, p := range payloads {
		c, _ := newContext(&http.Cookie{Name: UserInfoCookie, Value: p}, &http.Cookie{Name: TokenCookie, Value: "tok"})

		var s *Session
		require.NotPanics(t, func() { s = m.Load(c) })
		assert.Nil(t, s.User, "payload %q", p)
		assert.Equal(t, "tok", s.Token)
		assert.False(t, s.Authenticated())
	}
}

func TestLoad_RejectsForeignSignature(t *testing.T) {
	other := NewManager([]byte("another-secret-another-secret-xx"), false, zerolog.Nop())
	value, err := other.encode("sid-1", models.User{ID: "u1"})
	require.NoError(t, err)

	m := NewManager(testSecret, false, zerolog.Nop())
	c, _ := newContext(&http.Cookie{Name: UserInfoCookie, Value: value})
	assert.Nil(t, m.Load(c).User)
}

func TestLoginThenLoad_RoundTrip(t *testing.T) {
	m := NewManager(testSecret, false, zerolog.Nop())
	c, rec := newContext()

	user := models.User{ID: "u1", FirstName: "Miranda", LastName: "Bailey", Email: "mb@x.io", Role: models.RoleAdmin}
	s, err := m.Login(c, "jwt-backend", user)
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)

	token := cookieFrom(rec, TokenCookie)
	info := cookieFrom(rec, UserInfoCookie)
	require.NotNil(t, token)
	require.NotNil(t, info)
	assert.True(t, info.HttpOnly)

	next, _ := newContext(token, info)
	loaded := m.Load(next)
	require.True(t, loaded.Authenticated())
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, "Miranda Bailey", loaded.User.FullName())
	assert.Equal(t, "jwt-backend", loaded.Token)
}

func TestLogout_ClearsCookiesAndRunsHooks(t *testing.T) {
	m := NewManager(testSecret, false, zerolog.Nop())
	var dropped []string
	m.OnLogout(func(sid string) { dropped = append(dropped, sid) })

	c, _ := newContext()
	s, err := m.Login(c, "jwt", models.User{ID: "u1"})
	require.NoError(t, err)
	sid := s.ID

	c2, rec := newContext()
	c2.Set(contextKey, s)
	m.Logout(c2)

	assert.Equal(t, []string{sid}, dropped)
	assert.Nil(t, s.User)
	assert.Empty(t, s.Token)
	for _, name := range []string{TokenCookie, UserInfoCookie} {
		ck := cookieFrom(rec, name)
		require.NotNil(t, ck, name)
		assert.Equal(t, -1, ck.MaxAge)
	}
}

func TestSetUser_Nil(t *testing.T) {
	m := NewManager(testSecret, false, zerolog.Nop())
	c, _ := newContext()
	c.Set(contextKey, &Session{ID: "s", User: &models.User{ID: "u"}})

	require.NoError(t, m.SetUser(c, nil))
	assert.Nil(t, FromContext(c).User)
}

func TestSession_ContextCarriesToken(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	s := &Session{Token: "tok-9"}
	_, err := client.New(srv.URL).References(s.Context(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-9", seen)
}

func TestFromContext_NeverNil(t *testing.T) {
	c, _ := newContext()
	assert.NotNil(t, FromContext(c))
}
