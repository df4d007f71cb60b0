// Package session tracks the logged-in user across requests. A browser holds
// an opaque random token in a cookie; the token maps to a server-side record
// with the user id and a cached administrator flag.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieName is the cookie carrying the session token.
const CookieName = "todolist_session"

// ErrNotFound is returned by stores for unknown or expired tokens.
var ErrNotFound = errors.New("session not found")

// Session is the per-browser state: who is logged in and whether they are an
// administrator, plus one-shot flash messages for the next rendered page.
type Session struct {
	Token   string            `json:"-"`
	UserID  uint              `json:"user_id"`
	Admin   bool              `json:"admin"`
	Flashes map[string]string `json:"flashes,omitempty"`
}

// clone returns a copy with a detached Flashes map, so a record handed out by
// a store can be mutated without touching state shared with other requests.
func (s *Session) clone() *Session {
	dup := *s
	if s.Flashes != nil {
		dup.Flashes = make(map[string]string, len(s.Flashes))
		for key, message := range s.Flashes {
			dup.Flashes[key] = message
		}
	}
	return &dup
}

// Store persists session records keyed by token.
type Store interface {
	Get(ctx context.Context, token string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, token string) error
}

// Manager moves sessions between the cookie transport and a Store.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{store: store, ttl: ttl}
}

// LogIn creates a session for the user and sets the cookie. The admin flag is
// cached in the record so handlers do not reload the user on every request.
func (m *Manager) LogIn(c *gin.Context, userID uint, admin bool) error {
	token, err := newToken()
	if err != nil {
		return err
	}
	sess := &Session{Token: token, UserID: userID, Admin: admin}
	if err := m.store.Save(c.Request.Context(), sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	c.SetCookie(CookieName, token, int(m.ttl.Seconds()), "/", "", false, true)
	return nil
}

// LogOut drops the session record and clears the cookie.
func (m *Manager) LogOut(c *gin.Context) {
	if token, err := c.Cookie(CookieName); err == nil && token != "" {
		_ = m.store.Delete(c.Request.Context(), token)
	}
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// Current returns the session for the request, or nil when anonymous.
func (m *Manager) Current(c *gin.Context) *Session {
	token, err := c.Cookie(CookieName)
	if err != nil || token == "" {
		return nil
	}
	sess, err := m.store.Get(c.Request.Context(), token)
	if err != nil {
		return nil
	}
	return sess
}

// Flash records a one-shot message ("mensaje" or "error") surfaced by the
// next rendered page.
func (m *Manager) Flash(c *gin.Context, key, message string) {
	sess := m.Current(c)
	if sess == nil {
		return
	}
	if sess.Flashes == nil {
		sess.Flashes = map[string]string{}
	}
	sess.Flashes[key] = message
	_ = m.store.Save(c.Request.Context(), sess)
}

// PopFlashes returns pending flash messages and clears them.
func (m *Manager) PopFlashes(c *gin.Context) map[string]string {
	sess := m.Current(c)
	if sess == nil || len(sess.Flashes) == 0 {
		return nil
	}
	flashes := sess.Flashes
	sess.Flashes = nil
	_ = m.store.Save(c.Request.Context(), sess)
	return flashes
}

// TTL exposes the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func newToken() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}
