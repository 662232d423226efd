package session

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "cloudgallery_session"

// Identity is the proof of a prior successful login or signup, carried in
// the signed session cookie.
type Identity struct {
	UserID   string
	Username string
}

// Manager wraps the signed cookie store holding the current identity.
// The session lives exactly as long as the cookie; there is no server-side
// expiry or refresh.
type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

// Current resolves the request's identity. A missing, unreadable or
// tampered cookie all read as "not logged in".
func (m *Manager) Current(r *http.Request) (Identity, bool) {
	s, err := m.store.Get(r, sessionName)
	if err != nil {
		return Identity{}, false
	}
	userID, ok := s.Values["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, false
	}
	username, _ := s.Values["username"].(string)
	return Identity{UserID: userID, Username: username}, true
}

// Establish writes the identity into the session cookie. Only successful
// login or signup may call this.
func (m *Manager) Establish(w http.ResponseWriter, r *http.Request, id Identity) error {
	s, _ := m.store.Get(r, sessionName)
	s.Values["user_id"] = id.UserID
	s.Values["username"] = id.Username
	return s.Save(r, w)
}

// Clear drops the session unconditionally.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	s, _ := m.store.Get(r, sessionName)
	s.Values = map[interface{}]interface{}{}
	s.Options.MaxAge = -1
	return s.Save(r, w)
}

type contextKey struct{}

// WithIdentity stores the resolved identity on the request context for
// handlers behind the login gate.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFrom reads the identity placed on the context by the login gate.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
