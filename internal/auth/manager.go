// Package auth maintains the identity of the current request's user across a
// sequence of requests using a server-issued session cookie, with an optional
// signed remember-me token that outlives the browser session.
package auth

import (
	"context"
	"strconv"
	"strings"
	"time"

	"quorum/internal/middleware"
	"quorum/internal/models"
	"quorum/internal/repository"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	userIDKey = "user_id"
	flashKey  = "flash"

	// RememberCookie carries the signed remember-me token.
	RememberCookie = "quorum_remember"

	sessionDuration  = 24 * time.Hour
	rememberDuration = 30 * 24 * time.Hour
)

// Manager owns the session store and resolves authenticated identities.
type Manager struct {
	store  *fibersession.Store
	secret []byte
	users  repository.UserRepository
}

// NewManager returns a Manager backed by Fiber's session middleware. The
// secret signs remember-me tokens, not the session cookie itself (the session
// token is an opaque server-side key).
func NewManager(secret string, users repository.UserRepository) *Manager {
	store := fibersession.New(fibersession.Config{
		Expiration:     sessionDuration,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	return &Manager{
		store:  store,
		secret: []byte(secret),
		users:  users,
	}
}

// Login marks the session as authenticated for user. The session is
// regenerated to avoid fixation. With remember set, the session expiry is
// extended and a signed remember-me cookie is issued.
func (m *Manager) Login(c *fiber.Ctx, user *models.User, remember bool) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return models.NewInternalError(err)
	}

	if err := sess.Regenerate(); err != nil {
		return models.NewInternalError(err)
	}

	sess.Set(userIDKey, user.ID)
	if remember {
		sess.SetExpiry(rememberDuration)

		token, err := m.generateRememberToken(user.ID)
		if err != nil {
			return models.NewInternalError(err)
		}
		c.Cookie(&fiber.Cookie{
			Name:     RememberCookie,
			Value:    token,
			Expires:  time.Now().Add(rememberDuration),
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}

	return sess.Save()
}

// Logout clears the authentication state and the remember-me cookie.
func (m *Manager) Logout(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := sess.Destroy(); err != nil {
		return models.NewInternalError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     RememberCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return nil
}

// UserID resolves the authenticated user id for the current request. When the
// session carries no identity, a valid remember-me token re-establishes one.
func (m *Manager) UserID(c *fiber.Ctx) (uint, bool) {
	sess, err := m.store.Get(c)
	if err != nil {
		return 0, false
	}

	if id, ok := sess.Get(userIDKey).(uint); ok {
		return id, true
	}

	token := c.Cookies(RememberCookie)
	if token == "" {
		return 0, false
	}
	id, err := m.parseRememberToken(token)
	if err != nil {
		return 0, false
	}

	// Re-establish the session from the remember token.
	sess.Set(userIDKey, id)
	if err := sess.Save(); err != nil {
		return 0, false
	}
	return id, true
}

// CurrentUser loads the User row for the authenticated identity, or nil for
// anonymous requests.
func (m *Manager) CurrentUser(c *fiber.Ctx) *models.User {
	id, ok := m.UserID(c)
	if !ok {
		return nil
	}
	user, err := m.users.GetByID(c.Context(), id)
	if err != nil {
		return nil
	}
	return user
}

// RequireAuth wraps handlers that must only run for authenticated users.
// Anonymous requests are redirected to the login entry point.
func (m *Manager) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := m.UserID(c)
		if !ok {
			_ = m.Flash(c, "Please log in to continue.")
			return c.Redirect("/login")
		}

		c.Locals("userID", id)
		// Sync to UserContext for logging and downstream layers.
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, id)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Flash queues a one-shot notification surfaced on the next rendered page.
func (m *Manager) Flash(c *fiber.Ctx, message string) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return models.NewInternalError(err)
	}

	queued, _ := sess.Get(flashKey).(string)
	if queued != "" {
		queued += "\n"
	}
	sess.Set(flashKey, queued+message)
	return sess.Save()
}

// TakeFlashes drains and returns the queued flash messages.
func (m *Manager) TakeFlashes(c *fiber.Ctx) []string {
	sess, err := m.store.Get(c)
	if err != nil {
		return nil
	}

	queued, _ := sess.Get(flashKey).(string)
	if queued == "" {
		return nil
	}
	sess.Delete(flashKey)
	if err := sess.Save(); err != nil {
		return nil
	}
	return strings.Split(queued, "\n")
}

func (m *Manager) generateRememberToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "quorum",
		"exp": now.Add(rememberDuration).Unix(),
		"iat": now.Unix(),
		"jti": uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) parseRememberToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, models.NewUnauthorizedError("Invalid signing method")
		}
		return m.secret, nil
	}, jwt.WithIssuer("quorum"), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return 0, models.NewUnauthorizedError("Invalid or expired remember token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid subject claim")
	}
	id, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid user ID in token")
	}
	return uint(id), nil
}
