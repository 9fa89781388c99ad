package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/config"
	"github.com/spec-kit/complaint-desk/internal/domain"
)

const (
	contextKey  = "session_context"
	recordIDKey = "session_record_id"
)

// Context is the caller's identity for one request. It is always one of
// two shapes: anonymous, or authenticated with id, role and name. A
// handler can therefore never hit a missing-attribute failure when it
// checks the role of a caller that skipped login.
type Context struct {
	UserID int64
	Role   domain.Role
	Name   string

	authenticated bool
}

// Anonymous returns the unauthenticated context.
func Anonymous() Context {
	return Context{}
}

// NewAuthenticated returns the context of a logged-in caller.
func NewAuthenticated(userID int64, role domain.Role, name string) Context {
	return Context{UserID: userID, Role: role, Name: name, authenticated: true}
}

// Authenticated reports whether the caller logged in.
func (c Context) Authenticated() bool {
	return c.authenticated
}

// IsAdmin reports whether the caller holds the admin role.
func (c Context) IsAdmin() bool {
	return c.authenticated && c.Role == domain.RoleAdmin
}

// Manager binds browsers to session records through a signed,
// server-issued cookie. The signing secret comes from configuration.
type Manager struct {
	codec  *tokenCodec
	cookie string
	ttl    time.Duration
	store  Store
	logger *zap.Logger
}

// NewManager constructs a manager over the given store.
func NewManager(cfg config.SessionConfig, store Store, logger *zap.Logger) *Manager {
	ttl := cfg.TTL()
	return &Manager{
		codec:  newTokenCodec(cfg.Secret, ttl),
		cookie: cfg.CookieName,
		ttl:    ttl,
		store:  store,
		logger: logger,
	}
}

// Middleware resolves the session cookie into an auth context on every
// request. Invalid, forged or expired cookies resolve to anonymous.
func (m *Manager) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sctx := Anonymous()
		if raw := c.Cookies(m.cookie); raw != "" {
			if id, err := m.codec.parse(raw); err == nil {
				record, err := m.store.Get(c.UserContext(), id)
				switch {
				case err == nil:
					c.Locals(recordIDKey, id)
					if record.authenticated() {
						sctx = NewAuthenticated(record.UserID, record.Role, record.Name)
					}
				case !errors.Is(err, ErrNoSession):
					return err
				}
			}
		}
		c.Locals(contextKey, sctx)
		return c.Next()
	}
}

// FromContext returns the auth context resolved by the middleware.
func FromContext(c *fiber.Ctx) Context {
	if sctx, ok := c.Locals(contextKey).(Context); ok {
		return sctx
	}
	return Anonymous()
}

// Issue transitions the caller to authenticated, creating a fresh
// session record for the user. Unconsumed flashes from a prior
// anonymous session carry over.
func (m *Manager) Issue(c *fiber.Ctx, user *domain.User) error {
	var flashes []Flash
	if id, ok := c.Locals(recordIDKey).(string); ok {
		if record, err := m.store.Get(c.UserContext(), id); err == nil {
			flashes = record.Flashes
		}
		_ = m.store.Delete(c.UserContext(), id)
	}

	id := uuid.NewString()
	record := &Record{
		UserID:  user.ID,
		Role:    user.Role,
		Name:    user.Name,
		Flashes: flashes,
	}
	if err := m.store.Set(c.UserContext(), id, record, m.ttl); err != nil {
		return err
	}

	token, err := m.codec.sign(id)
	if err != nil {
		return err
	}
	m.setCookie(c, token)

	c.Locals(recordIDKey, id)
	c.Locals(contextKey, NewAuthenticated(user.ID, user.Role, user.Name))
	return nil
}

// Clear drops all session state unconditionally; clearing an anonymous
// session is a no-op.
func (m *Manager) Clear(c *fiber.Ctx) {
	if id, ok := c.Locals(recordIDKey).(string); ok {
		if err := m.store.Delete(c.UserContext(), id); err != nil {
			m.logger.Warn("failed to delete session record", zap.Error(err))
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     m.cookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	c.Locals(recordIDKey, nil)
	c.Locals(contextKey, Anonymous())
}

// Flash queues a message for the next rendered page, creating an
// anonymous session record when the caller has none yet.
func (m *Manager) Flash(c *fiber.Ctx, category, message string) error {
	id, record, err := m.currentRecord(c)
	if err != nil {
		return err
	}

	record.Flashes = append(record.Flashes, Flash{Category: category, Message: message})
	return m.store.Set(c.UserContext(), id, record, m.ttl)
}

// ConsumeFlashes pops all queued flashes; each is rendered exactly once.
func (m *Manager) ConsumeFlashes(c *fiber.Ctx) []Flash {
	id, ok := c.Locals(recordIDKey).(string)
	if !ok {
		return nil
	}

	record, err := m.store.Get(c.UserContext(), id)
	if err != nil || len(record.Flashes) == 0 {
		return nil
	}

	flashes := record.Flashes
	record.Flashes = nil
	if err := m.store.Set(c.UserContext(), id, record, m.ttl); err != nil {
		m.logger.Warn("failed to clear flashes", zap.Error(err))
	}
	return flashes
}

func (m *Manager) currentRecord(c *fiber.Ctx) (string, *Record, error) {
	if id, ok := c.Locals(recordIDKey).(string); ok {
		record, err := m.store.Get(c.UserContext(), id)
		if err == nil {
			return id, record, nil
		}
		if !errors.Is(err, ErrNoSession) {
			return "", nil, err
		}
	}

	id := uuid.NewString()
	token, err := m.codec.sign(id)
	if err != nil {
		return "", nil, err
	}
	m.setCookie(c, token)
	c.Locals(recordIDKey, id)
	return id, &Record{}, nil
}

func (m *Manager) setCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cookie,
		Value:    token,
		Expires:  time.Now().Add(m.ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
