package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/service"
	"github.com/spec-kit/complaint-desk/internal/session"
)

// AccountsHandler exposes registration, login and logout.
type AccountsHandler struct {
	accounts *service.AccountService
	sessions *session.Manager
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accounts *service.AccountService, sessions *session.Manager) *AccountsHandler {
	return &AccountsHandler{accounts: accounts, sessions: sessions}
}

// RegisterForm handles GET /registro.
func (h *AccountsHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, h.sessions, "registro", nil)
}

// Register handles POST /registro. A duplicate email re-renders the
// form with a flash; success redirects to login without authenticating.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	role := domain.Role(c.FormValue("role"))

	if _, err := h.accounts.Register(c.Context(), name, email, role); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			if err := h.sessions.Flash(c, "danger", "That email is already registered"); err != nil {
				return err
			}
			return render(c, h.sessions, "registro", nil)
		}
		return err
	}

	if err := h.sessions.Flash(c, "success", "Account registered, you can log in now"); err != nil {
		return err
	}
	return c.Redirect("/login")
}

// LoginForm handles GET /login.
func (h *AccountsHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, h.sessions, "login", nil)
}

// Login handles POST /login. Authentication is an email lookup only; an
// unknown email re-renders the form with a flash and the caller stays
// anonymous.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")

	user, err := h.accounts.Login(c.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			if err := h.sessions.Flash(c, "danger", "User not found"); err != nil {
				return err
			}
			return render(c, h.sessions, "login", nil)
		}
		return err
	}

	if err := h.sessions.Issue(c, user); err != nil {
		return err
	}
	return c.Redirect("/")
}

// Logout handles GET /logout. Clearing is unconditional.
func (h *AccountsHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Clear(c)
	return c.Redirect("/login")
}
