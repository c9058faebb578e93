package server

import (
	"log/slog"

	"quorum/internal/middleware"
	"quorum/internal/models"
	"quorum/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// LoginPage renders the login form.
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return s.render(c, "login", fiber.Map{
		"Form":   validation.LoginForm{},
		"Errors": validation.Errors{},
	})
}

// Login authenticates a user against the stored bcrypt hash and
// establishes a session. Bad username and bad password produce the same
// message so the form does not leak which accounts exist.
func (s *Server) Login(c *fiber.Ctx) error {
	var form validation.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form submission")
	}

	if errs := form.Validate(); len(errs) > 0 {
		return s.render(c, "login", fiber.Map{
			"Form":   form,
			"Errors": errs,
		})
	}

	user, err := s.users.GetByUsername(c.UserContext(), form.Username)
	if err != nil {
		return err
	}

	if user == nil || bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash), []byte(form.Password)) != nil {
		middleware.Logger.InfoContext(c.UserContext(), "failed login attempt",
			slog.String("username", form.Username))
		return s.render(c, "login", fiber.Map{
			"Form":   form,
			"Errors": validation.Errors{},
			"Error":  "Invalid username or password.",
		})
	}

	if err := s.sessions.Login(c, user, form.RememberMe); err != nil {
		return err
	}

	middleware.Logger.InfoContext(c.UserContext(), "user logged in",
		slog.Uint64("user_id", uint64(user.ID)))
	return c.Redirect("/", fiber.StatusFound)
}

// RegisterPage renders the registration form.
func (s *Server) RegisterPage(c *fiber.Ctx) error {
	return s.render(c, "register", fiber.Map{
		"Form":   validation.RegistrationForm{},
		"Errors": validation.Errors{},
	})
}

// Register creates a new account. The username availability check in the
// form validation races with concurrent registrations, so a unique
// constraint violation from Create is folded back into the same field error.
func (s *Server) Register(c *fiber.Ctx) error {
	var form validation.RegistrationForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form submission")
	}

	errs, err := form.Validate(c.UserContext(), s.users)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return s.render(c, "register", fiber.Map{
			"Form":   form,
			"Errors": errs,
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{Username: form.Username, PasswordHash: string(hash)}
	if err := s.users.Create(c.UserContext(), user); err != nil {
		if msg, ok := validationMessage(err); ok {
			return s.render(c, "register", fiber.Map{
				"Form":   form,
				"Errors": validation.Errors{"username": msg},
			})
		}
		return err
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("username", user.Username))

	if err := s.sessions.Flash(c, "Thanks for registration. You can now login."); err != nil {
		return err
	}
	return c.Redirect("/login", fiber.StatusFound)
}

// Logout ends the session and drops any remember-me cookie.
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.sessions.Logout(c); err != nil {
		return err
	}
	if err := s.sessions.Flash(c, "You have been logged out."); err != nil {
		return err
	}
	if err := s.sessions.Flash(c, "You can no longer post questions or answers."); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusFound)
}
