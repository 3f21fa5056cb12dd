package handlers

import (
	"strings"
	"time"

	applog "jeetech/internal/log"
	"jeetech/internal/services"
	"jeetech/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password", "CSRFToken": c.Cookies("csrf_")})
	}
	if _, err := h.Auth.Login(sid, email, pass); err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password", "CSRFToken": c.Cookies("csrf_")})
	}
	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	next := c.Query("next")
	// Only same-site paths: "//host" and "/\host" are scheme-relative
	// redirects in browsers.
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		next = "/"
	}
	return c.Redirect(next)
}

func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	return render(c, "signup", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	in := services.SignupInput{
		Username:  c.FormValue("username"),
		Email:     c.FormValue("email"),
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		Password:  c.FormValue("password"),
	}
	if errs := validate.Struct(in); len(errs) > 0 {
		applog.Security(c, "auth.signup.fail", map[string]any{"field": errs[0].Field, "reason": errs[0].Tag})
		return c.Status(400).Render("signup", fiber.Map{"Err": "Please check the form and try again", "CSRFToken": c.Cookies("csrf_")})
	}
	if !validate.Password(in.Password) {
		return c.Status(400).Render("signup", fiber.Map{"Err": "Password needs upper and lower case letters and a digit", "CSRFToken": c.Cookies("csrf_")})
	}
	if _, err := h.Auth.Signup(in); err != nil {
		applog.Security(c, "auth.signup.fail", map[string]any{"email": in.Email})
		return c.Status(400).Render("signup", fiber.Map{"Err": "Could not create the account", "CSRFToken": c.Cookies("csrf_")})
	}
	// Bind the fresh account to this browser's session right away.
	sid := ensureSID(c)
	if _, err := h.Auth.Login(sid, in.Email, in.Password); err != nil {
		return c.Redirect("/login")
	}
	applog.Audit(c, "auth.signup.success", map[string]any{"email": in.Email})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}

func (h *AuthHandler) ProfileForm(c *fiber.Ctx) error {
	u := currentUser(c)
	p, err := h.Auth.Profile(u.ID)
	if err != nil {
		return err
	}
	return render(c, "profile", fiber.Map{"Profile": p, "Err": ""})
}

func (h *AuthHandler) ProfileSave(c *fiber.Ctx) error {
	u := currentUser(c)
	in := services.ProfileInput{
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		Email:     c.FormValue("email"),
		Address:   c.FormValue("address"),
		Phone:     c.FormValue("phone"),
	}
	if _, ok := validate.Email(in.Email); !ok {
		return c.Status(400).SendString("invalid email")
	}
	if in.Phone != "" {
		if _, ok := validate.Phone(in.Phone); !ok {
			return c.Status(400).SendString("invalid phone")
		}
	}
	if err := h.Auth.UpdateProfile(u.ID, in); err != nil {
		applog.Error(c, "profile.save.fail", err, nil)
		return c.Status(400).SendString("could not save profile")
	}
	applog.Audit(c, "profile.save", nil)
	return c.Redirect("/profile")
}
