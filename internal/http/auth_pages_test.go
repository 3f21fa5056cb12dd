package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	html "github.com/gofiber/template/html/v2"
	"golang.org/x/crypto/bcrypt"

	"jeetech/internal/http/handlers"
	"jeetech/internal/repos"
	"jeetech/internal/services"
	"jeetech/internal/token"
)

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func TestPasswordsSeededAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM users`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no users seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "Passw0rd!") {
			t.Fatalf("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("Passw0rd!")); err != nil {
			t.Fatalf("seed hash does not validate known password: %v", err)
		}
	}
}

func TestLoginSuccessFailAndThrottle(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := services.NewAuthService(userRepo, token.NewIssuer("test-secret"))
	authH := &handlers.AuthHandler{Auth: authSvc}
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{Max: 2, Expiration: time.Minute}), authH.Login)

	respLogin, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := cookieValue(respLogin, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}

	post := func(email, pass string) *http.Response {
		form := strings.NewReader("csrf=" + csrfTok + "&email=" + email + "&password=" + pass)
		req := httptest.NewRequest("POST", "/login", form)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	if resp := post("asha@jeetech.test", "wrongpass!"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad creds, got %d", resp.StatusCode)
	}
	resp := post("asha@jeetech.test", "Passw0rd!")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect on success, got %d", resp.StatusCode)
	}
	if cookieValue(resp, "sid") == "" {
		t.Fatal("expected session cookie on login")
	}
	if resp := post("asha@jeetech.test", "wrongpass!"); resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after throttle, got %d", resp.StatusCode)
	}
}

func TestLoginNextRedirectStaysOnSite(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := services.NewAuthService(userRepo, token.NewIssuer("test-secret"))
	authH := &handlers.AuthHandler{Auth: authSvc}
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	app.Get("/login", authH.LoginForm)
	app.Post("/login", authH.Login)

	respLogin, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := cookieValue(respLogin, "csrf_")

	login := func(next string) *http.Response {
		form := strings.NewReader("csrf=" + csrfTok + "&email=asha@jeetech.test&password=Passw0rd!")
		req := httptest.NewRequest("POST", "/login?next="+next, form)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	if got := login("/cart").Header.Get("Location"); got != "/cart" {
		t.Fatalf("want /cart redirect, got %q", got)
	}
	// Protocol-relative and backslash targets would leave the site.
	for _, next := range []string{"//evil.example", "/%5Cevil.example", "https://evil.example", ""} {
		if got := login(next).Header.Get("Location"); got != "/" {
			t.Fatalf("next=%q must redirect to /, got %q", next, got)
		}
	}
}

func TestSignupPageCreatesSessionAndProfile(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := services.NewAuthService(userRepo, token.NewIssuer("test-secret"))
	authH := &handlers.AuthHandler{Auth: authSvc}
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	app.Get("/signup", authH.SignupForm)
	app.Post("/signup", authH.Signup)

	respForm, _ := app.Test(httptest.NewRequest("GET", "/signup", nil))
	csrfTok := cookieValue(respForm, "csrf_")

	form := strings.NewReader("csrf=" + csrfTok +
		"&username=meera&email=meera@jeetech.test&first_name=Meera&last_name=Pillai&password=Passw0rd!")
	req := httptest.NewRequest("POST", "/signup", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect on signup, got %d", resp.StatusCode)
	}
	sid := cookieValue(resp, "sid")
	if sid == "" {
		t.Fatal("expected session cookie after signup")
	}

	u, err := authSvc.CurrentUser(sid)
	if err != nil {
		t.Fatalf("session not bound: %v", err)
	}
	if u.Username != "meera" {
		t.Fatalf("wrong session user: %q", u.Username)
	}
	var n int
	if err := userRepo.DB.Get(&n, `SELECT COUNT(*) FROM user_profiles WHERE user_id=?`, u.ID); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected profile row, got %d", n)
	}
}
