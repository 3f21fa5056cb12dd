package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"jeetech/internal/config"
	"jeetech/internal/http/handlers"
	applog "jeetech/internal/log"
	"jeetech/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if strings.HasPrefix(c.Path(), "/api") {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
			}
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	deps := handlers.NewDeps(db, cfg)
	authSvc := deps.Auth

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(handlers.AttachCounts(deps.Cart, deps.Wish))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
	}))
	// CSRF guards the form routes; the JSON API authenticates by bearer
	// token instead.
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	app.Static("/static", "./web/static")
	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(mediaDir, clean), true)
	})

	// ---------- Pages ----------
	app.Get("/", deps.HomeHandler.Home)
	app.Get("/products", deps.ProductHandler.List)
	app.Get("/category/:key", deps.CategoryHandler.List)
	app.Get("/product/:key", deps.ProductHandler.Detail)
	app.Post("/product/:id/review", handlers.RequireUser(authSvc), deps.ProductHandler.Review)

	app.Get("/cart", handlers.RequireUser(authSvc), deps.CartHandler.View)
	app.Post("/cart", handlers.RequireUser(authSvc), deps.CartHandler.Add)
	app.Post("/cart/update", handlers.RequireUser(authSvc), deps.CartHandler.Update)
	app.Post("/cart/delete", handlers.RequireUser(authSvc), deps.CartHandler.Remove)
	app.Get("/checkout/whatsapp", handlers.RequireUser(authSvc), deps.CheckoutHandler.WhatsApp)

	app.Get("/wishlist", handlers.RequireUser(authSvc), deps.WishlistHandler.List)
	app.Post("/wishlist", handlers.RequireUser(authSvc), deps.WishlistHandler.Toggle)
	app.Post("/wishlist/delete", handlers.RequireUser(authSvc), deps.WishlistHandler.Remove)
	app.Post("/wishlist/move", handlers.RequireUser(authSvc), deps.WishlistHandler.MoveToCart)

	// Auth routes (login throttled)
	authH := deps.AuthHandler
	app.Get("/signup", authH.SignupForm)
	app.Post("/signup", authH.Signup)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)
	app.Get("/profile", handlers.RequireUser(authSvc), authH.ProfileForm)
	app.Post("/profile", handlers.RequireUser(authSvc), authH.ProfileSave)

	// ---------- Admin ----------
	adminH := deps.AdminHandler
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", adminH.Dashboard)
	admin.Get("/products", adminH.ProductsPage)
	admin.Post("/products", adminH.CreateProduct)
	admin.Post("/products/:id", adminH.UpdateProduct)
	admin.Post("/products/:id/delete", adminH.DeleteProduct)
	admin.Post("/categories", adminH.CreateCategory)
	admin.Post("/categories/:id", adminH.RenameCategory)
	admin.Post("/categories/:id/delete", adminH.DeleteCategory)
	admin.Post("/fix-slugs", adminH.FixSlugs)

	// ---------- JSON API ----------
	apiH := deps.API
	api := app.Group("/api")
	api.Get("/", apiH.Home)
	api.Get("/categories", apiH.Categories)
	api.Get("/products", apiH.Products)
	api.Get("/products/featured", apiH.FeaturedProducts)
	api.Get("/products/:key", apiH.ProductDetail)
	api.Post("/products/:key/reviews", handlers.RequireAPIUser(authSvc), apiH.AddReview)

	api.Post("/signup", apiH.Signup)
	api.Post("/token", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.token.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts"})
		},
	}), apiH.Token)
	api.Post("/token/refresh", apiH.TokenRefresh)

	authed := api.Group("", handlers.RequireAPIUser(authSvc))
	authed.Get("/cart", apiH.CartView)
	authed.Post("/cart", apiH.CartAdd)
	authed.Put("/cart/:id", apiH.CartUpdate)
	authed.Delete("/cart/:id", apiH.CartRemove)
	authed.Get("/wishlist", apiH.WishlistView)
	authed.Post("/wishlist", apiH.WishlistToggle)
	authed.Delete("/wishlist/:id", apiH.WishlistRemove)
	authed.Post("/wishlist/move_to_cart", apiH.WishlistMoveToCart)
	authed.Get("/checkout/whatsapp", apiH.CheckoutWhatsApp)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api") {
			return c.Status(404).JSON(fiber.Map{"error": "not found"})
		}
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
