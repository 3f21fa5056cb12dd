package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"jeetech/internal/config"
	"jeetech/internal/http/handlers"
	"jeetech/internal/repos"
)

// apiApp wires the JSON API routes exactly as the server does, against a
// seeded in-memory database.
func apiApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	deps := handlers.NewDeps(db, config.Config{
		WhatsAppNumber: "919344998602",
		JWTSecret:      "test-secret",
	})
	app := fiber.New()

	apiH := deps.API
	api := app.Group("/api")
	api.Get("/", apiH.Home)
	api.Get("/categories", apiH.Categories)
	api.Get("/products", apiH.Products)
	api.Get("/products/featured", apiH.FeaturedProducts)
	api.Get("/products/:key", apiH.ProductDetail)
	api.Post("/products/:key/reviews", handlers.RequireAPIUser(deps.Auth), apiH.AddReview)
	api.Post("/signup", apiH.Signup)
	api.Post("/token", apiH.Token)
	api.Post("/token/refresh", apiH.TokenRefresh)

	authed := api.Group("", handlers.RequireAPIUser(deps.Auth))
	authed.Get("/cart", apiH.CartView)
	authed.Post("/cart", apiH.CartAdd)
	authed.Put("/cart/:id", apiH.CartUpdate)
	authed.Delete("/cart/:id", apiH.CartRemove)
	authed.Get("/wishlist", apiH.WishlistView)
	authed.Post("/wishlist", apiH.WishlistToggle)
	authed.Delete("/wishlist/:id", apiH.WishlistRemove)
	authed.Post("/wishlist/move_to_cart", apiH.WishlistMoveToCart)
	authed.Get("/checkout/whatsapp", apiH.CheckoutWhatsApp)

	return app
}

func jsonReq(method, target, bearer string, body any) *http.Request {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return req
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// bearerFor logs the seeded user in over the API and returns the access token.
func bearerFor(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp, err := app.Test(jsonReq("POST", "/api/token", "", map[string]string{
		"username": username, "password": "Passw0rd!",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("token request failed: %d", resp.StatusCode)
	}
	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decode(t, resp, &pair)
	return pair.Access
}
