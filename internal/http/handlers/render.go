package handlers

import (
	"jeetech/internal/domain"
	"jeetech/internal/services"

	"github.com/gofiber/fiber/v2"
)

// render wraps c.Render and injects the data every template expects: the
// logged-in user, the CSRF token and the nav badge counts from the
// middleware locals.
func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	if n, ok := c.Locals("cartCount").(int); ok {
		data["CartCount"] = n
	}
	if n, ok := c.Locals("wishlistCount").(int); ok {
		data["WishlistCount"] = n
	}
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// currentUser returns the user the session middleware attached, or nil.
func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// AttachCounts loads the logged-in user's cart and wishlist sizes into
// locals so every rendered page can show them in the nav.
func AttachCounts(cart *services.CartService, wish *services.WishlistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if u := currentUser(c); u != nil {
			if n, err := cart.Count(u.ID); err == nil {
				c.Locals("cartCount", n)
			}
			if n, err := wish.Count(u.ID); err == nil {
				c.Locals("wishlistCount", n)
			}
		}
		return c.Next()
	}
}

// savedSet returns the user's wishlist membership keyed by product id,
// for the saved badges on listing pages. Nil when nobody is logged in.
func savedSet(c *fiber.Ctx, wish *services.WishlistService) map[string]bool {
	u := currentUser(c)
	if u == nil {
		return nil
	}
	ids, err := wish.ProductIDs(u.ID)
	if err != nil {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
