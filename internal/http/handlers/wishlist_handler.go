package handlers

import (
	"errors"

	applog "jeetech/internal/log"
	"jeetech/internal/services"
	"jeetech/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	items, err := h.Wish.List(u.ID)
	if err != nil {
		applog.Error(c, "wishlist.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load wishlist"})
	}
	return render(c, "wishlist", fiber.Map{"Items": items})
}

// Toggle saves the product, or unsaves it if it was already saved.
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	u := currentUser(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	added, err := h.Wish.Toggle(u.ID, pid)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).SendString("product not found")
		}
		applog.Error(c, "wishlist.toggle.fail", err, map[string]any{"product": pid})
		return c.Status(500).SendString("could not save item")
	}
	action := "wishlist.unsave"
	if added {
		action = "wishlist.save"
	}
	applog.Audit(c, action, map[string]any{"product": pid})
	back := c.Get("Referer")
	if back == "" {
		back = "/wishlist"
	}
	return c.Redirect(back)
}

func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	u := currentUser(c)
	itemID, ok := validate.ID(c.FormValue("itemId"))
	if !ok {
		return c.Status(400).SendString("missing itemId")
	}
	if err := h.Wish.Remove(u.ID, itemID); err != nil {
		applog.Error(c, "wishlist.remove.fail", err, map[string]any{"item": itemID})
		return c.Status(500).SendString("could not remove item")
	}
	applog.Audit(c, "wishlist.remove", map[string]any{"item": itemID})
	return c.Redirect("/wishlist")
}

// MoveToCart carries a saved product into the cart with quantity one.
func (h *WishlistHandler) MoveToCart(c *fiber.Ctx) error {
	u := currentUser(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if _, err := h.Wish.MoveToCart(u.ID, pid); err != nil {
		var se *services.InsufficientStockError
		if errors.As(err, &se) {
			return c.Status(400).SendString(err.Error())
		}
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).SendString("product not found")
		}
		applog.Error(c, "wishlist.move.fail", err, map[string]any{"product": pid})
		return c.Status(500).SendString("could not move item")
	}
	applog.Audit(c, "wishlist.move_to_cart", map[string]any{"product": pid})
	return c.Redirect("/cart")
}
