package handlers

import (
	"errors"
	"strconv"
	"strings"

	applog "jeetech/internal/log"
	"jeetech/internal/services"
	"jeetech/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

// parseQty parses an exact quantity for set operations. Unlike
// validate.Qty it does not clamp; zero and negatives reach the
// service and are rejected there.
func parseQty(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	u := currentUser(c)
	cv, err := h.Cart.View(u.ID)
	if err != nil {
		return err
	}
	return render(c, "cart", fiber.Map{
		"Lines": cv.Lines,
		"Total": services.FormatAmount(cv.Total),
	})
}

// Add puts a product in the cart; a repeat add bumps the quantity.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	u := currentUser(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	_, _, err := h.Cart.Add(u.ID, pid, qty)
	if err != nil {
		var se *services.InsufficientStockError
		if errors.As(err, &se) {
			applog.Info(c, "cart.add.stock", map[string]any{"product": pid, "available": se.Available})
			return c.Status(400).SendString(err.Error())
		}
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).SendString("product not found")
		}
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": pid})
		return c.Status(500).SendString("could not add to cart")
	}
	applog.Audit(c, "cart.add", map[string]any{"product": pid, "qty": qty})
	back := c.Get("Referer")
	if back == "" {
		back = "/cart"
	}
	return c.Redirect(back)
}

// Update sets an item's quantity to an exact value.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	u := currentUser(c)
	itemID, ok := validate.ID(c.FormValue("itemId"))
	if !ok {
		return c.Status(400).SendString("missing itemId")
	}
	qty := c.FormValue("qty")
	n, err := parseQty(qty)
	if err != nil {
		return c.Status(400).SendString("invalid quantity")
	}
	if _, err := h.Cart.SetQuantity(u.ID, itemID, n); err != nil {
		var se *services.InsufficientStockError
		var ve *services.ValidationError
		switch {
		case errors.As(err, &se), errors.As(err, &ve):
			return c.Status(400).SendString(err.Error())
		case errors.Is(err, services.ErrNotFound):
			return c.Status(404).SendString("item not found")
		}
		applog.Error(c, "cart.update.fail", err, map[string]any{"item": itemID})
		return c.Status(500).SendString("could not update cart")
	}
	applog.Audit(c, "cart.update", map[string]any{"item": itemID, "qty": n})
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	u := currentUser(c)
	itemID, ok := validate.ID(c.FormValue("itemId"))
	if !ok {
		return c.Status(400).SendString("missing itemId")
	}
	if err := h.Cart.Remove(u.ID, itemID); err != nil {
		applog.Error(c, "cart.remove.fail", err, map[string]any{"item": itemID})
		return c.Status(500).SendString("could not remove item")
	}
	applog.Audit(c, "cart.remove", map[string]any{"item": itemID})
	return c.Redirect("/cart")
}
