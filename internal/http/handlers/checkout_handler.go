package handlers

import (
	"errors"

	applog "jeetech/internal/log"
	"jeetech/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

// WhatsApp sends the buyer to a chat pre-filled with the order summary.
func (h *CheckoutHandler) WhatsApp(c *fiber.Ctx) error {
	u := currentUser(c)
	link, err := h.Checkout.Link(u.ID)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return c.Redirect("/cart")
		}
		applog.Error(c, "checkout.whatsapp.fail", err, nil)
		return c.Status(500).SendString("could not prepare checkout")
	}
	applog.Audit(c, "checkout.whatsapp", nil)
	return c.Redirect(link)
}
