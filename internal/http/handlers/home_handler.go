package handlers

import (
	"jeetech/internal/services"

	"github.com/gofiber/fiber/v2"
)

type HomeHandler struct {
	Catalog *services.CatalogService
	Wish    *services.WishlistService
}

func (h *HomeHandler) Home(c *fiber.Ctx) error {
	cats, err := h.Catalog.CategoriesWithCounts(0)
	if err != nil {
		return err
	}
	featured, err := h.Catalog.FeaturedProducts(8, true)
	if err != nil {
		return err
	}
	latest, err := h.Catalog.LatestProducts(8, true)
	if err != nil {
		return err
	}
	return render(c, "home", fiber.Map{
		"Categories": cats,
		"Featured":   featured,
		"Latest":     latest,
		"Saved":      savedSet(c, h.Wish),
	})
}
