package handlers

import (
	"jeetech/internal/repos"
	"jeetech/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
	Wish    *services.WishlistService
}

// List renders one category's products; :key is a slug or an id.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cat, err := h.Catalog.GetCategory(c.Params("key"))
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Category not found"})
	}
	page := c.QueryInt("page", 1)
	products, err := h.Catalog.ListProducts(repos.Filter{CategoryID: cat.ID, InStockOnly: true}, page, 12)
	if err != nil {
		return err
	}
	return render(c, "category", fiber.Map{
		"Category": cat,
		"Products": products,
		"Page":     page,
		"Saved":    savedSet(c, h.Wish),
	})
}
