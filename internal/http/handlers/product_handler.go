package handlers

import (
	applog "jeetech/internal/log"
	"jeetech/internal/repos"
	"jeetech/internal/services"
	"jeetech/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Reviews *services.ReviewService
	Wish    *services.WishlistService
}

// productFilter builds the listing filter from the query string. Bad
// numbers are ignored rather than rejected.
func productFilter(c *fiber.Ctx) repos.Filter {
	f := repos.Filter{
		CategoryID: c.Query("category"),
		Query:      c.Query("q"),
	}
	if v, err := decimal.NewFromString(c.Query("price_min")); err == nil {
		f.PriceMin = &v
	}
	if v, err := decimal.NewFromString(c.Query("price_max")); err == nil {
		f.PriceMax = &v
	}
	if c.QueryBool("in_stock") {
		f.InStockOnly = true
	}
	return f
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	// The storefront never lists what cannot be bought.
	f := productFilter(c)
	f.InStockOnly = true
	products, err := h.Catalog.ListProducts(f, page, 12)
	if err != nil {
		return err
	}
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return err
	}
	return render(c, "products", fiber.Map{
		"Products":   products,
		"Categories": cats,
		"Query":      c.Query("q"),
		"Page":       page,
		"Saved":      savedSet(c, h.Wish),
	})
}

// Detail renders a product page; :key is a slug or an id.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	p, err := h.Catalog.GetProduct(c.Params("key"))
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	reviews, avg, err := h.Reviews.ForProduct(p.ID)
	if err != nil {
		return err
	}
	related, err := h.Catalog.RelatedProducts(p, 4)
	if err != nil {
		return err
	}
	data := fiber.Map{
		"P":         p,
		"Reviews":   reviews,
		"AvgRating": avg,
		"Related":   related,
	}
	if u := currentUser(c); u != nil {
		mine, err := h.Reviews.UserReview(u.ID, p.ID)
		if err != nil {
			return err
		}
		data["MyReview"] = mine
	}
	return render(c, "product", data)
}

// Review handles the review form on the product page. Login required.
func (h *ProductHandler) Review(c *fiber.Ctx) error {
	u := currentUser(c)
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing product id")
	}
	rating, ok := validate.Rating(c.FormValue("rating"))
	if !ok {
		return c.Status(400).SendString("rating must be 1 to 5")
	}
	if _, err := h.Reviews.Add(u.ID, pid, rating, c.FormValue("comment")); err != nil {
		applog.Error(c, "review.add.fail", err, map[string]any{"product": pid})
		return c.Status(400).SendString("could not save review")
	}
	applog.Audit(c, "review.add", map[string]any{"product": pid, "rating": rating})
	back := c.Get("Referer")
	if back == "" {
		back = "/product/" + pid
	}
	return c.Redirect(back)
}
