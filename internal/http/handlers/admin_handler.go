package handlers

import (
	"strconv"
	"strings"

	applog "jeetech/internal/log"
	"jeetech/internal/repos"
	"jeetech/internal/services"
	"jeetech/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Catalog    *services.CatalogService
	Products   *repos.ProductRepo
	Categories *repos.CategoryRepo
	Users      *repos.UserRepo
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	products, err := h.Products.Count()
	if err != nil {
		return err
	}
	categories, err := h.Categories.Count()
	if err != nil {
		return err
	}
	customers, err := h.Users.CountCustomers()
	if err != nil {
		return err
	}
	lowStock, err := h.Products.LowStockCount(5)
	if err != nil {
		return err
	}
	recent, err := h.Users.RecentCustomers(10)
	if err != nil {
		return err
	}
	return render(c, "admin_dashboard", fiber.Map{
		"ProductCount":  products,
		"CategoryCount": categories,
		"CustomerCount": customers,
		"LowStockCount": lowStock,
		"RecentUsers":   recent,
	})
}

// GET /admin/products
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	products, err := h.Catalog.ListProducts(repos.Filter{Query: c.Query("q")}, page, 25)
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return err
	}
	return render(c, "admin_products", fiber.Map{"Products": products, "Categories": cats, "Page": page})
}

func productInput(c *fiber.Ctx) services.ProductInput {
	// Stock is an exact count, not a clamped cart quantity.
	stock, err := strconv.Atoi(strings.TrimSpace(c.FormValue("stock")))
	if err != nil || stock < 0 {
		stock = 0
	}
	return services.ProductInput{
		CategoryID:  c.FormValue("category_id"),
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Stock:       stock,
		Image:       c.FormValue("image"),
		IsFeatured:  c.FormValue("is_featured") == "on",
	}
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	p, err := h.Catalog.CreateProduct(productInput(c))
	if err != nil {
		applog.Error(c, "admin.products.create.fail", err, nil)
		return c.Status(400).SendString("could not create product")
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product": p.ID, "slug": p.Slug})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	p, err := h.Catalog.UpdateProduct(id, productInput(c))
	if err != nil {
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not update product")
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product": p.ID})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not delete product")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

// POST /admin/categories
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	cat, err := h.Catalog.CreateCategory(c.FormValue("name"))
	if err != nil {
		applog.Error(c, "admin.categories.create.fail", err, nil)
		return c.Status(400).SendString("could not create category")
	}
	applog.Audit(c, "admin.categories.create", map[string]any{"category": cat.ID, "slug": cat.Slug})
	return c.Redirect("/admin/products")
}

// POST /admin/categories/:id
func (h *AdminHandler) RenameCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Catalog.RenameCategory(id, c.FormValue("name")); err != nil {
		applog.Error(c, "admin.categories.rename.fail", err, map[string]any{"category": id})
		return c.Status(400).SendString("could not rename category")
	}
	applog.Audit(c, "admin.categories.rename", map[string]any{"category": id})
	return c.Redirect("/admin/products")
}

// POST /admin/categories/:id/delete
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Catalog.DeleteCategory(id); err != nil {
		applog.Error(c, "admin.categories.delete.fail", err, map[string]any{"category": id})
		return c.Status(400).SendString("could not delete category")
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"category": id})
	return c.Redirect("/admin/products")
}

// POST /admin/fix-slugs backfills slugs on records that predate them.
func (h *AdminHandler) FixSlugs(c *fiber.Ctx) error {
	n, err := h.Catalog.FixSlugs()
	if err != nil {
		applog.Error(c, "admin.fixslugs.fail", err, nil)
		return c.Status(500).SendString("could not fix slugs")
	}
	applog.Audit(c, "admin.fixslugs", map[string]any{"fixed": n})
	return c.Redirect("/admin")
}
