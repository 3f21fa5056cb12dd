package handlers

import (
	applog "jeetech/internal/log"
	"jeetech/internal/services"
	"jeetech/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// APIHandler serves the JSON surface under /api. Catalog reads are
// public; cart, wishlist and checkout require a bearer token.
type APIHandler struct {
	Catalog  *services.CatalogService
	Cart     *services.CartService
	Wish     *services.WishlistService
	Checkout *services.CheckoutService
	Reviews  *services.ReviewService
	Auth     *services.AuthService
}

// GET /api
func (h *APIHandler) Home(c *fiber.Ctx) error {
	featured, err := h.Catalog.FeaturedProducts(8, false)
	if err != nil {
		return apiError(c, err)
	}
	latest, err := h.Catalog.LatestProducts(8, false)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(fiber.Map{"featured": featured, "latest": latest})
}

// GET /api/categories
func (h *APIHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.CategoriesWithCounts(0)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(fiber.Map{"categories": cats})
}

// GET /api/products
func (h *APIHandler) Products(c *fiber.Ctx) error {
	f := productFilter(c)
	if c.QueryBool("featured") {
		f.FeaturedOnly = true
	}
	page := c.QueryInt("page", 1)
	products, err := h.Catalog.ListProducts(f, page, 20)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(fiber.Map{"products": products, "page": page})
}

// GET /api/products/featured
func (h *APIHandler) FeaturedProducts(c *fiber.Ctx) error {
	products, err := h.Catalog.FeaturedProducts(8, false)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// GET /api/products/:key
func (h *APIHandler) ProductDetail(c *fiber.Ctx) error {
	p, err := h.Catalog.GetProduct(c.Params("key"))
	if err != nil {
		return apiError(c, err)
	}
	reviews, avg, err := h.Reviews.ForProduct(p.ID)
	if err != nil {
		return apiError(c, err)
	}
	related, err := h.Catalog.RelatedProducts(p, 4)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(fiber.Map{
		"product":        p,
		"reviews":        reviews,
		"average_rating": avg,
		"related":        related,
	})
}

type reviewPayload struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// POST /api/products/:key/reviews
func (h *APIHandler) AddReview(c *fiber.Ctx) error {
	u := currentUser(c)
	p, err := h.Catalog.GetProduct(c.Params("key"))
	if err != nil {
		return apiError(c, err)
	}
	var in reviewPayload
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if errs := validate.Struct(in); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload", "field": errs[0].Field})
	}
	rv, err := h.Reviews.Add(u.ID, p.ID, in.Rating, in.Comment)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "api.review.add", map[string]any{"product": p.ID})
	return c.Status(201).JSON(rv)
}

// GET /api/cart
func (h *APIHandler) CartView(c *fiber.Ctx) error {
	u := currentUser(c)
	cv, err := h.Cart.View(u.ID)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(fiber.Map{
		"items": cv.Lines,
		"total": services.FormatAmount(cv.Total),
	})
}

type cartAddPayload struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// POST /api/cart
func (h *APIHandler) CartAdd(c *fiber.Ctx) error {
	u := currentUser(c)
	var in cartAddPayload
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if errs := validate.Struct(in); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload", "field": errs[0].Field})
	}
	it, created, err := h.Cart.Add(u.ID, in.ProductID, in.Quantity)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "api.cart.add", map[string]any{"product": in.ProductID, "qty": it.Quantity})
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(it)
}

type cartUpdatePayload struct {
	Quantity int `json:"quantity" validate:"required"`
}

// PUT /api/cart/:id
func (h *APIHandler) CartUpdate(c *fiber.Ctx) error {
	u := currentUser(c)
	var in cartUpdatePayload
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	it, err := h.Cart.SetQuantity(u.ID, c.Params("id"), in.Quantity)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "api.cart.update", map[string]any{"item": it.ID, "qty": it.Quantity})
	return c.JSON(it)
}

// DELETE /api/cart/:id
func (h *APIHandler) CartRemove(c *fiber.Ctx) error {
	u := currentUser(c)
	if err := h.Cart.Remove(u.ID, c.Params("id")); err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "api.cart.remove", map[string]any{"item": c.Params("id")})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/wishlist
func (h *APIHandler) WishlistView(c *fiber.Ctx) error {
	u := currentUser(c)
	items, err := h.Wish.List(u.ID)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

type wishlistPayload struct {
	ProductID string `json:"product_id" validate:"required"`
}

// POST /api/wishlist toggles: present items are removed, absent added.
func (h *APIHandler) WishlistToggle(c *fiber.Ctx) error {
	u := currentUser(c)
	var in wishlistPayload
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if errs := validate.Struct(in); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload", "field": errs[0].Field})
	}
	saved, err := h.Wish.Toggle(u.ID, in.ProductID)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "api.wishlist.toggle", map[string]any{"product": in.ProductID, "saved": saved})
	return c.JSON(fiber.Map{"saved": saved})
}

// DELETE /api/wishlist/:id
func (h *APIHandler) WishlistRemove(c *fiber.Ctx) error {
	u := currentUser(c)
	if err := h.Wish.Remove(u.ID, c.Params("id")); err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "api.wishlist.remove", map[string]any{"item": c.Params("id")})
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /api/wishlist/move_to_cart
func (h *APIHandler) WishlistMoveToCart(c *fiber.Ctx) error {
	u := currentUser(c)
	var in wishlistPayload
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if errs := validate.Struct(in); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload", "field": errs[0].Field})
	}
	it, err := h.Wish.MoveToCart(u.ID, in.ProductID)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "api.wishlist.move_to_cart", map[string]any{"product": in.ProductID})
	return c.JSON(it)
}

// GET /api/checkout/whatsapp
func (h *APIHandler) CheckoutWhatsApp(c *fiber.Ctx) error {
	u := currentUser(c)
	link, err := h.Checkout.Link(u.ID)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "api.checkout.whatsapp", nil)
	return c.JSON(fiber.Map{"link": link})
}

// POST /api/signup
func (h *APIHandler) Signup(c *fiber.Ctx) error {
	var in services.SignupInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if errs := validate.Struct(in); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload", "field": errs[0].Field})
	}
	if !validate.Password(in.Password) {
		return c.Status(400).JSON(fiber.Map{"error": "password needs upper and lower case letters and a digit", "field": "password"})
	}
	u, err := h.Auth.Signup(in)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "api.signup", map[string]any{"user": u.ID})
	return c.Status(201).JSON(fiber.Map{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
	})
}

type tokenPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /api/token
func (h *APIHandler) Token(c *fiber.Ctx) error {
	var in tokenPayload
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if errs := validate.Struct(in); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload", "field": errs[0].Field})
	}
	pair, err := h.Auth.IssueTokens(in.Username, in.Password)
	if err != nil {
		applog.Security(c, "api.token.fail", map[string]any{"login": in.Username})
		return apiError(c, err)
	}
	applog.Audit(c, "api.token.issue", map[string]any{"login": in.Username})
	return c.JSON(pair)
}

type refreshPayload struct {
	Refresh string `json:"refresh" validate:"required"`
}

// POST /api/token/refresh
func (h *APIHandler) TokenRefresh(c *fiber.Ctx) error {
	var in refreshPayload
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	pair, err := h.Auth.RefreshTokens(in.Refresh)
	if err != nil {
		applog.Security(c, "api.token.refresh.fail", nil)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}
	return c.JSON(pair)
}
