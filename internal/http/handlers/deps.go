package handlers

import (
	"jeetech/internal/config"
	"jeetech/internal/repos"
	"jeetech/internal/services"
	"jeetech/internal/token"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	HomeHandler     *HomeHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	WishlistHandler *WishlistHandler
	CheckoutHandler *CheckoutHandler
	AuthHandler     *AuthHandler
	AdminHandler    *AdminHandler
	API             *APIHandler

	Auth *services.AuthService
	Cart *services.CartService
	Wish *services.WishlistService
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	wishRepo := repos.NewWishlistRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	wishSvc := services.NewWishlistService(wishRepo, cartRepo, prodRepo)
	checkoutSvc := services.NewCheckoutService(cartRepo, cfg.WhatsAppNumber)
	reviewSvc := services.NewReviewService(reviewRepo, prodRepo)
	authSvc := services.NewAuthService(userRepo, token.NewIssuer(cfg.JWTSecret))

	return &Deps{
		HomeHandler:     &HomeHandler{Catalog: catalogSvc, Wish: wishSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc, Wish: wishSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc, Reviews: reviewSvc, Wish: wishSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		WishlistHandler: &WishlistHandler{Wish: wishSvc},
		CheckoutHandler: &CheckoutHandler{Checkout: checkoutSvc},
		AuthHandler:     &AuthHandler{Auth: authSvc},
		AdminHandler: &AdminHandler{
			Catalog: catalogSvc, Products: prodRepo, Categories: catRepo, Users: userRepo,
		},
		API: &APIHandler{
			Catalog: catalogSvc, Cart: cartSvc, Wish: wishSvc,
			Checkout: checkoutSvc, Reviews: reviewSvc, Auth: authSvc,
		},
		Auth: authSvc,
		Cart: cartSvc,
		Wish: wishSvc,
	}
}
