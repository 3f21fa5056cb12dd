package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Slug      string `db:"slug" json:"slug"`
	CreatedAt string `db:"created_at" json:"-"`
}

type Product struct {
	ID          string          `db:"id" json:"id"`
	CategoryID  string          `db:"category_id" json:"category_id"`
	Name        string          `db:"name" json:"name"`
	Slug        string          `db:"slug" json:"slug"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Stock       int             `db:"stock" json:"stock"`
	Image       string          `db:"image" json:"image,omitempty"`
	IsFeatured  bool            `db:"is_featured" json:"is_featured"`
	CreatedAt   string          `db:"created_at" json:"created_at"`
	UpdatedAt   string          `db:"updated_at" json:"-"`
}

func (p Product) InStock() bool { return p.Stock > 0 }

// CartItem is one cart line; at most one row exists per (user, product).
type CartItem struct {
	ID        string `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"-"`
	ProductID string `db:"product_id" json:"product_id"`
	Quantity  int    `db:"quantity" json:"quantity"`
	CreatedAt string `db:"created_at" json:"-"`
	UpdatedAt string `db:"updated_at" json:"-"`
}

// WishlistItem records membership only; no quantity.
type WishlistItem struct {
	ID        string `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"-"`
	ProductID string `db:"product_id" json:"product_id"`
	CreatedAt string `db:"created_at" json:"-"`
}

type Review struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"product_id"`
	UserID    string `db:"user_id" json:"-"`
	Rating    int    `db:"rating" json:"rating"`
	Comment   string `db:"comment" json:"comment"`
	CreatedAt string `db:"created_at" json:"created_at"`
}
