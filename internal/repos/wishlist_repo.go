package repos

import (
	"jeetech/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

func (r *WishlistRepo) Exists(userID, productID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM wishlist_items WHERE user_id = ? AND product_id = ?`, userID, productID)
	return n > 0, err
}

func (r *WishlistRepo) Insert(it domain.WishlistItem) error {
	_, err := r.db.Exec(`
	  INSERT INTO wishlist_items(id, user_id, product_id)
	  VALUES(?,?,?)
	  ON CONFLICT(user_id, product_id) DO NOTHING
	`, it.ID, it.UserID, it.ProductID)
	return err
}

// Delete removes the entry if present; absent entries are a no-op.
func (r *WishlistRepo) Delete(userID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM wishlist_items WHERE user_id = ? AND product_id = ?`, userID, productID)
	return err
}

func (r *WishlistRepo) DeleteByID(id, userID string) error {
	_, err := r.db.Exec(`DELETE FROM wishlist_items WHERE id = ? AND user_id = ?`, id, userID)
	return err
}

// WishlistRow is a wishlist entry joined with its product.
type WishlistRow struct {
	ID          string          `db:"id" json:"id"`
	ProductID   string          `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Slug        string          `db:"slug" json:"slug"`
	Image       string          `db:"image" json:"image"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Stock       int             `db:"stock" json:"stock"`
}

func (r *WishlistRepo) List(userID string) ([]WishlistRow, error) {
	rows := []WishlistRow{}
	err := r.db.Select(&rows, `
	  SELECT wi.id, wi.product_id, p.name AS product_name, COALESCE(p.slug,'') AS slug,
	         p.image, p.price, p.stock
	  FROM wishlist_items wi JOIN products p ON p.id = wi.product_id
	  WHERE wi.user_id = ?
	  ORDER BY wi.created_at DESC
	`, userID)
	return rows, err
}

// ProductIDs supports "already saved" badges on listing pages.
func (r *WishlistRepo) ProductIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Select(&ids, `SELECT product_id FROM wishlist_items WHERE user_id = ?`, userID)
	return ids, err
}

func (r *WishlistRepo) Count(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM wishlist_items WHERE user_id = ?`, userID)
	return n, err
}
