package repos

import (
	"jeetech/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartLine is a cart row joined with its product for display and totals.
type CartLine struct {
	ID          string          `db:"id" json:"id"`
	ProductID   string          `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Slug        string          `db:"slug" json:"slug"`
	Image       string          `db:"image" json:"image"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Stock       int             `db:"stock" json:"stock"`
	Quantity    int             `db:"quantity" json:"quantity"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (r *CartRepo) Get(userID, productID string) (domain.CartItem, error) {
	var it domain.CartItem
	err := r.db.Get(&it, `
	  SELECT id, user_id, product_id, quantity, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM cart_items WHERE user_id = ? AND product_id = ?
	`, userID, productID)
	return it, err
}

func (r *CartRepo) ByID(id, userID string) (domain.CartItem, error) {
	var it domain.CartItem
	err := r.db.Get(&it, `
	  SELECT id, user_id, product_id, quantity, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM cart_items WHERE id = ? AND user_id = ?
	`, id, userID)
	return it, err
}

func (r *CartRepo) Insert(it domain.CartItem) error {
	_, err := r.db.Exec(`
	  INSERT INTO cart_items(id, user_id, product_id, quantity)
	  VALUES(?,?,?,?)
	`, it.ID, it.UserID, it.ProductID, it.Quantity)
	return err
}

func (r *CartRepo) SetQuantity(id string, quantity int) error {
	_, err := r.db.Exec(`
	  UPDATE cart_items SET quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, quantity, id)
	return err
}

// Upsert adds addQty to an existing (user, product) row or creates one.
// The unique pair constraint makes concurrent adds collapse onto one row.
func (r *CartRepo) Upsert(it domain.CartItem) error {
	_, err := r.db.Exec(`
	  INSERT INTO cart_items(id, user_id, product_id, quantity)
	  VALUES(?,?,?,?)
	  ON CONFLICT(user_id, product_id) DO UPDATE
	  SET quantity = cart_items.quantity + excluded.quantity,
	      updated_at = CURRENT_TIMESTAMP
	`, it.ID, it.UserID, it.ProductID, it.Quantity)
	return err
}

// Delete removes a row if present; deleting an absent row is a no-op.
func (r *CartRepo) Delete(id, userID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE id = ? AND user_id = ?`, id, userID)
	return err
}

func (r *CartRepo) DeleteByProduct(userID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = ? AND product_id = ?`, userID, productID)
	return err
}

func (r *CartRepo) Clear(userID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = ?`, userID)
	return err
}

func (r *CartRepo) Lines(userID string) ([]CartLine, error) {
	lines := []CartLine{}
	err := r.db.Select(&lines, `
	  SELECT ci.id, ci.product_id, p.name AS product_name, COALESCE(p.slug,'') AS slug,
	         p.image, p.price, p.stock, ci.quantity
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.user_id = ?
	  ORDER BY ci.created_at DESC
	`, userID)
	return lines, err
}

func (r *CartRepo) Count(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM cart_items WHERE user_id = ?`, userID)
	return n, err
}
