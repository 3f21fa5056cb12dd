package repos

import (
	"jeetech/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Insert(rv domain.Review) error {
	_, err := r.db.Exec(`
	  INSERT INTO reviews(id, product_id, user_id, rating, comment)
	  VALUES(?,?,?,?,?)
	`, rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Comment)
	return err
}

func (r *ReviewRepo) ByUserProduct(userID, productID string) (domain.Review, error) {
	var rv domain.Review
	err := r.db.Get(&rv, `
	  SELECT id, product_id, user_id, rating, comment, created_at
	  FROM reviews WHERE user_id = ? AND product_id = ?
	`, userID, productID)
	return rv, err
}

// ReviewRow carries the reviewer's username for display.
type ReviewRow struct {
	domain.Review
	Username string `db:"username" json:"username"`
}

func (r *ReviewRepo) ForProduct(productID string) ([]ReviewRow, error) {
	rows := []ReviewRow{}
	err := r.db.Select(&rows, `
	  SELECT rv.id, rv.product_id, rv.user_id, rv.rating, rv.comment, rv.created_at,
	         u.username
	  FROM reviews rv JOIN users u ON u.id = rv.user_id
	  WHERE rv.product_id = ?
	  ORDER BY rv.created_at DESC
	`, productID)
	return rows, err
}

func (r *ReviewRepo) AverageRating(productID string) (float64, error) {
	var avg float64
	err := r.db.Get(&avg, `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = ?`, productID)
	return avg, err
}
