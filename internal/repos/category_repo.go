package repos

import (
	"jeetech/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, name, COALESCE(slug,'') AS slug, created_at
	  FROM categories
	  ORDER BY name
	`)
	return out, err
}

// CategoryCount pairs a category with how many products it owns.
type CategoryCount struct {
	domain.Category
	ProductCount int `db:"product_count" json:"product_count"`
}

func (r *CategoryRepo) ListWithCounts(limit int) ([]CategoryCount, error) {
	var out []CategoryCount
	err := r.db.Select(&out, `
	  SELECT c.id, c.name, COALESCE(c.slug,'') AS slug, c.created_at,
	         COUNT(p.id) AS product_count
	  FROM categories c LEFT JOIN products p ON p.category_id = c.id
	  GROUP BY c.id
	  ORDER BY c.name
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT id, name, COALESCE(slug,'') AS slug, created_at FROM categories WHERE id = ?`, id)
	return c, err
}

// BySlugOrID looks up by slug first, falling back to the primary key so
// older links that carried ids keep working.
func (r *CategoryRepo) BySlugOrID(key string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, COALESCE(slug,'') AS slug, created_at
	  FROM categories WHERE slug = ? OR id = ?
	`, key, key)
	return c, err
}

func (r *CategoryRepo) Insert(c domain.Category) error {
	_, err := r.db.Exec(`INSERT INTO categories(id, name, slug) VALUES(?,?,?)`, c.ID, c.Name, c.Slug)
	return err
}

func (r *CategoryRepo) UpdateName(id, name string) error {
	_, err := r.db.Exec(`UPDATE categories SET name = ? WHERE id = ?`, name, id)
	return err
}

func (r *CategoryRepo) UpdateSlug(id, slug string) error {
	_, err := r.db.Exec(`UPDATE categories SET slug = ? WHERE id = ?`, slug, id)
	return err
}

// Delete removes the category; its products go with it via the FK cascade.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}

// SlugTaken reports whether any other category already uses slug.
func (r *CategoryRepo) SlugTaken(slug, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM categories WHERE slug = ? AND id != ?`, slug, excludeID)
	return n > 0, err
}

// MissingSlug returns categories whose slug was never assigned.
func (r *CategoryRepo) MissingSlug() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, name, COALESCE(slug,'') AS slug, created_at
	  FROM categories
	  WHERE slug IS NULL OR slug = '' OR slug = 'None'
	`)
	return out, err
}

func (r *CategoryRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM categories`)
	return n, err
}
