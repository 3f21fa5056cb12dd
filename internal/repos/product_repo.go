package repos

import (
	"strings"

	"jeetech/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, category_id, name, COALESCE(slug,'') AS slug, description, price, stock,
  image, is_featured, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// BySlugOrID mirrors the public URLs: slugs are canonical, ids still resolve.
func (r *ProductRepo) BySlugOrID(key string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE slug = ? OR id = ?`, key, key)
	return p, err
}

// Filter narrows product listings; zero values mean "no constraint".
type Filter struct {
	CategoryID   string
	Query        string
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	FeaturedOnly bool
	InStockOnly  bool
}

func (r *ProductRepo) List(f Filter, limit, offset int) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if f.CategoryID != "" {
		where += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.Query != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		q := "%" + strings.ToLower(f.Query) + "%"
		args = append(args, q, q)
	}
	if f.PriceMin != nil {
		where += ` AND price >= ?`
		args = append(args, *f.PriceMin)
	}
	if f.PriceMax != nil {
		where += ` AND price <= ?`
		args = append(args, *f.PriceMax)
	}
	if f.FeaturedOnly {
		where += ` AND is_featured = 1`
	}
	if f.InStockOnly {
		where += ` AND stock > 0`
	}

	query := `SELECT ` + productCols + ` FROM products WHERE ` + where + `
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, query, args...)
	return out, err
}

// Related lists other products from the same category.
func (r *ProductRepo) Related(categoryID, excludeID string, limit int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE category_id = ? AND id != ?
	  ORDER BY created_at DESC
	  LIMIT ?
	`, categoryID, excludeID, limit)
	return out, err
}

func (r *ProductRepo) Insert(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, category_id, name, slug, description, price, stock, image, is_featured)
	  VALUES(?,?,?,?,?,?,?,?,?)
	`, p.ID, p.CategoryID, p.Name, p.Slug, p.Description, p.Price, p.Stock, p.Image, p.IsFeatured)
	return err
}

// Update writes the editable fields. The slug is written as passed: callers
// only ever recompute it when it was absent.
func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products
	  SET category_id=?, name=?, slug=?, description=?, price=?, stock=?, image=?, is_featured=?,
	      updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, p.CategoryID, p.Name, p.Slug, p.Description, p.Price, p.Stock, p.Image, p.IsFeatured, p.ID)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

func (r *ProductRepo) SlugTaken(slug, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE slug = ? AND id != ?`, slug, excludeID)
	return n > 0, err
}

// MissingSlug returns products whose slug was never assigned (or was saved
// as the literal string "None" by an old importer).
func (r *ProductRepo) MissingSlug() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE slug IS NULL OR slug = '' OR slug = 'None'
	`)
	return out, err
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

func (r *ProductRepo) LowStockCount(threshold int) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE stock < ?`, threshold)
	return n, err
}
