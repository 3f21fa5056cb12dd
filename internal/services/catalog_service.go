package services

import (
	"database/sql"
	"errors"

	"jeetech/internal/domain"
	"jeetech/internal/repos"
	"jeetech/internal/slug"

	"github.com/google/uuid"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// ---------- Categories ----------

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) CategoriesWithCounts(limit int) ([]repos.CategoryCount, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.Cats.ListWithCounts(limit)
}

// CreateCategory assigns the slug at create time. The uniqueness probe
// runs against persisted slugs; the UNIQUE column is the backstop for the
// rare race between two same-named creators.
func (s *CatalogService) CreateCategory(name string) (domain.Category, error) {
	if name == "" {
		return domain.Category{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	c := domain.Category{
		ID:   uuid.NewString(),
		Name: name,
		Slug: slug.Resolve(name, "category", "new", s.categorySlugTaken("")),
	}
	if err := s.Cats.Insert(c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

// RenameCategory updates the name only: an assigned slug never changes,
// so links to the category stay stable.
func (s *CatalogService) RenameCategory(id, name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if _, err := s.Cats.Get(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.Cats.UpdateName(id, name)
}

func (s *CatalogService) GetCategory(key string) (domain.Category, error) {
	c, err := s.Cats.BySlugOrID(key)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, ErrNotFound
	}
	return c, err
}

// DeleteCategory removes the category and, through the FK cascade, every
// product it owns along with their cart, wishlist and review rows.
func (s *CatalogService) DeleteCategory(id string) error {
	return s.Cats.Delete(id)
}

func (s *CatalogService) categorySlugTaken(excludeID string) func(string) bool {
	return func(candidate string) bool {
		taken, err := s.Cats.SlugTaken(candidate, excludeID)
		// On a read error err on the side of "taken": the probe moves to
		// the next suffix instead of claiming a possibly-used slug.
		return err != nil || taken
	}
}

// ---------- Products ----------

type ProductInput struct {
	CategoryID  string
	Name        string
	Description string
	Price       string
	Stock       int
	Image       string
	IsFeatured  bool
}

func (s *CatalogService) CreateProduct(in ProductInput) (domain.Product, error) {
	p, err := s.buildProduct(in)
	if err != nil {
		return domain.Product{}, err
	}
	p.ID = uuid.NewString()
	p.Slug = slug.Resolve(p.Name, "product", "new", s.productSlugTaken(""))
	if err := s.Prods.Insert(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// UpdateProduct edits a product. The slug is recomputed only when the
// stored one is absent; renames keep the original slug.
func (s *CatalogService) UpdateProduct(id string, in ProductInput) (domain.Product, error) {
	current, err := s.Prods.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, ErrNotFound
		}
		return domain.Product{}, err
	}
	p, err := s.buildProduct(in)
	if err != nil {
		return domain.Product{}, err
	}
	p.ID = current.ID
	p.Slug = current.Slug
	if p.Slug == "" || p.Slug == "None" {
		p.Slug = slug.Resolve(p.Name, "product", p.ID, s.productSlugTaken(p.ID))
	}
	if err := s.Prods.Update(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) buildProduct(in ProductInput) (domain.Product, error) {
	if in.Name == "" {
		return domain.Product{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return domain.Product{}, err
	}
	if in.Stock < 0 {
		return domain.Product{}, &ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	if _, err := s.Cats.Get(in.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, &ValidationError{Field: "category", Reason: "unknown category"}
		}
		return domain.Product{}, err
	}
	return domain.Product{
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		Stock:       in.Stock,
		Image:       in.Image,
		IsFeatured:  in.IsFeatured,
	}, nil
}

func (s *CatalogService) GetProduct(key string) (domain.Product, error) {
	p, err := s.Prods.BySlugOrID(key)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}

func (s *CatalogService) DeleteProduct(id string) error {
	return s.Prods.Delete(id)
}

func (s *CatalogService) ListProducts(f repos.Filter, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	return s.Prods.List(f, pageSize, (page-1)*pageSize)
}

// FeaturedProducts falls back to the latest products when nothing is
// flagged, so the home page never renders empty. Storefront pages pass
// inStockOnly; the admin and JSON surfaces see everything.
func (s *CatalogService) FeaturedProducts(limit int, inStockOnly bool) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	out, err := s.Prods.List(repos.Filter{FeaturedOnly: true, InStockOnly: inStockOnly}, limit, 0)
	if err != nil || len(out) > 0 {
		return out, err
	}
	return s.LatestProducts(limit, inStockOnly)
}

func (s *CatalogService) LatestProducts(limit int, inStockOnly bool) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	return s.Prods.List(repos.Filter{InStockOnly: inStockOnly}, limit, 0)
}

func (s *CatalogService) RelatedProducts(p domain.Product, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 4
	}
	return s.Prods.Related(p.CategoryID, p.ID, limit)
}

func (s *CatalogService) productSlugTaken(excludeID string) func(string) bool {
	return func(candidate string) bool {
		taken, err := s.Prods.SlugTaken(candidate, excludeID)
		return err != nil || taken
	}
}

// FixSlugs assigns slugs to records that never got one (e.g. rows from an
// old import). Records that already carry a slug are left untouched.
func (s *CatalogService) FixSlugs() (int, error) {
	fixed := 0

	cats, err := s.Cats.MissingSlug()
	if err != nil {
		return 0, err
	}
	for _, c := range cats {
		ns := slug.Resolve(c.Name, "category", c.ID, s.categorySlugTaken(c.ID))
		if err := s.Cats.UpdateSlug(c.ID, ns); err != nil {
			return fixed, err
		}
		fixed++
	}

	prods, err := s.Prods.MissingSlug()
	if err != nil {
		return fixed, err
	}
	for _, p := range prods {
		p.Slug = slug.Resolve(p.Name, "product", p.ID, s.productSlugTaken(p.ID))
		if err := s.Prods.Update(p); err != nil {
			return fixed, err
		}
		fixed++
	}

	return fixed, nil
}
