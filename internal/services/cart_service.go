package services

import (
	"database/sql"
	"errors"

	"jeetech/internal/domain"
	"jeetech/internal/repos"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add puts qty units of a product into the user's cart. An existing line
// is incremented by at least 1 rather than duplicated. Returns the
// resulting line and whether it was newly created.
func (s *CartService) Add(userID, productID string, qty int) (domain.CartItem, bool, error) {
	if qty < 1 {
		qty = 1
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CartItem{}, false, ErrNotFound
		}
		return domain.CartItem{}, false, err
	}
	if p.Stock < qty {
		return domain.CartItem{}, false, &InsufficientStockError{Available: p.Stock}
	}

	existing, err := s.Carts.Get(userID, productID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.CartItem{}, false, err
	}
	created := errors.Is(err, sql.ErrNoRows)

	it := domain.CartItem{
		ID:        existing.ID,
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
	}
	if created {
		it.ID = uuid.NewString()
	}
	// Upsert collapses a concurrent create of the same pair onto one row.
	if err := s.Carts.Upsert(it); err != nil {
		return domain.CartItem{}, false, err
	}

	out, err := s.Carts.Get(userID, productID)
	return out, created, err
}

// SetQuantity overwrites a line's quantity exactly. Non-positive values
// and values above stock are rejected without touching the row.
func (s *CartService) SetQuantity(userID, itemID string, qty int) (domain.CartItem, error) {
	if qty <= 0 {
		return domain.CartItem{}, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	it, err := s.Carts.ByID(itemID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CartItem{}, ErrNotFound
		}
		return domain.CartItem{}, err
	}
	p, err := s.Prods.Get(it.ProductID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if p.Stock < qty {
		return domain.CartItem{}, &InsufficientStockError{Available: p.Stock}
	}
	if err := s.Carts.SetQuantity(it.ID, qty); err != nil {
		return domain.CartItem{}, err
	}
	it.Quantity = qty
	return it, nil
}

// Remove deletes a cart line; removing an absent line is a no-op.
func (s *CartService) Remove(userID, itemID string) error {
	return s.Carts.Delete(itemID, userID)
}

// RemoveProduct deletes the line for a product id, if any.
func (s *CartService) RemoveProduct(userID, productID string) error {
	return s.Carts.DeleteByProduct(userID, productID)
}

type CartView struct {
	Lines []repos.CartLine
	Total decimal.Decimal
}

func (s *CartService) View(userID string) (CartView, error) {
	lines, err := s.Carts.Lines(userID)
	if err != nil {
		return CartView{}, err
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return CartView{Lines: lines, Total: total}, nil
}

func (s *CartService) Count(userID string) (int, error) {
	return s.Carts.Count(userID)
}
