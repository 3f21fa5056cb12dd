package services

import (
	"database/sql"
	"errors"

	"jeetech/internal/domain"
	"jeetech/internal/repos"

	"github.com/google/uuid"
)

type WishlistService struct {
	Wish  *repos.WishlistRepo
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewWishlistService(wish *repos.WishlistRepo, carts *repos.CartRepo, prods *repos.ProductRepo) *WishlistService {
	return &WishlistService{Wish: wish, Carts: carts, Prods: prods}
}

// Toggle flips wishlist membership and reports the new state: true when
// the product is now saved, false when it was removed.
func (s *WishlistService) Toggle(userID, productID string) (bool, error) {
	if _, err := s.Prods.Get(productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}
	present, err := s.Wish.Exists(userID, productID)
	if err != nil {
		return false, err
	}
	if present {
		return false, s.Wish.Delete(userID, productID)
	}
	err = s.Wish.Insert(domain.WishlistItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
	})
	return err == nil, err
}

// MoveToCart removes the wishlist entry (a no-op when absent) and then
// upserts the product into the cart with quantity 1. The two steps are
// independently idempotent; there is no cross-step transaction.
func (s *WishlistService) MoveToCart(userID, productID string) (domain.CartItem, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CartItem{}, ErrNotFound
		}
		return domain.CartItem{}, err
	}
	if p.Stock < 1 {
		return domain.CartItem{}, &InsufficientStockError{Available: p.Stock}
	}
	if err := s.Wish.Delete(userID, productID); err != nil {
		return domain.CartItem{}, err
	}
	if err := s.Carts.Upsert(domain.CartItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
	}); err != nil {
		return domain.CartItem{}, err
	}
	return s.Carts.Get(userID, productID)
}

func (s *WishlistService) List(userID string) ([]repos.WishlistRow, error) {
	return s.Wish.List(userID)
}

// Remove deletes a wishlist entry by row id; absent rows are a no-op.
func (s *WishlistService) Remove(userID, itemID string) error {
	return s.Wish.DeleteByID(itemID, userID)
}

func (s *WishlistService) ProductIDs(userID string) ([]string, error) {
	return s.Wish.ProductIDs(userID)
}

func (s *WishlistService) Count(userID string) (int, error) {
	return s.Wish.Count(userID)
}
