package services

import (
	"database/sql"
	"errors"

	"jeetech/internal/domain"
	"jeetech/internal/repos"

	"github.com/google/uuid"
)

type ReviewService struct {
	Reviews *repos.ReviewRepo
	Prods   *repos.ProductRepo
}

func NewReviewService(reviews *repos.ReviewRepo, prods *repos.ProductRepo) *ReviewService {
	return &ReviewService{Reviews: reviews, Prods: prods}
}

// Add records a review; each user gets one review per product.
func (s *ReviewService) Add(userID, productID string, rating int, comment string) (domain.Review, error) {
	if rating < 1 || rating > 5 {
		return domain.Review{}, &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	if comment == "" {
		return domain.Review{}, &ValidationError{Field: "comment", Reason: "must not be empty"}
	}
	if _, err := s.Prods.Get(productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, err
	}
	if _, err := s.Reviews.ByUserProduct(userID, productID); err == nil {
		return domain.Review{}, ErrDuplicateReview
	} else if !errors.Is(err, sql.ErrNoRows) {
		return domain.Review{}, err
	}

	rv := domain.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.Reviews.Insert(rv); err != nil {
		return domain.Review{}, err
	}
	return rv, nil
}

// ForProduct returns the reviews newest-first plus the average rating.
func (s *ReviewService) ForProduct(productID string) ([]repos.ReviewRow, float64, error) {
	rows, err := s.Reviews.ForProduct(productID)
	if err != nil {
		return nil, 0, err
	}
	avg, err := s.Reviews.AverageRating(productID)
	return rows, avg, err
}

// UserReview returns the caller's review of a product, or nil.
func (s *ReviewService) UserReview(userID, productID string) (*domain.Review, error) {
	rv, err := s.Reviews.ByUserProduct(userID, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}
