package services

import (
	"errors"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"github.com/cluns13/loadedteaclub-backend/repository"
)

type ReviewService struct {
	Repo *repository.ReviewRepository
}

func NewReviewService(repo *repository.ReviewRepository) *ReviewService {
	return &ReviewService{Repo: repo}
}

func (s *ReviewService) Create(userID, businessID uint, rating int, comments string) (*entity.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	exists, err := s.Repo.ExistsForUser(businessID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("you already reviewed this listing")
	}

	review := &entity.Review{
		UserID:     userID,
		BusinessID: businessID,
		Rating:     rating,
		Comments:   comments,
	}
	if err := s.Repo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListByBusiness(businessID uint) ([]entity.Review, error) {
	return s.Repo.FindByBusiness(businessID)
}
