package services

import (
	"errors"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"github.com/cluns13/loadedteaclub-backend/repository"
)

// RewardService runs the digital punch cards: one card per user per listing,
// points stamped by the owner, redeemed for a free drink at the target.
type RewardService struct {
	Repo        *repository.RewardRepository
	BusinessSvc *BusinessService
	Target      int
}

func NewRewardService(repo *repository.RewardRepository, businessSvc *BusinessService, target int) *RewardService {
	return &RewardService{Repo: repo, BusinessSvc: businessSvc, Target: target}
}

func (s *RewardService) Cards(userID uint) ([]entity.RewardCard, error) {
	return s.Repo.FindByUser(userID)
}

// Stamp adds points to a visitor's card. Only the listing owner can stamp.
func (s *RewardService) Stamp(ownerID, visitorID, businessID uint, points int) (*entity.RewardCard, error) {
	if points <= 0 {
		points = 1
	}
	ok, err := s.BusinessSvc.OwnedBy(businessID, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotOwner
	}

	card, err := s.Repo.GetOrCreateCard(visitorID, businessID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AddPoints(card.ID, points); err != nil {
		return nil, err
	}
	return s.Repo.GetOrCreateCard(visitorID, businessID)
}

func (s *RewardService) Redeem(userID, businessID uint) (*entity.RewardCard, error) {
	card, err := s.Repo.GetOrCreateCard(userID, businessID)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.Redeem(card.ID, s.Target)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errors.New("not enough points to redeem")
	}
	return s.Repo.GetOrCreateCard(userID, businessID)
}
