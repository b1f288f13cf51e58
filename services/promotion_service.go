package services

import (
	"time"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"github.com/cluns13/loadedteaclub-backend/repository"
)

type PromotionService struct {
	Repo        *repository.PromotionRepository
	BusinessSvc *BusinessService
}

func NewPromotionService(repo *repository.PromotionRepository, businessSvc *BusinessService) *PromotionService {
	return &PromotionService{Repo: repo, BusinessSvc: businessSvc}
}

func (s *PromotionService) Create(userID uint, promo *entity.Promotion) error {
	ok, err := s.BusinessSvc.OwnedBy(promo.BusinessID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotOwner
	}
	return s.Repo.Create(promo)
}

func (s *PromotionService) ListByBusiness(businessID uint) ([]entity.Promotion, error) {
	return s.Repo.FindByBusiness(businessID)
}

func (s *PromotionService) ListActive() ([]entity.Promotion, error) {
	return s.Repo.FindActive(time.Now())
}

func (s *PromotionService) Delete(userID uint, id uint) error {
	promo, err := s.Repo.FindByID(id)
	if err != nil {
		return err
	}
	ok, err := s.BusinessSvc.OwnedBy(promo.BusinessID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotOwner
	}
	return s.Repo.Delete(id)
}
