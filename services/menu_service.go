package services

import (
	"github.com/cluns13/loadedteaclub-backend/entity"
	"github.com/cluns13/loadedteaclub-backend/repository"
)

// MenuService manages the live menu of a claimed listing.
type MenuService struct {
	Repo        *repository.MenuRepository
	BusinessSvc *BusinessService
}

func NewMenuService(repo *repository.MenuRepository, businessSvc *BusinessService) *MenuService {
	return &MenuService{Repo: repo, BusinessSvc: businessSvc}
}

func (s *MenuService) ListByBusiness(businessID uint) ([]entity.MenuItem, error) {
	return s.Repo.FindByBusiness(businessID)
}

func (s *MenuService) Create(userID uint, item *entity.MenuItem) error {
	ok, err := s.BusinessSvc.OwnedBy(item.BusinessID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotOwner
	}
	return s.Repo.Create(item)
}

func (s *MenuService) Update(userID uint, id uint, updates *entity.MenuItem) (*entity.MenuItem, error) {
	item, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	ok, err := s.BusinessSvc.OwnedBy(item.BusinessID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotOwner
	}

	item.Name = updates.Name
	item.Category = updates.Category
	item.Description = updates.Description
	item.Price = updates.Price
	item.Popular = updates.Popular
	item.Ingredients = updates.Ingredients
	item.Picture = updates.Picture
	if err := s.Repo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuService) Delete(userID uint, id uint) error {
	item, err := s.Repo.FindByID(id)
	if err != nil {
		return err
	}
	ok, err := s.BusinessSvc.OwnedBy(item.BusinessID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotOwner
	}
	return s.Repo.Delete(id)
}
