package services

import (
	"errors"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"github.com/cluns13/loadedteaclub-backend/repository"
)

type BusinessService struct {
	Repo       *repository.BusinessRepository
	MenuRepo   *repository.MenuRepository
	ReviewRepo *repository.ReviewRepository
}

func NewBusinessService(repo *repository.BusinessRepository, menuRepo *repository.MenuRepository, reviewRepo *repository.ReviewRepository) *BusinessService {
	return &BusinessService{Repo: repo, MenuRepo: menuRepo, ReviewRepo: reviewRepo}
}

func (s *BusinessService) Search(q, city string, categoryID uint) ([]entity.Business, error) {
	return s.Repo.Search(q, city, categoryID)
}

type BusinessDetail struct {
	Business    *entity.Business  `json:"business"`
	Menu        []entity.MenuItem `json:"menu"`
	ReviewCount int64             `json:"reviewCount"`
	Rating      float64           `json:"rating"`
}

func (s *BusinessService) Detail(id uint) (*BusinessDetail, error) {
	b, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	menu, err := s.MenuRepo.FindByBusiness(id)
	if err != nil {
		return nil, err
	}
	count, avg, err := s.ReviewRepo.CountAndAverage(id)
	if err != nil {
		return nil, err
	}
	return &BusinessDetail{Business: b, Menu: menu, ReviewCount: count, Rating: avg}, nil
}

func (s *BusinessService) Create(b *entity.Business) error {
	return s.Repo.Create(b)
}

func (s *BusinessService) Update(id uint, updates map[string]any) error {
	return s.Repo.Update(id, updates)
}

// OwnedBy guards owner-only operations on a listing.
func (s *BusinessService) OwnedBy(businessID, userID uint) (bool, error) {
	b, err := s.Repo.FindByID(businessID)
	if err != nil {
		return false, err
	}
	return b.Claimed && b.UserID != nil && *b.UserID == userID, nil
}

func (s *BusinessService) ListOwned(userID uint) ([]entity.Business, error) {
	return s.Repo.FindByOwner(userID)
}

var ErrNotOwner = errors.New("listing is not managed by this user")
