package repository

import (
	"time"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"gorm.io/gorm"
)

type PromotionRepository struct {
	DB *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{DB: db}
}

func (r *PromotionRepository) Create(p *entity.Promotion) error {
	return r.DB.Create(p).Error
}

func (r *PromotionRepository) FindByBusiness(businessID uint) ([]entity.Promotion, error) {
	var promos []entity.Promotion
	err := r.DB.Where("business_id = ?", businessID).Order("id DESC").Find(&promos).Error
	return promos, err
}

// FindActive returns promotions running right now (no window = always on).
func (r *PromotionRepository) FindActive(now time.Time) ([]entity.Promotion, error) {
	var promos []entity.Promotion
	err := r.DB.Preload("Business").
		Where("(start_at IS NULL OR start_at <= ?) AND (end_at IS NULL OR end_at >= ?)", now, now).
		Order("id DESC").
		Find(&promos).Error
	return promos, err
}

func (r *PromotionRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Promotion{}, id).Error
}

func (r *PromotionRepository) FindByID(id uint) (*entity.Promotion, error) {
	var p entity.Promotion
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
