package repository

import (
	"github.com/cluns13/loadedteaclub-backend/entity"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(review *entity.Review) error {
	return r.DB.Create(review).Error
}

func (r *ReviewRepository) FindByBusiness(businessID uint) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.DB.Preload("User").
		Where("business_id = ?", businessID).
		Order("id DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) CountAndAverage(businessID uint) (int64, float64, error) {
	var count int64
	if err := r.DB.Model(&entity.Review{}).Where("business_id = ?", businessID).Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}
	var avg float64
	err := r.DB.Model(&entity.Review{}).Where("business_id = ?", businessID).
		Select("AVG(rating)").Scan(&avg).Error
	return count, avg, err
}

// One review per user per business
func (r *ReviewRepository) ExistsForUser(businessID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Review{}).
		Where("business_id = ? AND user_id = ?", businessID, userID).
		Count(&count).Error
	return count > 0, err
}
