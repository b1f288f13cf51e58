package repository

import (
	"github.com/cluns13/loadedteaclub-backend/entity"
	"gorm.io/gorm"
)

type BusinessRepository struct {
	DB *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{DB: db}
}

func (r *BusinessRepository) FindByID(id uint) (*entity.Business, error) {
	var b entity.Business
	if err := r.DB.
		Preload("BusinessCategory").
		Preload("BusinessStatus").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Search filters by free-text name, city and category. Empty filters match all.
func (r *BusinessRepository) Search(q, city string, categoryID uint) ([]entity.Business, error) {
	tx := r.DB.Preload("BusinessCategory").Preload("BusinessStatus")
	if q != "" {
		tx = tx.Where("name LIKE ?", "%"+q+"%")
	}
	if city != "" {
		tx = tx.Where("city = ?", city)
	}
	if categoryID != 0 {
		tx = tx.Where("business_category_id = ?", categoryID)
	}
	var list []entity.Business
	err := tx.Order("name ASC").Find(&list).Error
	return list, err
}

func (r *BusinessRepository) FindByOwner(userID uint) ([]entity.Business, error) {
	var list []entity.Business
	err := r.DB.Where("user_id = ?", userID).Find(&list).Error
	return list, err
}

func (r *BusinessRepository) Create(b *entity.Business) error {
	return r.DB.Create(b).Error
}

func (r *BusinessRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Business{}).Where("id = ?", id).Updates(updates).Error
}
